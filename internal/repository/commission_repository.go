package repository

import (
	"strings"

	"github.com/colaboreaza/backend/internal/models"

	"gorm.io/gorm"
)

// CommissionSummary 佣金汇总
type CommissionSummary struct {
	TotalCommission models.Money `json:"total_commission"`
	TotalGross      models.Money `json:"total_gross"`
}

// CommissionRepository 佣金流水数据访问接口
type CommissionRepository interface {
	Create(commission *models.Commission) error
	ListByCollab(collabID uint) ([]models.Commission, error)
	List(filter CommissionListFilter) ([]models.Commission, int64, error)
	Summary(filter CommissionListFilter) (*CommissionSummary, error)
	WithTx(tx *gorm.DB) *GormCommissionRepository
}

// GormCommissionRepository GORM 实现
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository 创建佣金仓库
func NewCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCommissionRepository) WithTx(tx *gorm.DB) *GormCommissionRepository {
	if tx == nil {
		return r
	}
	return &GormCommissionRepository{db: tx}
}

// Create 写入佣金流水
func (r *GormCommissionRepository) Create(commission *models.Commission) error {
	return r.db.Create(commission).Error
}

// ListByCollab 获取合作下全部佣金流水
func (r *GormCommissionRepository) ListByCollab(collabID uint) ([]models.Commission, error) {
	var commissions []models.Commission
	err := r.db.Where("collab_id = ?", collabID).Order("created_at ASC").Find(&commissions).Error
	if err != nil {
		return nil, err
	}
	return commissions, nil
}

func (r *GormCommissionRepository) applyFilter(filter CommissionListFilter) *gorm.DB {
	query := r.db.Model(&models.Commission{})
	if filter.InfluencerUserID != 0 {
		query = query.Where("influencer_user_id = ?", filter.InfluencerUserID)
	}
	if filter.BrandUserID != 0 {
		query = query.Where("brand_user_id = ?", filter.BrandUserID)
	}
	if source := strings.TrimSpace(filter.Source); source != "" {
		query = query.Where("source = ?", source)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}
	return query
}

// List 查询佣金流水列表
func (r *GormCommissionRepository) List(filter CommissionListFilter) ([]models.Commission, int64, error) {
	query := r.applyFilter(filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var commissions []models.Commission
	query = applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&commissions).Error; err != nil {
		return nil, 0, err
	}
	return commissions, total, nil
}

// Summary 按过滤条件汇总佣金与流水总额
func (r *GormCommissionRepository) Summary(filter CommissionListFilter) (*CommissionSummary, error) {
	var row struct {
		TotalCommission models.Money
		TotalGross      models.Money
	}
	err := r.applyFilter(filter).
		Select("COALESCE(SUM(commission_amount), 0) AS total_commission, COALESCE(SUM(gross_amount), 0) AS total_gross").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &CommissionSummary{
		TotalCommission: row.TotalCommission,
		TotalGross:      row.TotalGross,
	}, nil
}
