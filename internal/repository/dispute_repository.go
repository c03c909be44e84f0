package repository

import (
	"errors"
	"strings"

	"github.com/colaboreaza/backend/internal/models"

	"gorm.io/gorm"
)

// DisputeRepository 争议数据访问接口
type DisputeRepository interface {
	Create(dispute *models.Dispute) error
	GetByPublicID(disputeID string) (*models.Dispute, error)
	GetOpenByCollab(collabID uint) (*models.Dispute, error)
	GetLatestByCollab(collabID uint) (*models.Dispute, error)
	List(filter DisputeListFilter) ([]models.Dispute, int64, error)
	CountOpen() (int64, error)
	Update(dispute *models.Dispute) error
	WithTx(tx *gorm.DB) *GormDisputeRepository
}

// GormDisputeRepository GORM 实现
type GormDisputeRepository struct {
	db *gorm.DB
}

// NewDisputeRepository 创建争议仓库
func NewDisputeRepository(db *gorm.DB) *GormDisputeRepository {
	return &GormDisputeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDisputeRepository) WithTx(tx *gorm.DB) *GormDisputeRepository {
	if tx == nil {
		return r
	}
	return &GormDisputeRepository{db: tx}
}

// Create 创建争议
func (r *GormDisputeRepository) Create(dispute *models.Dispute) error {
	return r.db.Create(dispute).Error
}

// GetByPublicID 根据公开 ID 获取争议
func (r *GormDisputeRepository) GetByPublicID(disputeID string) (*models.Dispute, error) {
	var dispute models.Dispute
	if err := r.db.Where("dispute_id = ?", disputeID).First(&dispute).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dispute, nil
}

// GetOpenByCollab 获取合作下未结案的争议（open / under_review）
func (r *GormDisputeRepository) GetOpenByCollab(collabID uint) (*models.Dispute, error) {
	var dispute models.Dispute
	err := r.db.Where("collab_id = ? AND status IN ?", collabID, []string{"open", "under_review"}).
		Order("created_at DESC").First(&dispute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dispute, nil
}

// GetLatestByCollab 获取合作下最近一条争议
func (r *GormDisputeRepository) GetLatestByCollab(collabID uint) (*models.Dispute, error) {
	var dispute models.Dispute
	err := r.db.Where("collab_id = ?", collabID).Order("created_at DESC").First(&dispute).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dispute, nil
}

// List 查询争议列表
func (r *GormDisputeRepository) List(filter DisputeListFilter) ([]models.Dispute, int64, error) {
	query := r.db.Model(&models.Dispute{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var disputes []models.Dispute
	query = applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&disputes).Error; err != nil {
		return nil, 0, err
	}
	return disputes, total, nil
}

// CountOpen 统计未结案争议数
func (r *GormDisputeRepository) CountOpen() (int64, error) {
	var count int64
	err := r.db.Model(&models.Dispute{}).
		Where("status IN ?", []string{"open", "under_review"}).Count(&count).Error
	return count, err
}

// Update 保存争议
func (r *GormDisputeRepository) Update(dispute *models.Dispute) error {
	return r.db.Save(dispute).Error
}
