package repository

import (
	"errors"
	"strings"

	"github.com/colaboreaza/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 终态托管状态，不再参与任何资金流转
var escrowTerminalStatuses = []string{"released", "refunded", "partial_refund", "split_resolved"}

// EscrowRepository 托管数据访问接口
type EscrowRepository interface {
	Create(escrow *models.Escrow) error
	GetByID(id uint) (*models.Escrow, error)
	GetByIDForUpdate(id uint) (*models.Escrow, error)
	GetByPublicID(escrowID string) (*models.Escrow, error)
	GetActiveByCollab(collabID uint) (*models.Escrow, error)
	GetLatestByCollab(collabID uint) (*models.Escrow, error)
	Update(escrow *models.Escrow) error
	UpdateStatus(id uint, updates map[string]interface{}) error
	List(filter EscrowListFilter) ([]models.Escrow, int64, error)
	WithTx(tx *gorm.DB) *GormEscrowRepository
}

// GormEscrowRepository GORM 实现
type GormEscrowRepository struct {
	db *gorm.DB
}

// NewEscrowRepository 创建托管仓库
func NewEscrowRepository(db *gorm.DB) *GormEscrowRepository {
	return &GormEscrowRepository{db: db}
}

// WithTx 绑定事务
func (r *GormEscrowRepository) WithTx(tx *gorm.DB) *GormEscrowRepository {
	if tx == nil {
		return r
	}
	return &GormEscrowRepository{db: tx}
}

// Create 创建托管
func (r *GormEscrowRepository) Create(escrow *models.Escrow) error {
	return r.db.Create(escrow).Error
}

// GetByID 根据主键获取托管
func (r *GormEscrowRepository) GetByID(id uint) (*models.Escrow, error) {
	var escrow models.Escrow
	if err := r.db.First(&escrow, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &escrow, nil
}

// GetByIDForUpdate 加行锁获取托管，仅在事务内使用
func (r *GormEscrowRepository) GetByIDForUpdate(id uint) (*models.Escrow, error) {
	var escrow models.Escrow
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&escrow, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &escrow, nil
}

// GetByPublicID 根据公开 ID 获取托管
func (r *GormEscrowRepository) GetByPublicID(escrowID string) (*models.Escrow, error) {
	var escrow models.Escrow
	if err := r.db.Where("escrow_id = ?", escrowID).First(&escrow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &escrow, nil
}

// GetActiveByCollab 获取合作下未到终态的托管
func (r *GormEscrowRepository) GetActiveByCollab(collabID uint) (*models.Escrow, error) {
	var escrow models.Escrow
	err := r.db.Where("collab_id = ? AND status NOT IN ?", collabID, escrowTerminalStatuses).
		Order("created_at DESC").First(&escrow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &escrow, nil
}

// GetLatestByCollab 获取合作下最近一条托管
func (r *GormEscrowRepository) GetLatestByCollab(collabID uint) (*models.Escrow, error) {
	var escrow models.Escrow
	err := r.db.Where("collab_id = ?", collabID).Order("created_at DESC").First(&escrow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &escrow, nil
}

// Update 保存托管
func (r *GormEscrowRepository) Update(escrow *models.Escrow) error {
	return r.db.Save(escrow).Error
}

// UpdateStatus 按字段更新托管
func (r *GormEscrowRepository) UpdateStatus(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Escrow{}).Where("id = ?", id).Updates(updates).Error
}

// List 分页查询托管
func (r *GormEscrowRepository) List(filter EscrowListFilter) ([]models.Escrow, int64, error) {
	query := r.db.Model(&models.Escrow{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var escrows []models.Escrow
	query = applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&escrows).Error; err != nil {
		return nil, 0, err
	}
	return escrows, total, nil
}
