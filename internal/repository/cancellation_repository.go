package repository

import (
	"errors"
	"strings"

	"github.com/colaboreaza/backend/internal/models"

	"gorm.io/gorm"
)

// CancellationRepository 取消请求数据访问接口
type CancellationRepository interface {
	Create(cancellation *models.Cancellation) error
	GetByPublicID(cancellationID string) (*models.Cancellation, error)
	GetPendingByCollab(collabID uint) (*models.Cancellation, error)
	ListByCollab(collabID uint) ([]models.Cancellation, error)
	List(filter CancellationListFilter) ([]models.Cancellation, int64, error)
	Update(cancellation *models.Cancellation) error
	WithTx(tx *gorm.DB) *GormCancellationRepository
}

// GormCancellationRepository GORM 实现
type GormCancellationRepository struct {
	db *gorm.DB
}

// NewCancellationRepository 创建取消请求仓库
func NewCancellationRepository(db *gorm.DB) *GormCancellationRepository {
	return &GormCancellationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCancellationRepository) WithTx(tx *gorm.DB) *GormCancellationRepository {
	if tx == nil {
		return r
	}
	return &GormCancellationRepository{db: tx}
}

// Create 创建取消请求
func (r *GormCancellationRepository) Create(cancellation *models.Cancellation) error {
	return r.db.Create(cancellation).Error
}

// GetByPublicID 根据公开 ID 获取取消请求
func (r *GormCancellationRepository) GetByPublicID(cancellationID string) (*models.Cancellation, error) {
	var cancellation models.Cancellation
	if err := r.db.Where("cancellation_id = ?", cancellationID).First(&cancellation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cancellation, nil
}

// GetPendingByCollab 获取合作下待管理员处理的取消请求
func (r *GormCancellationRepository) GetPendingByCollab(collabID uint) (*models.Cancellation, error) {
	var cancellation models.Cancellation
	err := r.db.Where("collab_id = ? AND status = ?", collabID, "pending_admin_review").
		Order("created_at DESC").First(&cancellation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cancellation, nil
}

// ListByCollab 获取合作下全部取消请求
func (r *GormCancellationRepository) ListByCollab(collabID uint) ([]models.Cancellation, error) {
	var cancellations []models.Cancellation
	err := r.db.Where("collab_id = ?", collabID).Order("created_at DESC").Find(&cancellations).Error
	if err != nil {
		return nil, err
	}
	return cancellations, nil
}

// List 查询取消请求列表
func (r *GormCancellationRepository) List(filter CancellationListFilter) ([]models.Cancellation, int64, error) {
	query := r.db.Model(&models.Cancellation{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cancellations []models.Cancellation
	query = applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&cancellations).Error; err != nil {
		return nil, 0, err
	}
	return cancellations, total, nil
}

// Update 保存取消请求
func (r *GormCancellationRepository) Update(cancellation *models.Cancellation) error {
	return r.db.Save(cancellation).Error
}
