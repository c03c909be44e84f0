package repository

import (
	"errors"
	"strings"

	"github.com/colaboreaza/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollaborationRepository 合作数据访问接口
type CollaborationRepository interface {
	Create(collab *models.Collaboration) error
	GetByID(id uint) (*models.Collaboration, error)
	GetByIDForUpdate(id uint) (*models.Collaboration, error)
	GetByPublicID(collabID string) (*models.Collaboration, error)
	List(filter CollabListFilter) ([]models.Collaboration, int64, error)
	Update(collab *models.Collaboration) error
	UpdateStatus(id uint, updates map[string]interface{}) error
	IncrementApplicants(id uint) error
	CountByStatus(status string) (int64, error)
	WithTx(tx *gorm.DB) *GormCollaborationRepository
}

// GormCollaborationRepository GORM 实现
type GormCollaborationRepository struct {
	db *gorm.DB
}

// NewCollaborationRepository 创建合作仓库
func NewCollaborationRepository(db *gorm.DB) *GormCollaborationRepository {
	return &GormCollaborationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCollaborationRepository) WithTx(tx *gorm.DB) *GormCollaborationRepository {
	if tx == nil {
		return r
	}
	return &GormCollaborationRepository{db: tx}
}

// Create 创建合作
func (r *GormCollaborationRepository) Create(collab *models.Collaboration) error {
	return r.db.Create(collab).Error
}

// GetByID 根据主键获取合作
func (r *GormCollaborationRepository) GetByID(id uint) (*models.Collaboration, error) {
	var collab models.Collaboration
	if err := r.db.First(&collab, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collab, nil
}

// GetByIDForUpdate 加行锁获取合作，仅在事务内使用
func (r *GormCollaborationRepository) GetByIDForUpdate(id uint) (*models.Collaboration, error) {
	var collab models.Collaboration
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&collab, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collab, nil
}

// GetByPublicID 根据公开 ID 获取合作
func (r *GormCollaborationRepository) GetByPublicID(collabID string) (*models.Collaboration, error) {
	var collab models.Collaboration
	if err := r.db.Where("collab_id = ?", collabID).First(&collab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collab, nil
}

// List 查询合作列表
func (r *GormCollaborationRepository) List(filter CollabListFilter) ([]models.Collaboration, int64, error) {
	query := r.db.Model(&models.Collaboration{})
	if filter.BrandUserID != 0 {
		query = query.Where("brand_user_id = ?", filter.BrandUserID)
	}
	if filter.OnlyPublic {
		query = query.Where("is_public = ?", true)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if collabType := strings.TrimSpace(filter.Type); collabType != "" {
		query = query.Where("collaboration_type = ?", collabType)
	}
	if platform := strings.TrimSpace(filter.Platform); platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var collabs []models.Collaboration
	query = applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&collabs).Error; err != nil {
		return nil, 0, err
	}
	return collabs, total, nil
}

// Update 保存合作
func (r *GormCollaborationRepository) Update(collab *models.Collaboration) error {
	return r.db.Save(collab).Error
}

// UpdateStatus 按字段更新合作
func (r *GormCollaborationRepository) UpdateStatus(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Collaboration{}).Where("id = ?", id).Updates(updates).Error
}

// IncrementApplicants 申请计数加一
func (r *GormCollaborationRepository) IncrementApplicants(id uint) error {
	return r.db.Model(&models.Collaboration{}).Where("id = ?", id).
		UpdateColumn("applicants_count", gorm.Expr("applicants_count + 1")).Error
}

// CountByStatus 统计指定状态的合作数
func (r *GormCollaborationRepository) CountByStatus(status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.Collaboration{})
	if strings.TrimSpace(status) != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}
