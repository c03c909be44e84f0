package repository

import (
	"errors"
	"strings"

	"github.com/colaboreaza/backend/internal/models"

	"gorm.io/gorm"
)

// ApplicationRepository 申请数据访问接口
type ApplicationRepository interface {
	Create(application *models.Application) error
	GetByID(id uint) (*models.Application, error)
	GetByPublicID(applicationID string) (*models.Application, error)
	GetByCollabAndInfluencer(collabID, influencerUserID uint) (*models.Application, error)
	List(filter ApplicationListFilter) ([]models.Application, int64, error)
	ListAcceptedByCollab(collabID uint) ([]models.Application, error)
	ListAcceptedForUser(userID uint) ([]models.Application, error)
	Update(application *models.Application) error
	CountAll() (int64, error)
	WithTx(tx *gorm.DB) *GormApplicationRepository
}

// GormApplicationRepository GORM 实现
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository 创建申请仓库
func NewApplicationRepository(db *gorm.DB) *GormApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormApplicationRepository) WithTx(tx *gorm.DB) *GormApplicationRepository {
	if tx == nil {
		return r
	}
	return &GormApplicationRepository{db: tx}
}

// Create 创建申请
func (r *GormApplicationRepository) Create(application *models.Application) error {
	return r.db.Create(application).Error
}

// GetByID 根据主键获取申请
func (r *GormApplicationRepository) GetByID(id uint) (*models.Application, error) {
	var application models.Application
	if err := r.db.First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

// GetByPublicID 根据公开 ID 获取申请
func (r *GormApplicationRepository) GetByPublicID(applicationID string) (*models.Application, error) {
	var application models.Application
	if err := r.db.Where("application_id = ?", applicationID).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

// GetByCollabAndInfluencer 获取达人在某个合作下的申请
func (r *GormApplicationRepository) GetByCollabAndInfluencer(collabID, influencerUserID uint) (*models.Application, error) {
	var application models.Application
	err := r.db.Where("collab_id = ? AND influencer_user_id = ?", collabID, influencerUserID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

// List 查询申请列表
func (r *GormApplicationRepository) List(filter ApplicationListFilter) ([]models.Application, int64, error) {
	query := r.db.Model(&models.Application{})
	if filter.CollabID != 0 {
		query = query.Where("collab_id = ?", filter.CollabID)
	}
	if filter.InfluencerUserID != 0 {
		query = query.Where("influencer_user_id = ?", filter.InfluencerUserID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.Application
	query = applyPagination(query.Order("created_at DESC"), filter.Page, filter.PageSize)
	if err := query.Find(&applications).Error; err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// ListAcceptedByCollab 获取合作下全部已接受的申请
func (r *GormApplicationRepository) ListAcceptedByCollab(collabID uint) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Where("collab_id = ? AND status = ?", collabID, "accepted").
		Order("created_at ASC").Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// ListAcceptedForUser 获取用户参与（达人身份或品牌方身份）的全部已接受申请
func (r *GormApplicationRepository) ListAcceptedForUser(userID uint) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Model(&models.Application{}).
		Joins("JOIN collaborations ON collaborations.id = applications.collab_id").
		Where("applications.status = ?", "accepted").
		Where("applications.influencer_user_id = ? OR collaborations.brand_user_id = ?", userID, userID).
		Order("applications.created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// Update 保存申请
func (r *GormApplicationRepository) Update(application *models.Application) error {
	return r.db.Save(application).Error
}

// CountAll 统计申请总数
func (r *GormApplicationRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Count(&count).Error
	return count, err
}
