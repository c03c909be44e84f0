package repository

import (
	"errors"

	"github.com/colaboreaza/backend/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository 达人档案数据访问接口
type ProfileRepository interface {
	Create(profile *models.InfluencerProfile) error
	GetByUserID(userID uint) (*models.InfluencerProfile, error)
	GetByUsername(username string) (*models.InfluencerProfile, error)
	Update(profile *models.InfluencerProfile) error
	UpdateRating(userID uint, avgRating float64, reviewCount int) error
	CountAvailable() (int64, error)
	WithTx(tx *gorm.DB) *GormProfileRepository
}

// GormProfileRepository GORM 实现
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建档案仓库
func NewProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProfileRepository) WithTx(tx *gorm.DB) *GormProfileRepository {
	if tx == nil {
		return r
	}
	return &GormProfileRepository{db: tx}
}

// Create 创建档案
func (r *GormProfileRepository) Create(profile *models.InfluencerProfile) error {
	return r.db.Create(profile).Error
}

// GetByUserID 根据用户主键获取档案
func (r *GormProfileRepository) GetByUserID(userID uint) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUsername 根据用户名获取档案
func (r *GormProfileRepository) GetByUsername(username string) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	if err := r.db.Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// Update 保存档案
func (r *GormProfileRepository) Update(profile *models.InfluencerProfile) error {
	return r.db.Save(profile).Error
}

// UpdateRating 更新均分与评价数
func (r *GormProfileRepository) UpdateRating(userID uint, avgRating float64, reviewCount int) error {
	return r.db.Model(&models.InfluencerProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"avg_rating":   avgRating,
			"review_count": reviewCount,
		}).Error
}

// CountAvailable 统计可接单达人数
func (r *GormProfileRepository) CountAvailable() (int64, error) {
	var count int64
	err := r.db.Model(&models.InfluencerProfile{}).Where("available = ?", true).Count(&count).Error
	return count, err
}
