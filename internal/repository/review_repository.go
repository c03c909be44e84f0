package repository

import (
	"errors"
	"time"

	"github.com/colaboreaza/backend/internal/models"

	"gorm.io/gorm"
)

// ReviewRatingStats 已揭示评价的聚合结果
type ReviewRatingStats struct {
	Average float64
	Count   int
}

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByApplicationAndReviewer(applicationID, reviewerUserID uint) (*models.Review, error)
	GetCounterpart(applicationID, reviewerUserID uint) (*models.Review, error)
	ListByApplication(applicationID uint) ([]models.Review, error)
	ListByCollab(collabID uint) ([]models.Review, error)
	ListRevealedByReviewee(revieweeUserID uint) ([]models.Review, error)
	ListByReviewer(reviewerUserID uint) ([]models.Review, error)
	ListUnrevealedBefore(cutoff time.Time) ([]models.Review, error)
	Reveal(ids []uint, revealedAt time.Time) error
	RevealedRatingStats(revieweeUserID uint, reviewerType string) (*ReviewRatingStats, error)
	Update(review *models.Review) error
	WithTx(tx *gorm.DB) *GormReviewRepository
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReviewRepository) WithTx(tx *gorm.DB) *GormReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// GetByApplicationAndReviewer 获取评价方在某申请下的评价
func (r *GormReviewRepository) GetByApplicationAndReviewer(applicationID, reviewerUserID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("application_id = ? AND reviewer_user_id = ?", applicationID, reviewerUserID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// GetCounterpart 获取对方在同一申请下的评价
func (r *GormReviewRepository) GetCounterpart(applicationID, reviewerUserID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("application_id = ? AND reviewer_user_id <> ?", applicationID, reviewerUserID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ListByApplication 获取申请下全部评价
func (r *GormReviewRepository) ListByApplication(applicationID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("application_id = ?", applicationID).Order("created_at ASC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByCollab 获取合作下全部评价
func (r *GormReviewRepository) ListByCollab(collabID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("collab_id = ?", collabID).Order("created_at ASC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListRevealedByReviewee 获取某用户收到的已揭示评价
func (r *GormReviewRepository) ListRevealedByReviewee(revieweeUserID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("reviewee_user_id = ? AND is_revealed = ?", revieweeUserID, true).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListByReviewer 获取某用户写过的评价
func (r *GormReviewRepository) ListByReviewer(reviewerUserID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("reviewer_user_id = ?", reviewerUserID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// ListUnrevealedBefore 获取超过揭示期限仍未揭示的评价
func (r *GormReviewRepository) ListUnrevealedBefore(cutoff time.Time) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Where("is_revealed = ? AND created_at <= ?", false, cutoff).
		Order("created_at ASC").Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Reveal 批量揭示评价
func (r *GormReviewRepository) Reveal(ids []uint, revealedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Review{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"is_revealed": true,
			"revealed_at": revealedAt,
			"updated_at":  revealedAt,
		}).Error
}

// RevealedRatingStats 统计某用户收到的已揭示评价均分与数量
func (r *GormReviewRepository) RevealedRatingStats(revieweeUserID uint, reviewerType string) (*ReviewRatingStats, error) {
	var row struct {
		Average float64
		Count   int
	}
	err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("reviewee_user_id = ? AND reviewer_type = ? AND is_revealed = ?", revieweeUserID, reviewerType, true).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ReviewRatingStats{Average: row.Average, Count: row.Count}, nil
}

// Update 保存评价
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}
