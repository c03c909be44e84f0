package service

import (
	"math"
	"strings"
	"time"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/queue"
	"github.com/colaboreaza/backend/internal/repository"

	"gorm.io/gorm"
)

// ReviewService 双盲评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	appRepo     repository.ApplicationRepository
	collabRepo  repository.CollaborationRepository
	profileRepo repository.ProfileRepository
	queueClient *queue.Client
	revealDays  int
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, appRepo repository.ApplicationRepository, collabRepo repository.CollaborationRepository, profileRepo repository.ProfileRepository, queueClient *queue.Client, revealDays int) *ReviewService {
	if revealDays <= 0 {
		revealDays = constants.DefaultReviewRevealDays
	}
	return &ReviewService{
		reviewRepo:  reviewRepo,
		appRepo:     appRepo,
		collabRepo:  collabRepo,
		profileRepo: profileRepo,
		queueClient: queueClient,
		revealDays:  revealDays,
	}
}

// SubmitReviewInput 提交评价输入
type SubmitReviewInput struct {
	Rating  int
	Comment string
}

// Submit 提交评价
// 双方都提交后互相揭示，单方提交超过揭示期限后单独揭示
func (s *ReviewService) Submit(applicationID string, reviewerUserID uint, input SubmitReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	application, err := s.appRepo.GetByPublicID(applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}
	if application.Status != constants.ApplicationStatusAccepted {
		return nil, ErrReviewNotAllowed
	}

	collab, err := s.collabRepo.GetByID(application.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}

	var reviewerType string
	var revieweeUserID uint
	switch reviewerUserID {
	case collab.BrandUserID:
		reviewerType = constants.ReviewerTypeBrand
		revieweeUserID = application.InfluencerUserID
	case application.InfluencerUserID:
		reviewerType = constants.ReviewerTypeInfluencer
		revieweeUserID = collab.BrandUserID
	default:
		return nil, ErrNotCollabParticipant
	}

	if !reviewGateOpen(collab) {
		return nil, ErrReviewNotAllowed
	}

	exist, err := s.reviewRepo.GetByApplicationAndReviewer(application.ID, reviewerUserID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrAlreadyReviewed
	}

	counterpart, err := s.reviewRepo.GetCounterpart(application.ID, reviewerUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	review := &models.Review{
		ReviewID:       models.NewPublicID(constants.IDPrefixReview),
		ApplicationID:  application.ID,
		ReviewerUserID: reviewerUserID,
		CollabID:       collab.ID,
		RevieweeUserID: revieweeUserID,
		ReviewerType:   reviewerType,
		Rating:         input.Rating,
		Comment:        strings.TrimSpace(input.Comment),
	}

	// 对方已评价就立即双方可见，对方先被超时揭示也不例外
	mutualReveal := counterpart != nil
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if mutualReveal {
			review.IsRevealed = true
			review.RevealedAt = &now
		}
		if err := s.reviewRepo.WithTx(tx).Create(review); err != nil {
			return err
		}
		if mutualReveal {
			return s.reviewRepo.WithTx(tx).Reveal([]uint{counterpart.ID}, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mutualReveal {
		if err := s.recomputeInfluencerRating(application.InfluencerUserID); err != nil {
			logger.Errorw("influencer_rating_recompute_failed",
				"influencer_user_id", application.InfluencerUserID,
				"error", err,
			)
		}
		logger.Infow("reviews_mutually_revealed",
			"application_id", application.ApplicationID,
		)
	} else {
		if err := s.queueClient.EnqueueReviewAutoReveal(queue.ReviewAutoRevealPayload{
			ReviewID: review.ID,
		}, time.Duration(s.revealDays)*24*time.Hour); err != nil {
			logger.Warnw("review_auto_reveal_enqueue_failed",
				"review_id", review.ReviewID,
				"error", err,
			)
		}
	}

	return review, nil
}

// ListForApplication 获取申请下对请求者可见的评价
// 自己的评价始终可见，对方的评价仅在揭示后可见
func (s *ReviewService) ListForApplication(applicationID string, requesterUserID uint) ([]models.Review, error) {
	application, err := s.appRepo.GetByPublicID(applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	collab, err := s.collabRepo.GetByID(application.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	if requesterUserID != collab.BrandUserID && requesterUserID != application.InfluencerUserID {
		return nil, ErrNotCollabParticipant
	}

	if err := s.revealTimedOut(application.ID); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListByApplication(application.ID)
	if err != nil {
		return nil, err
	}

	visible := make([]models.Review, 0, len(reviews))
	for _, review := range reviews {
		if review.ReviewerUserID == requesterUserID || review.IsRevealed {
			visible = append(visible, review)
		}
	}
	return visible, nil
}

// ListRevealedForUser 获取某用户收到的已揭示评价（公开）
func (s *ReviewService) ListRevealedForUser(revieweeUserID uint) ([]models.Review, error) {
	return s.reviewRepo.ListRevealedByReviewee(revieweeUserID)
}

// ListMine 获取自己写过的评价
func (s *ReviewService) ListMine(reviewerUserID uint) ([]models.Review, error) {
	return s.reviewRepo.ListByReviewer(reviewerUserID)
}

// ListPending 列出请求者可评价但尚未评价的已接受申请
func (s *ReviewService) ListPending(userID uint) ([]models.Application, error) {
	accepted, err := s.appRepo.ListAcceptedForUser(userID)
	if err != nil {
		return nil, err
	}

	pending := make([]models.Application, 0, len(accepted))
	for i := range accepted {
		application := &accepted[i]
		collab, err := s.collabRepo.GetByID(application.CollabID)
		if err != nil {
			return nil, err
		}
		if collab == nil || !reviewGateOpen(collab) {
			continue
		}
		exist, err := s.reviewRepo.GetByApplicationAndReviewer(application.ID, userID)
		if err != nil {
			return nil, err
		}
		if exist != nil {
			continue
		}
		pending = append(pending, *application)
	}
	return pending, nil
}

// AutoRevealTimedOut 揭示所有超过期限仍未互评的评价，返回揭示条数
func (s *ReviewService) AutoRevealTimedOut(now time.Time) (int, error) {
	cutoff := now.Add(-time.Duration(s.revealDays) * 24 * time.Hour)
	overdue, err := s.reviewRepo.ListUnrevealedBefore(cutoff)
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(overdue))
	influencerIDs := make(map[uint]bool)
	for _, review := range overdue {
		ids = append(ids, review.ID)
		if review.ReviewerType == constants.ReviewerTypeBrand {
			influencerIDs[review.RevieweeUserID] = true
		}
	}
	if err := s.reviewRepo.Reveal(ids, now); err != nil {
		return 0, err
	}

	for userID := range influencerIDs {
		if err := s.recomputeInfluencerRating(userID); err != nil {
			logger.Errorw("influencer_rating_recompute_failed",
				"influencer_user_id", userID,
				"error", err,
			)
		}
	}

	logger.Infow("reviews_auto_revealed", "count", len(ids))
	return len(ids), nil
}

// revealTimedOut 读取时惰性揭示申请下超期的评价
func (s *ReviewService) revealTimedOut(applicationID uint) error {
	reviews, err := s.reviewRepo.ListByApplication(applicationID)
	if err != nil {
		return err
	}

	now := time.Now()
	cutoff := now.Add(-time.Duration(s.revealDays) * 24 * time.Hour)
	var ids []uint
	influencerIDs := make(map[uint]bool)
	for _, review := range reviews {
		if !review.IsRevealed && !review.CreatedAt.After(cutoff) {
			ids = append(ids, review.ID)
			if review.ReviewerType == constants.ReviewerTypeBrand {
				influencerIDs[review.RevieweeUserID] = true
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}
	if err := s.reviewRepo.Reveal(ids, now); err != nil {
		return err
	}
	for userID := range influencerIDs {
		if err := s.recomputeInfluencerRating(userID); err != nil {
			return err
		}
	}
	return nil
}

// recomputeInfluencerRating 重算达人均分（已揭示的品牌方评价，1 位小数）
func (s *ReviewService) recomputeInfluencerRating(influencerUserID uint) error {
	stats, err := s.reviewRepo.RevealedRatingStats(influencerUserID, constants.ReviewerTypeBrand)
	if err != nil {
		return err
	}
	avg := math.Round(stats.Average*10) / 10
	return s.profileRepo.UpdateRating(influencerUserID, avg, stats.Count)
}

// reviewGateOpen 判断是否允许评价
// paid 合作要求款项已放出，barter / free 要求合作已完成
func reviewGateOpen(collab *models.Collaboration) bool {
	if collab.CollaborationType == constants.CollabTypePaid {
		return collab.PaymentStatus == constants.PaymentStatusReleased
	}
	return collab.Status == constants.CollabStatusCompleted ||
		collab.Status == constants.CollabStatusCompletedPendingRelease
}
