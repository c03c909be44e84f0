package public

import (
	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileRequest 达人档案创建/更新请求
type ProfileRequest struct {
	Username               string        `json:"username" binding:"required"`
	Bio                    string        `json:"bio"`
	Niches                 []string      `json:"niches"`
	Platforms              []string      `json:"platforms"`
	AudienceSize           int64         `json:"audience_size"`
	EngagementRate         float64       `json:"engagement_rate"`
	PricePerPost           *models.Money `json:"price_per_post"`
	PreviousCollaborations []string      `json:"previous_collaborations"`
	FeaturedPosts          []string      `json:"featured_posts"`
	Available              *bool         `json:"available"`
}

func (r ProfileRequest) toServiceInput() service.ProfileInput {
	return service.ProfileInput{
		Username:               r.Username,
		Bio:                    r.Bio,
		Niches:                 r.Niches,
		Platforms:              r.Platforms,
		AudienceSize:           r.AudienceSize,
		EngagementRate:         r.EngagementRate,
		PricePerPost:           r.PricePerPost,
		PreviousCollaborations: r.PreviousCollaborations,
		FeaturedPosts:          r.FeaturedPosts,
		Available:              r.Available,
	}
}

// CreateProfile 创建达人档案
func (h *Handler) CreateProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	profile, err := h.ProfileService.Create(userID, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, profile)
}

// UpdateMyProfile 更新当前用户的达人档案
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	profile, err := h.ProfileService.Update(userID, req.toServiceInput())
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, profile)
}

// GetMyProfile 当前用户的达人档案
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	profile, err := h.ProfileService.GetByUserID(userID)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, profile)
}

// GetInfluencerProfile 按用户名查询公开档案
func (h *Handler) GetInfluencerProfile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.ProfileService.GetByUsername(username)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, profile)
}

// ListInfluencerReviews 按用户名查询已揭示的评价
func (h *Handler) ListInfluencerReviews(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.ProfileService.GetByUsername(username)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}

	reviews, err := h.ReviewService.ListRevealedForUser(profile.UserID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"reviews":      reviews,
		"avg_rating":   profile.AvgRating,
		"review_count": profile.ReviewCount,
	})
}
