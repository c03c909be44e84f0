package public

import (
	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitReviewRequest 提交评价请求
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// SubmitReview 提交双盲评价
// 双方都提交后互相揭示，单方提交到期后单独揭示
func (h *Handler) SubmitReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	review, err := h.ReviewService.Submit(c.Param("id"), userID, service.SubmitReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, reviewErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, review)
}

// ListApplicationReviews 申请下当前请求者可见的评价
func (h *Handler) ListApplicationReviews(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	reviews, err := h.ReviewService.ListForApplication(c.Param("id"), userID)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, reviewErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, reviews)
}

// ListMyReviews 当前用户提交过的评价
func (h *Handler) ListMyReviews(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	reviews, err := h.ReviewService.ListMine(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, reviews)
}

// ListPendingReviews 当前用户可评价但尚未评价的申请
func (h *Handler) ListPendingReviews(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	applications, err := h.ReviewService.ListPending(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, applications)
}
