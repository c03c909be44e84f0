package admin

import (
	"errors"
	"strconv"

	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/repository"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ListDisputes 争议列表
func (h *Handler) ListDisputes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	disputes, total, err := h.DisputeService.List(repository.DisputeListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, disputes, response.NewPagination(page, pageSize, total))
}

// GetDispute 争议详情
// 返回争议本身以及裁决所需的合作、托管与完整消息记录
func (h *Handler) GetDispute(c *gin.Context) {
	dispute, err := h.DisputeService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDisputeNotFound) {
			respondError(c, response.CodeNotFound, "error.dispute_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	collab, err := h.CollabRepo.GetByID(dispute.CollabID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	var escrow *models.Escrow
	if collab != nil {
		escrow, err = h.EscrowRepo.GetLatestByCollab(collab.ID)
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
	}

	messages, err := h.MessageRepo.ListByCollab(dispute.CollabID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"dispute":       dispute,
		"collaboration": collab,
		"escrow":        escrow,
		"messages":      messages,
	})
}

// MarkDisputeUnderReview 将争议标记为审查中
func (h *Handler) MarkDisputeUnderReview(c *gin.Context) {
	dispute, err := h.DisputeService.MarkUnderReview(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDisputeNotFound):
			respondError(c, response.CodeNotFound, "error.dispute_not_found", nil)
		case errors.Is(err, service.ErrDisputeNotOpen):
			respondError(c, response.CodeConflict, "error.dispute_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	response.Success(c, dispute)
}

// ResolveDisputeRequest 争议裁决请求
type ResolveDisputeRequest struct {
	Resolution            string        `json:"resolution" binding:"required"`
	SplitInfluencerAmount *models.Money `json:"split_influencer_amount"`
	SplitBrandAmount      *models.Money `json:"split_brand_amount"`
	AdminNotes            string        `json:"admin_notes"`
}

// ResolveDispute 裁决争议
// release_to_influencer 放款、refund_to_brand 退款、split 记录分账并解冻
func (h *Handler) ResolveDispute(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req ResolveDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	dispute, err := h.DisputeService.Resolve(c.Request.Context(), c.Param("id"), service.ResolveDisputeInput{
		Resolution:            req.Resolution,
		SplitInfluencerAmount: req.SplitInfluencerAmount,
		SplitBrandAmount:      req.SplitBrandAmount,
		AdminNotes:            req.AdminNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDisputeNotFound):
			respondError(c, response.CodeNotFound, "error.dispute_not_found", nil)
		case errors.Is(err, service.ErrDisputeNotOpen):
			respondError(c, response.CodeConflict, "error.dispute_status_invalid", nil)
		case errors.Is(err, service.ErrInvalidResolution):
			respondError(c, response.CodeBadRequest, "error.dispute_resolution_invalid", nil)
		case errors.Is(err, service.ErrSplitAmountInvalid):
			respondError(c, response.CodeBadRequest, "error.dispute_split_invalid", nil)
		case errors.Is(err, service.ErrPaymentFailed):
			respondError(c, response.CodeInternal, "error.payment_provider_failed", err)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	requestLog(c).Infow("admin_dispute_resolved",
		"admin_id", adminID,
		"dispute_id", dispute.DisputeID,
		"resolution", dispute.Resolution,
	)

	response.Success(c, dispute)
}
