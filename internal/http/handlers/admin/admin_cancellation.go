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

// ListCancellations 取消请求列表
func (h *Handler) ListCancellations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	cancellations, total, err := h.CancellationService.List(repository.CancellationListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, cancellations, response.NewPagination(page, pageSize, total))
}

// GetCancellation 取消请求详情
func (h *Handler) GetCancellation(c *gin.Context) {
	cancellation, err := h.CancellationService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCancellationNotFound) {
			respondError(c, response.CodeNotFound, "error.cancellation_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	collab, err := h.CollabRepo.GetByID(cancellation.CollabID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"cancellation":  cancellation,
		"collaboration": collab,
	})
}

// ResolveCancellationRequest 取消请求裁决
type ResolveCancellationRequest struct {
	Resolution    string        `json:"resolution" binding:"required"`
	PartialAmount *models.Money `json:"partial_amount"`
	AdminNotes    string        `json:"admin_notes"`
}

// ResolveCancellation 裁决进行中合作的取消请求
// full_refund / partial_refund 退款并终止，continue 继续合作，no_payment 终止不退款
func (h *Handler) ResolveCancellation(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req ResolveCancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	cancellation, err := h.CancellationService.Resolve(c.Request.Context(), c.Param("id"), service.ResolveCancellationInput{
		Resolution:    req.Resolution,
		PartialAmount: req.PartialAmount,
		AdminNotes:    req.AdminNotes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCancellationNotFound):
			respondError(c, response.CodeNotFound, "error.cancellation_not_found", nil)
		case errors.Is(err, service.ErrCancellationNotPending):
			respondError(c, response.CodeConflict, "error.cancellation_status_invalid", nil)
		case errors.Is(err, service.ErrInvalidResolution):
			respondError(c, response.CodeBadRequest, "error.cancellation_resolution_invalid", nil)
		case errors.Is(err, service.ErrPartialAmountInvalid):
			respondError(c, response.CodeBadRequest, "error.amount_invalid", nil)
		case errors.Is(err, service.ErrPaymentFailed):
			respondError(c, response.CodeInternal, "error.payment_provider_failed", err)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	requestLog(c).Infow("admin_cancellation_resolved",
		"admin_id", adminID,
		"cancellation_id", cancellation.CancellationID,
		"resolution", cancellation.Resolution,
	)

	response.Success(c, cancellation)
}
