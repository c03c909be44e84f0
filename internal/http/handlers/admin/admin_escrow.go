package admin

import (
	"errors"
	"strconv"

	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/repository"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ListEscrows 托管列表
func (h *Handler) ListEscrows(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	escrows, total, err := h.EscrowRepo.List(repository.EscrowListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, escrows, response.NewPagination(page, pageSize, total))
}

// GetEscrow 托管详情
func (h *Handler) GetEscrow(c *gin.Context) {
	escrow, err := h.EscrowRepo.GetByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if escrow == nil {
		respondError(c, response.CodeNotFound, "error.escrow_not_found", nil)
		return
	}

	response.Success(c, escrow)
}

// ReleaseEscrow 管理端放款托管
func (h *Handler) ReleaseEscrow(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	escrow, err := h.EscrowService.Release(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEscrowNotFound):
			respondError(c, response.CodeNotFound, "error.escrow_not_found", nil)
		case errors.Is(err, service.ErrEscrowNotReleasable):
			respondError(c, response.CodeConflict, "error.escrow_status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	requestLog(c).Infow("admin_escrow_released",
		"admin_id", adminID,
		"escrow_id", escrow.EscrowID,
	)

	response.Success(c, escrow)
}

// RefundEscrowRequest 管理端退款请求
type RefundEscrowRequest struct {
	Reason string `json:"reason"`
}

// RefundEscrow 管理端全额退款托管
func (h *Handler) RefundEscrow(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req RefundEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	escrow, err := h.EscrowService.Refund(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEscrowNotFound):
			respondError(c, response.CodeNotFound, "error.escrow_not_found", nil)
		case errors.Is(err, service.ErrEscrowNotRefundable):
			respondError(c, response.CodeConflict, "error.escrow_status_invalid", nil)
		case errors.Is(err, service.ErrPaymentFailed):
			respondError(c, response.CodeInternal, "error.payment_provider_failed", err)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	requestLog(c).Infow("admin_escrow_refunded",
		"admin_id", adminID,
		"escrow_id", escrow.EscrowID,
	)

	response.Success(c, escrow)
}
