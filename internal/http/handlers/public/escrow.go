package public

import (
	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateEscrow 品牌为 paid 合作创建托管
// 金额取预算上限，费率在此刻快照
func (h *Handler) CreateEscrow(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	escrow, err := h.EscrowService.Create(c.Param("id"), userID)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, escrowErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, escrow)
}

// SecureEscrow 品牌入金担保托管
func (h *Handler) SecureEscrow(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	escrow, err := h.EscrowService.Secure(c.Request.Context(), c.Param("id"), userID, c.ClientIP())
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, escrowErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, escrow)
}

// GetCollabEscrow 查询合作当前托管
func (h *Handler) GetCollabEscrow(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	escrow, err := h.EscrowService.GetForCollab(c.Param("id"), userID)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, escrowErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, escrow)
}

// ReleaseEscrow 品牌在确认窗口内主动放款
func (h *Handler) ReleaseEscrow(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	escrow, err := h.EscrowService.ReleaseByBrand(c.Param("id"), userID)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, escrowErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	requestLog(c).Infow("escrow_released_by_brand",
		"escrow_id", escrow.EscrowID,
		"user_id", userID,
	)

	response.Success(c, escrow)
}

// RefundEscrowRequest 退款请求
type RefundEscrowRequest struct {
	Reason string `json:"reason"`
}

// RefundEscrow 品牌申请全额退款（secured 或确认窗口内）
func (h *Handler) RefundEscrow(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req RefundEscrowRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	escrow, err := h.EscrowService.RefundByBrand(c.Request.Context(), c.Param("id"), userID, req.Reason)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, escrowErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	requestLog(c).Infow("escrow_refunded_by_brand",
		"escrow_id", escrow.EscrowID,
		"user_id", userID,
	)

	response.Success(c, escrow)
}

// CalculateCommission 按当前平台费率试算佣金
func (h *Handler) CalculateCommission(c *gin.Context) {
	raw := c.Query("amount")
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		respondError(c, response.CodeBadRequest, "error.amount_invalid", nil)
		return
	}

	quote, err := h.EscrowService.CalculateCommission(models.NewMoneyFromDecimal(amount))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, quote)
}
