package public

import (
	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// RequestCancellationRequest 发起取消请求
type RequestCancellationRequest struct {
	Reason  string `json:"reason" binding:"required"`
	Details string `json:"details"`
}

// RequestCancellation 合作参与方发起取消
// 合作进行前自动结清，进行中转管理员裁决，确认窗口内改走争议
func (h *Handler) RequestCancellation(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req RequestCancellationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	cancellation, err := h.CancellationService.Request(c.Request.Context(), c.Param("id"), userID, service.RequestCancellationInput{
		Reason:  req.Reason,
		Details: req.Details,
	})
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, cancellationErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, cancellation)
}

// ListCollabCancellations 合作下的取消请求记录
func (h *Handler) ListCollabCancellations(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	cancellations, err := h.CancellationService.ListByCollab(c.Param("id"), userID)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, cancellationErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, cancellations)
}
