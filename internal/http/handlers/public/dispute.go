package public

import (
	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// OpenDisputeRequest 发起争议请求
type OpenDisputeRequest struct {
	Reason  string `json:"reason" binding:"required"`
	Details string `json:"details"`
}

// OpenDispute 确认窗口内发起争议
// 冻结合作、托管与会话，等待管理员裁决
func (h *Handler) OpenDispute(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req OpenDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	dispute, err := h.DisputeService.Open(c.Param("id"), userID, service.OpenDisputeInput{
		Reason:  req.Reason,
		Details: req.Details,
	})
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, disputeErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, dispute)
}

// GetCollabDispute 查询合作最近一次争议
func (h *Handler) GetCollabDispute(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	dispute, err := h.DisputeService.GetByCollab(c.Param("id"), userID)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, disputeErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, dispute)
}
