package public

import (
	"github.com/colaboreaza/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SendMessageRequest 发送消息请求
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage 在合作会话中发送消息
// 会话在申请被接受后开启，争议期间锁定
func (h *Handler) SendMessage(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	message, err := h.MessageService.Send(c.Param("id"), userID, req.Content)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, messageErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, message)
}

// ListMessages 合作会话消息记录
func (h *Handler) ListMessages(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	messages, err := h.MessageService.List(c.Param("id"), userID)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, messageErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, messages)
}
