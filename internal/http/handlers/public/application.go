package public

import (
	"strconv"

	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/repository"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ApplyRequest 申请合作请求
type ApplyRequest struct {
	Message              string        `json:"message"`
	SelectedDeliverables []string      `json:"selected_deliverables"`
	ProposedPrice        *models.Money `json:"proposed_price"`
}

// Apply 达人申请合作
func (h *Handler) Apply(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	application, err := h.ApplicationService.Apply(c.Param("id"), userID, service.ApplyInput{
		Message:              req.Message,
		SelectedDeliverables: req.SelectedDeliverables,
		ProposedPrice:        req.ProposedPrice,
	})
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, applicationErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, application)
}

// ApplicationStatusRequest 申请状态变更请求
type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetApplicationStatus 品牌接受或拒绝申请
// 接受后进入 in_progress 并开启消息会话，状态变更异步通知达人
func (h *Handler) SetApplicationStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	application, err := h.ApplicationService.SetStatus(c.Param("id"), userID, req.Status)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, applicationErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, application)
}

// ListCollabApplications 合作下的申请列表（仅品牌方）
func (h *Handler) ListCollabApplications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	applications, total, err := h.ApplicationService.ListByCollab(c.Param("id"), userID, repository.ApplicationListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	})
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, applicationErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.SuccessWithPage(c, applications, response.NewPagination(page, pageSize, total))
}

// ListMyApplications 达人自己的申请列表
func (h *Handler) ListMyApplications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	applications, total, err := h.ApplicationService.ListMine(userID, repository.ApplicationListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, applications, response.NewPagination(page, pageSize, total))
}
