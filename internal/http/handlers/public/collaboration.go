package public

import (
	"strconv"
	"time"

	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/repository"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCollabRequest 创建合作请求
type CreateCollabRequest struct {
	Title             string        `json:"title" binding:"required"`
	Description       string        `json:"description"`
	Deliverables      []string      `json:"deliverables"`
	BudgetMin         *models.Money `json:"budget_min"`
	BudgetMax         *models.Money `json:"budget_max"`
	Deadline          *time.Time    `json:"deadline"`
	Platform          string        `json:"platform"`
	CreatorsNeeded    int           `json:"creators_needed"`
	CollaborationType string        `json:"collaboration_type" binding:"required"`
	IsPublic          *bool         `json:"is_public"`
}

// CreateCollab 品牌创建合作
func (h *Handler) CreateCollab(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateCollabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	collab, err := h.CollabService.Create(userID, service.CreateCollabInput{
		Title:             req.Title,
		Description:       req.Description,
		Deliverables:      req.Deliverables,
		BudgetMin:         req.BudgetMin,
		BudgetMax:         req.BudgetMax,
		Deadline:          req.Deadline,
		Platform:          req.Platform,
		CreatorsNeeded:    req.CreatorsNeeded,
		CollaborationType: req.CollaborationType,
		IsPublic:          req.IsPublic,
	})
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, collabWriteErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, collab)
}

// UpdateCollabRequest 更新合作请求
type UpdateCollabRequest struct {
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Deliverables   []string      `json:"deliverables"`
	BudgetMin      *models.Money `json:"budget_min"`
	BudgetMax      *models.Money `json:"budget_max"`
	Deadline       *time.Time    `json:"deadline"`
	Platform       string        `json:"platform"`
	CreatorsNeeded int           `json:"creators_needed"`
	IsPublic       *bool         `json:"is_public"`
}

// UpdateCollab 品牌更新合作（仅 active 状态）
func (h *Handler) UpdateCollab(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateCollabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	collab, err := h.CollabService.Update(c.Param("id"), userID, service.UpdateCollabInput{
		Title:          req.Title,
		Description:    req.Description,
		Deliverables:   req.Deliverables,
		BudgetMin:      req.BudgetMin,
		BudgetMax:      req.BudgetMax,
		Deadline:       req.Deadline,
		Platform:       req.Platform,
		CreatorsNeeded: req.CreatorsNeeded,
		IsPublic:       req.IsPublic,
	})
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, collabWriteErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, collab)
}

// GetCollab 查询合作详情
func (h *Handler) GetCollab(c *gin.Context) {
	collab, err := h.CollabService.Get(c.Param("id"))
	if err != nil {
		respondWithMappedError(c, err, collabAccessErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, collab)
}

// ListCollabs 公开合作列表
func (h *Handler) ListCollabs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	collabs, total, err := h.CollabService.List(repository.CollabListFilter{
		Page:       page,
		PageSize:   pageSize,
		Status:     c.Query("status"),
		Type:       c.Query("type"),
		Platform:   c.Query("platform"),
		Search:     c.Query("search"),
		OnlyPublic: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, collabs, response.NewPagination(page, pageSize, total))
}

// ListMyCollabs 品牌自己的合作列表
func (h *Handler) ListMyCollabs(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	collabs, total, err := h.CollabService.List(repository.CollabListFilter{
		Page:        page,
		PageSize:    pageSize,
		BrandUserID: userID,
		Status:      c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, collabs, response.NewPagination(page, pageSize, total))
}

// CollabStatusRequest 合作状态流转请求
type CollabStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ChangeCollabStatus 合作状态流转
// paid 合作从 in_progress 进入 completed 时要求托管已担保，并转入确认窗口
func (h *Handler) ChangeCollabStatus(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req CollabStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	collab, err := h.CollabService.ChangeStatus(c.Param("id"), userID, req.Status)
	if err != nil {
		rules := concatMappedHandlerErrors(collabAccessErrorRules, collabWriteErrorRules)
		respondWithMappedError(c, err, rules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, collab)
}
