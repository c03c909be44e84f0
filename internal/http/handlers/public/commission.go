package public

import (
	"strconv"

	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListMyCommissions 达人收益流水与汇总
func (h *Handler) ListMyCommissions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	commissions, total, summary, err := h.CommissionService.ListForInfluencer(userID, repository.CommissionListFilter{
		Page:     page,
		PageSize: pageSize,
		Source:   c.Query("source"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, gin.H{
		"commissions": commissions,
		"summary":     summary,
	}, response.NewPagination(page, pageSize, total))
}

// ListCollabCommissions 合作下的佣金流水（参与方可见）
func (h *Handler) ListCollabCommissions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	commissions, err := h.CommissionService.ListByCollab(c.Param("id"), userID)
	if err != nil {
		respondWithMappedError(c, err, collabAccessErrorRules, response.CodeInternal, "error.internal")
		return
	}

	response.Success(c, commissions)
}
