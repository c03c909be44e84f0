package admin

import (
	"strconv"
	"time"

	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListCommissions 平台佣金流水与汇总
func (h *Handler) ListCommissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CommissionListFilter{
		Page:     page,
		PageSize: pageSize,
		Source:   c.Query("source"),
	}
	if from := c.Query("created_from"); from != "" {
		if parsed, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &parsed
		}
	}
	if to := c.Query("created_to"); to != "" {
		if parsed, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &parsed
		}
	}

	commissions, total, summary, err := h.CommissionService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, gin.H{
		"commissions": commissions,
		"summary":     summary,
	}, response.NewPagination(page, pageSize, total))
}
