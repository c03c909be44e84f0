package admin

import (
	"github.com/colaboreaza/backend/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStats 管理端运营统计
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.StatsService.Admin()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, stats)
}
