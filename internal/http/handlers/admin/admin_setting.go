package admin

import (
	"errors"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCommissionSetting 当前平台费率
func (h *Handler) GetCommissionSetting(c *gin.Context) {
	rate, err := h.SettingService.CommissionRate()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{"rate": rate})
}

// UpdateCommissionSettingRequest 更新费率请求
type UpdateCommissionSettingRequest struct {
	Rate *float64 `json:"rate" binding:"required"`
}

// UpdateCommissionSetting 更新平台费率
// 仅影响之后创建的托管，已有托管沿用创建时快照
func (h *Handler) UpdateCommissionSetting(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UpdateCommissionSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	rate, err := h.SettingService.SetCommissionRate(*req.Rate)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCommissionRate) {
			respondError(c, response.CodeBadRequest, "error.commission_rate_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.setting_update_failed", err)
		return
	}

	requestLog(c).Infow("admin_commission_rate_updated",
		"admin_id", adminID,
		"rate", rate,
	)

	response.Success(c, gin.H{"rate": rate})
}

// GetSiteConfig 站点配置
func (h *Handler) GetSiteConfig(c *gin.Context) {
	config, err := h.SettingService.GetByKey(constants.SettingKeySiteConfig)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, config)
}

// UpdateSiteConfig 更新站点配置
func (h *Handler) UpdateSiteConfig(c *gin.Context) {
	var req map[string]interface{}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	config, err := h.SettingService.Update(constants.SettingKeySiteConfig, req)
	if err != nil {
		respondError(c, response.CodeInternal, "error.setting_update_failed", err)
		return
	}

	response.Success(c, config)
}
