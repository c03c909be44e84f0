package admin

import (
	"strconv"

	"github.com/colaboreaza/backend/internal/cache"
	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		UserType: c.Query("user_type"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

// GetUser 用户详情（达人附带档案）
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.UserRepo.GetByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}

	result := gin.H{"user": user}
	if user.UserType == constants.UserTypeInfluencer {
		profile, profileErr := h.ProfileRepo.GetByUserID(user.ID)
		if profileErr != nil {
			respondError(c, response.CodeInternal, "error.internal", profileErr)
			return
		}
		result["profile"] = profile
	}

	response.Success(c, result)
}

// UserStatusRequest 用户状态变更请求
type UserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetUserStatus 启用或停用用户
// 停用后清除认证状态缓存，已签发的令牌在下一次校验时失效
func (h *Handler) SetUserStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}
	if req.Status != constants.UserStatusActive && req.Status != constants.UserStatusDisabled {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	user, err := h.UserRepo.GetByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}

	user.Status = req.Status
	if err := h.UserRepo.Update(user); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if err := cache.DelUserAuthState(c.Request.Context(), user.ID); err != nil {
		requestLog(c).Warnw("auth_state_cache_del_failed", "user_id", user.ID, "error", err)
	}

	requestLog(c).Infow("admin_user_status_updated",
		"admin_id", adminID,
		"user_id", user.UserID,
		"status", user.Status,
	)

	response.Success(c, user)
}
