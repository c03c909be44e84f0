package admin

import (
	"net/url"
	"strings"

	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 获取当前管理员权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.Success(c, gin.H{
		"admin_id": adminID,
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	logger.Infow("admin_authz_role_created",
		"admin_id", adminID,
		"role", role,
	)

	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole 删除角色
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	role := decodeRoleParam(c.Param("role"))
	if strings.TrimSpace(role) == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	logger.Infow("admin_authz_role_deleted",
		"admin_id", adminID,
		"role", role,
	)

	response.Success(c, nil)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if strings.TrimSpace(role) == "" {
		respondError(c, response.CodeBadRequest, "error.invalid_request", nil)
		return
	}

	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	logger.Infow("admin_authz_policy_granted",
		"admin_id", adminID,
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)

	response.Success(c, nil)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	logger.Infow("admin_authz_policy_revoked",
		"admin_id", adminID,
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)

	response.Success(c, nil)
}

// GetAuthzAdminRoles 获取指定管理员的角色
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	user, ok := h.loadAdminUserParam(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(user.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles 设置指定管理员的角色
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	user, ok := h.loadAdminUserParam(c)
	if !ok {
		return
	}

	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	if err := h.AuthzService.SetAdminRoles(user.ID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_request", err)
		return
	}

	logger.Infow("admin_authz_admin_roles_updated",
		"admin_id", adminID,
		"target_user_id", user.UserID,
		"roles", req.Roles,
	)

	response.Success(c, nil)
}

// loadAdminUserParam 解析路径参数指向的管理员用户
func (h *Handler) loadAdminUserParam(c *gin.Context) (*models.User, bool) {
	user, err := h.UserRepo.GetByPublicID(c.Param("id"))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return nil, false
	}
	if user == nil || !user.IsAdmin {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return nil, false
	}
	return user, true
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
