package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/colaboreaza/backend/internal/authz"
	"github.com/colaboreaza/backend/internal/cache"
	"github.com/colaboreaza/backend/internal/config"
	adminhandlers "github.com/colaboreaza/backend/internal/http/handlers/admin"
	publichandlers "github.com/colaboreaza/backend/internal/http/handlers/public"
	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "colab"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		apiV1.GET("/stats", publicHandler.GetStats)
		apiV1.GET("/collabs", publicHandler.ListCollabs)
		apiV1.GET("/collabs/:id", publicHandler.GetCollab)
		apiV1.GET("/influencers/:username", publicHandler.GetInfluencerProfile)
		apiV1.GET("/influencers/:username/reviews", publicHandler.ListInfluencerReviews)
		apiV1.GET("/commission/calculate", publicHandler.CalculateCommission)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.Me)
			user.POST("/me/profile", publicHandler.CreateProfile)
			user.PUT("/me/profile", publicHandler.UpdateMyProfile)
			user.GET("/me/profile", publicHandler.GetMyProfile)

			user.POST("/collabs", publicHandler.CreateCollab)
			user.PUT("/collabs/:id", publicHandler.UpdateCollab)
			user.POST("/collabs/:id/status", publicHandler.ChangeCollabStatus)
			user.GET("/me/collabs", publicHandler.ListMyCollabs)

			user.POST("/collabs/:id/applications", publicHandler.Apply)
			user.GET("/collabs/:id/applications", publicHandler.ListCollabApplications)
			user.GET("/me/applications", publicHandler.ListMyApplications)
			user.POST("/applications/:id/status", publicHandler.SetApplicationStatus)

			user.POST("/applications/:id/reviews", publicHandler.SubmitReview)
			user.GET("/applications/:id/reviews", publicHandler.ListApplicationReviews)
			user.GET("/me/reviews", publicHandler.ListMyReviews)
			user.GET("/me/reviews/pending", publicHandler.ListPendingReviews)

			user.POST("/collabs/:id/escrow", publicHandler.CreateEscrow)
			user.GET("/collabs/:id/escrow", publicHandler.GetCollabEscrow)
			user.POST("/escrows/:id/secure", publicHandler.SecureEscrow)
			user.POST("/escrows/:id/release", publicHandler.ReleaseEscrow)
			user.POST("/escrows/:id/refund", publicHandler.RefundEscrow)

			user.POST("/collabs/:id/cancellations", publicHandler.RequestCancellation)
			user.GET("/collabs/:id/cancellations", publicHandler.ListCollabCancellations)

			user.POST("/collabs/:id/disputes", publicHandler.OpenDispute)
			user.GET("/collabs/:id/disputes", publicHandler.GetCollabDispute)

			user.POST("/collabs/:id/messages", publicHandler.SendMessage)
			user.GET("/collabs/:id/messages", publicHandler.ListMessages)

			user.GET("/me/commissions", publicHandler.ListMyCommissions)
			user.GET("/collabs/:id/commissions", publicHandler.ListCollabCommissions)
		}

		// 管理员接口（is_admin 用户，RBAC 按角色收敛）
		admin := apiV1.Group("/admin")
		admin.Use(
			UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo),
			AdminRequiredMiddleware(),
			AdminRBACMiddleware(c.AuthzService),
		)
		{
			// 运营统计
			admin.GET("/stats", adminHandler.GetStats)

			// 争议管理
			admin.GET("/disputes", adminHandler.ListDisputes)
			admin.GET("/disputes/:id", adminHandler.GetDispute)
			admin.POST("/disputes/:id/review", adminHandler.MarkDisputeUnderReview)
			admin.POST("/disputes/:id/resolve", adminHandler.ResolveDispute)

			// 取消管理
			admin.GET("/cancellations", adminHandler.ListCancellations)
			admin.GET("/cancellations/:id", adminHandler.GetCancellation)
			admin.POST("/cancellations/:id/resolve", adminHandler.ResolveCancellation)

			// 托管与分成
			admin.GET("/escrows", adminHandler.ListEscrows)
			admin.GET("/escrows/:id", adminHandler.GetEscrow)
			admin.POST("/escrows/:id/release", adminHandler.ReleaseEscrow)
			admin.POST("/escrows/:id/refund", adminHandler.RefundEscrow)
			admin.GET("/commissions", adminHandler.ListCommissions)

			// 设置管理
			admin.GET("/settings/commission", adminHandler.GetCommissionSetting)
			admin.PUT("/settings/commission", adminHandler.UpdateCommissionSetting)
			admin.GET("/settings/site", adminHandler.GetSiteConfig)
			admin.PUT("/settings/site", adminHandler.UpdateSiteConfig)

			// 用户管理
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/users/:id", adminHandler.GetUser)
			admin.PUT("/users/:id/status", adminHandler.SetUserStatus)

			// 权限管理
			admin.GET("/authz/me", adminHandler.GetAuthzMe)
			admin.GET("/authz/roles", adminHandler.ListAuthzRoles)
			admin.POST("/authz/roles", adminHandler.CreateAuthzRole)
			admin.DELETE("/authz/roles/:role", adminHandler.DeleteAuthzRole)
			admin.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			admin.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
			admin.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
			admin.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
			admin.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
			admin.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
