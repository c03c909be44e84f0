package provider

import (
	"github.com/colaboreaza/backend/internal/authz"
	"github.com/colaboreaza/backend/internal/cache"
	"github.com/colaboreaza/backend/internal/config"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/payment"
	"github.com/colaboreaza/backend/internal/queue"
	"github.com/colaboreaza/backend/internal/repository"
	"github.com/colaboreaza/backend/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config          *config.Config
	QueueClient     *queue.Client
	PaymentProvider payment.Provider

	// Repositories
	UserRepo         repository.UserRepository
	ProfileRepo      repository.ProfileRepository
	CollabRepo       repository.CollaborationRepository
	ApplicationRepo  repository.ApplicationRepository
	EscrowRepo       repository.EscrowRepository
	CancellationRepo repository.CancellationRepository
	DisputeRepo      repository.DisputeRepository
	CommissionRepo   repository.CommissionRepository
	ReviewRepo       repository.ReviewRepository
	MessageRepo      repository.MessageRepository
	SettingRepo      repository.SettingRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	ProfileService      *service.ProfileService
	CollabService       *service.CollaborationService
	ApplicationService  *service.ApplicationService
	EscrowService       *service.EscrowService
	CancellationService *service.CancellationService
	DisputeService      *service.DisputeService
	ReviewService       *service.ReviewService
	MessageService      *service.MessageService
	CommissionService   *service.CommissionService
	StatsService        *service.StatsService
	SettingService      *service.SettingService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化支付提供方
	c.initPaymentProvider()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProfileRepo = repository.NewProfileRepository(db)
	c.CollabRepo = repository.NewCollaborationRepository(db)
	c.ApplicationRepo = repository.NewApplicationRepository(db)
	c.EscrowRepo = repository.NewEscrowRepository(db)
	c.CancellationRepo = repository.NewCancellationRepository(db)
	c.DisputeRepo = repository.NewDisputeRepository(db)
	c.CommissionRepo = repository.NewCommissionRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.MessageRepo = repository.NewMessageRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initPaymentProvider() {
	switch c.Config.Payment.Provider {
	case "netopia":
		p, err := payment.NewNetopiaProvider(payment.NetopiaConfig{
			BaseURL:   c.Config.Payment.BaseURL,
			APIKey:    c.Config.Payment.APIKey,
			Signature: c.Config.Payment.Signature,
			TimeoutMS: c.Config.Payment.TimeoutMS,
		})
		if err != nil {
			logger.Errorw("provider_init_payment_failed", "provider", "netopia", "error", err)
			panic(err)
		}
		c.PaymentProvider = p
	default:
		c.PaymentProvider = payment.NewMockProvider()
	}
	logger.Infow("provider_payment_ready", "provider", c.PaymentProvider.Name())
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.SettingService = service.NewSettingService(c.SettingRepo, c.Config.Escrow.DefaultCommissionRate)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.ProfileService = service.NewProfileService(c.ProfileRepo, c.UserRepo)
	c.CollabService = service.NewCollaborationService(c.CollabRepo, c.EscrowRepo, c.UserRepo, c.QueueClient, c.Config.Escrow.ConfirmWindowHours)
	c.ApplicationService = service.NewApplicationService(c.ApplicationRepo, c.CollabRepo, c.ProfileRepo, c.UserRepo, c.QueueClient)
	c.EscrowService = service.NewEscrowService(c.EscrowRepo, c.CollabRepo, c.ApplicationRepo, c.CommissionRepo, c.SettingService, c.PaymentProvider)
	c.CancellationService = service.NewCancellationService(c.CancellationRepo, c.CollabRepo, c.EscrowRepo, c.ApplicationRepo, c.EscrowService)
	c.DisputeService = service.NewDisputeService(c.DisputeRepo, c.CollabRepo, c.EscrowRepo, c.ApplicationRepo, c.MessageRepo, c.EscrowService)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ApplicationRepo, c.CollabRepo, c.ProfileRepo, c.QueueClient, c.Config.Escrow.ReviewRevealDays)
	c.MessageService = service.NewMessageService(c.MessageRepo, c.CollabRepo, c.ApplicationRepo, c.DisputeRepo)
	c.CommissionService = service.NewCommissionService(c.CommissionRepo, c.CollabRepo)
	c.StatsService = service.NewStatsService(c.UserRepo, c.ProfileRepo, c.CollabRepo, c.ApplicationRepo, c.DisputeRepo, c.CancellationRepo, c.CommissionRepo)
}
