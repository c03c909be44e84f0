package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/payment"
	"github.com/colaboreaza/backend/internal/queue"
	"github.com/colaboreaza/backend/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// testEnv 服务层测试环境
type testEnv struct {
	db       *gorm.DB
	provider *payment.MockProvider

	settings      *SettingService
	auth          *AuthService
	profiles      *ProfileService
	collabs       *CollaborationService
	applications  *ApplicationService
	escrows       *EscrowService
	cancellations *CancellationService
	disputes      *DisputeService
	reviews       *ReviewService
	messages      *MessageService
	commissions   *CommissionService
	stats         *StatsService
}

func setupServiceTest(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.InfluencerProfile{},
		&models.Collaboration{},
		&models.Application{},
		&models.Escrow{},
		&models.Cancellation{},
		&models.Dispute{},
		&models.Commission{},
		&models.Review{},
		&models.Message{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	collabRepo := repository.NewCollaborationRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	escrowRepo := repository.NewEscrowRepository(db)
	cancelRepo := repository.NewCancellationRepository(db)
	disputeRepo := repository.NewDisputeRepository(db)
	commissionRepo := repository.NewCommissionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	provider := payment.NewMockProvider()

	settings := NewSettingService(settingRepo, constants.DefaultCommissionRatePercent)
	escrows := NewEscrowService(escrowRepo, collabRepo, appRepo, commissionRepo, settings, provider)

	env := &testEnv{
		db:            db,
		provider:      provider,
		settings:      settings,
		profiles:      NewProfileService(profileRepo, userRepo),
		collabs:       NewCollaborationService(collabRepo, escrowRepo, userRepo, queueClient, constants.DefaultConfirmWindowHours),
		applications:  NewApplicationService(appRepo, collabRepo, profileRepo, userRepo, queueClient),
		escrows:       escrows,
		cancellations: NewCancellationService(cancelRepo, collabRepo, escrowRepo, appRepo, escrows),
		disputes:      NewDisputeService(disputeRepo, collabRepo, escrowRepo, appRepo, messageRepo, escrows),
		reviews:       NewReviewService(reviewRepo, appRepo, collabRepo, profileRepo, queueClient, constants.DefaultReviewRevealDays),
		messages:      NewMessageService(messageRepo, collabRepo, appRepo, disputeRepo),
		commissions:   NewCommissionService(commissionRepo, collabRepo),
		stats:         NewStatsService(userRepo, profileRepo, collabRepo, appRepo, disputeRepo, cancelRepo, commissionRepo),
	}
	return env
}

func createTestBrand(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		UserID:       models.NewPublicID(constants.IDPrefixUser),
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test Brand",
		UserType:     constants.UserTypeBrand,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	return user
}

func createTestInfluencer(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()
	user := &models.User{
		UserID:       models.NewPublicID(constants.IDPrefixUser),
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test Influencer",
		UserType:     constants.UserTypeInfluencer,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create influencer failed: %v", err)
	}
	profile := &models.InfluencerProfile{
		UserID:    user.ID,
		Username:  username,
		Available: true,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile failed: %v", err)
	}
	return user
}

func createPaidCollab(t *testing.T, env *testEnv, brand *models.User, budget float64) *models.Collaboration {
	t.Helper()
	max := models.NewMoneyFromFloat(budget)
	collab, err := env.collabs.Create(brand.ID, CreateCollabInput{
		Title:             "Campanie Instagram",
		Description:       "Postari sponsorizate",
		CollaborationType: constants.CollabTypePaid,
		BudgetMax:         &max,
	})
	if err != nil {
		t.Fatalf("create paid collab failed: %v", err)
	}
	return collab
}

func createBarterCollab(t *testing.T, env *testEnv, brand *models.User) *models.Collaboration {
	t.Helper()
	collab, err := env.collabs.Create(brand.ID, CreateCollabInput{
		Title:             "Colaborare barter",
		CollaborationType: constants.CollabTypeBarter,
	})
	if err != nil {
		t.Fatalf("create barter collab failed: %v", err)
	}
	return collab
}

func acceptTestApplication(t *testing.T, env *testEnv, collab *models.Collaboration, brand, influencer *models.User, proposed *models.Money) *models.Application {
	t.Helper()
	application, err := env.applications.Apply(collab.CollabID, influencer.ID, ApplyInput{
		Message:       "Sunt interesata",
		ProposedPrice: proposed,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	application, err = env.applications.SetStatus(application.ApplicationID, brand.ID, constants.ApplicationStatusAccepted)
	if err != nil {
		t.Fatalf("accept application failed: %v", err)
	}
	return application
}

func securedTestEscrow(t *testing.T, env *testEnv, collab *models.Collaboration, brand *models.User) *models.Escrow {
	t.Helper()
	escrow, err := env.escrows.Create(collab.CollabID, brand.ID)
	if err != nil {
		t.Fatalf("create escrow failed: %v", err)
	}
	escrow, err = env.escrows.Secure(context.Background(), escrow.EscrowID, brand.ID, "127.0.0.1")
	if err != nil {
		t.Fatalf("secure escrow failed: %v", err)
	}
	return escrow
}

func reloadCollab(t *testing.T, db *gorm.DB, id uint) *models.Collaboration {
	t.Helper()
	var collab models.Collaboration
	if err := db.First(&collab, id).Error; err != nil {
		t.Fatalf("reload collab failed: %v", err)
	}
	return &collab
}

func reloadEscrow(t *testing.T, db *gorm.DB, id uint) *models.Escrow {
	t.Helper()
	var escrow models.Escrow
	if err := db.First(&escrow, id).Error; err != nil {
		t.Fatalf("reload escrow failed: %v", err)
	}
	return &escrow
}
