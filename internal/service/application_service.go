package service

import (
	"strings"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/queue"
	"github.com/colaboreaza/backend/internal/repository"

	"gorm.io/gorm"
)

// ApplicationService 申请服务
type ApplicationService struct {
	appRepo     repository.ApplicationRepository
	collabRepo  repository.CollaborationRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	queueClient *queue.Client
}

// NewApplicationService 创建申请服务
func NewApplicationService(appRepo repository.ApplicationRepository, collabRepo repository.CollaborationRepository, profileRepo repository.ProfileRepository, userRepo repository.UserRepository, queueClient *queue.Client) *ApplicationService {
	return &ApplicationService{
		appRepo:     appRepo,
		collabRepo:  collabRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		queueClient: queueClient,
	}
}

// ApplyInput 申请合作输入
type ApplyInput struct {
	Message              string
	SelectedDeliverables []string
	ProposedPrice        *models.Money
}

// Apply 达人申请合作
func (s *ApplicationService) Apply(collabID string, influencerUserID uint, input ApplyInput) (*models.Application, error) {
	user, err := s.userRepo.GetByID(influencerUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.UserType != constants.UserTypeInfluencer {
		return nil, ErrNotInfluencer
	}

	profile, err := s.profileRepo.GetByUserID(influencerUserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileRequired
	}

	collab, err := s.collabRepo.GetByPublicID(collabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	if collab.Status != constants.CollabStatusActive {
		return nil, ErrApplicationClosed
	}

	exist, err := s.appRepo.GetByCollabAndInfluencer(collab.ID, influencerUserID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrAlreadyApplied
	}

	application := &models.Application{
		ApplicationID:        models.NewPublicID(constants.IDPrefixApplication),
		CollabID:             collab.ID,
		InfluencerUserID:     influencerUserID,
		InfluencerName:       user.Name,
		InfluencerUsername:   profile.Username,
		Message:              strings.TrimSpace(input.Message),
		SelectedDeliverables: input.SelectedDeliverables,
		ProposedPrice:        input.ProposedPrice,
		Status:               constants.ApplicationStatusPending,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.appRepo.WithTx(tx).Create(application); err != nil {
			return err
		}
		return s.collabRepo.WithTx(tx).IncrementApplicants(collab.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("application_created",
		"application_id", application.ApplicationID,
		"collab_id", collab.CollabID,
	)
	return application, nil
}

// SetStatus 品牌方处理申请（接受 / 拒绝）
func (s *ApplicationService) SetStatus(applicationID string, actorUserID uint, status string) (*models.Application, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.ApplicationStatusAccepted && status != constants.ApplicationStatusRejected {
		return nil, ErrInvalidApplicationStatus
	}

	application, err := s.appRepo.GetByPublicID(applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}

	collab, err := s.collabRepo.GetByID(application.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	if collab.BrandUserID != actorUserID {
		return nil, ErrNotCollabOwner
	}
	if application.Status != constants.ApplicationStatusPending {
		return nil, ErrApplicationNotPending
	}

	application.Status = status
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.appRepo.WithTx(tx).Update(application); err != nil {
			return err
		}
		if status != constants.ApplicationStatusAccepted {
			return nil
		}
		profile, err := s.profileRepo.WithTx(tx).GetByUserID(application.InfluencerUserID)
		if err != nil {
			return err
		}
		if profile == nil {
			return nil
		}
		if !containsString(profile.PreviousCollaborations, collab.Title) {
			profile.PreviousCollaborations = append(profile.PreviousCollaborations, collab.Title)
			return s.profileRepo.WithTx(tx).Update(profile)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueApplicationStatusEmail(queue.ApplicationStatusEmailPayload{
		ApplicationID: application.ID,
		Status:        status,
	}); err != nil {
		logger.Warnw("application_status_email_enqueue_failed",
			"application_id", application.ApplicationID,
			"error", err,
		)
	}

	logger.Infow("application_status_changed",
		"application_id", application.ApplicationID,
		"status", status,
	)
	return application, nil
}

// Get 按公开 ID 获取申请
func (s *ApplicationService) Get(applicationID string) (*models.Application, error) {
	application, err := s.appRepo.GetByPublicID(applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrApplicationNotFound
	}
	return application, nil
}

// ListByCollab 品牌方查看合作下的申请
func (s *ApplicationService) ListByCollab(collabID string, actorUserID uint, filter repository.ApplicationListFilter) ([]models.Application, int64, error) {
	collab, err := s.collabRepo.GetByPublicID(collabID)
	if err != nil {
		return nil, 0, err
	}
	if collab == nil {
		return nil, 0, ErrCollabNotFound
	}
	if collab.BrandUserID != actorUserID {
		return nil, 0, ErrNotCollabOwner
	}
	filter.CollabID = collab.ID
	filter.InfluencerUserID = 0
	return s.appRepo.List(filter)
}

// ListMine 达人查看自己的申请
func (s *ApplicationService) ListMine(influencerUserID uint, filter repository.ApplicationListFilter) ([]models.Application, int64, error) {
	filter.InfluencerUserID = influencerUserID
	filter.CollabID = 0
	return s.appRepo.List(filter)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
