package service

import (
	"strings"
	"time"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/queue"
	"github.com/colaboreaza/backend/internal/repository"

	"gorm.io/gorm"
)

// CollaborationService 合作服务
type CollaborationService struct {
	collabRepo         repository.CollaborationRepository
	escrowRepo         repository.EscrowRepository
	userRepo           repository.UserRepository
	queueClient        *queue.Client
	confirmWindowHours int
}

// NewCollaborationService 创建合作服务
func NewCollaborationService(collabRepo repository.CollaborationRepository, escrowRepo repository.EscrowRepository, userRepo repository.UserRepository, queueClient *queue.Client, confirmWindowHours int) *CollaborationService {
	if confirmWindowHours <= 0 {
		confirmWindowHours = constants.DefaultConfirmWindowHours
	}
	return &CollaborationService{
		collabRepo:         collabRepo,
		escrowRepo:         escrowRepo,
		userRepo:           userRepo,
		queueClient:        queueClient,
		confirmWindowHours: confirmWindowHours,
	}
}

// 合作状态机允许的流转
// active 可以不经 in_progress 直接完成
var collabTransitions = map[string]map[string]bool{
	constants.CollabStatusActive: {
		constants.CollabStatusInProgress: true,
		constants.CollabStatusCompleted:  true,
	},
	constants.CollabStatusInProgress: {
		constants.CollabStatusCompleted: true,
	},
}

// CreateCollabInput 创建合作输入
type CreateCollabInput struct {
	Title             string
	Description       string
	Deliverables      []string
	BudgetMin         *models.Money
	BudgetMax         *models.Money
	Deadline          *time.Time
	Platform          string
	CreatorsNeeded    int
	CollaborationType string
	IsPublic          *bool
}

// UpdateCollabInput 更新合作输入
type UpdateCollabInput struct {
	Title          string
	Description    string
	Deliverables   []string
	BudgetMin      *models.Money
	BudgetMax      *models.Money
	Deadline       *time.Time
	Platform       string
	CreatorsNeeded int
	IsPublic       *bool
}

// Create 创建合作
func (s *CollaborationService) Create(brandUserID uint, input CreateCollabInput) (*models.Collaboration, error) {
	user, err := s.userRepo.GetByID(brandUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.UserType != constants.UserTypeBrand {
		return nil, ErrNotBrand
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidCollabInput
	}

	collabType := strings.ToLower(strings.TrimSpace(input.CollaborationType))
	switch collabType {
	case constants.CollabTypePaid, constants.CollabTypeBarter, constants.CollabTypeFree:
	default:
		return nil, ErrInvalidCollabType
	}

	paymentStatus := constants.PaymentStatusNone
	if collabType == constants.CollabTypePaid {
		if !hasPositiveBudget(input.BudgetMin, input.BudgetMax) {
			return nil, ErrInvalidBudget
		}
		paymentStatus = constants.PaymentStatusAwaitingEscrow
	}

	creatorsNeeded := input.CreatorsNeeded
	if creatorsNeeded <= 0 {
		creatorsNeeded = 1
	}

	collab := &models.Collaboration{
		CollabID:          models.NewPublicID(constants.IDPrefixCollab),
		BrandUserID:       brandUserID,
		BrandName:         user.Name,
		Title:             title,
		Description:       strings.TrimSpace(input.Description),
		Deliverables:      input.Deliverables,
		BudgetMin:         input.BudgetMin,
		BudgetMax:         input.BudgetMax,
		Deadline:          input.Deadline,
		Platform:          strings.TrimSpace(input.Platform),
		CreatorsNeeded:    creatorsNeeded,
		CollaborationType: collabType,
		Status:            constants.CollabStatusActive,
		PaymentStatus:     paymentStatus,
		IsPublic:          true,
	}
	if input.IsPublic != nil {
		collab.IsPublic = *input.IsPublic
	}

	if err := s.collabRepo.Create(collab); err != nil {
		return nil, err
	}

	logger.Infow("collab_created",
		"collab_id", collab.CollabID,
		"type", collab.CollaborationType,
		"payment_status", collab.PaymentStatus,
	)
	return collab, nil
}

// Update 更新合作（仅限 active 状态，类型不可变）
func (s *CollaborationService) Update(collabID string, actorUserID uint, input UpdateCollabInput) (*models.Collaboration, error) {
	collab, err := s.getOwned(collabID, actorUserID)
	if err != nil {
		return nil, err
	}
	if collab.Status != constants.CollabStatusActive {
		return nil, ErrCollabNotEditable
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		collab.Title = title
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		collab.Description = desc
	}
	if input.Deliverables != nil {
		collab.Deliverables = input.Deliverables
	}
	if input.BudgetMin != nil {
		collab.BudgetMin = input.BudgetMin
	}
	if input.BudgetMax != nil {
		collab.BudgetMax = input.BudgetMax
	}
	if input.Deadline != nil {
		collab.Deadline = input.Deadline
	}
	if platform := strings.TrimSpace(input.Platform); platform != "" {
		collab.Platform = platform
	}
	if input.CreatorsNeeded > 0 {
		collab.CreatorsNeeded = input.CreatorsNeeded
	}
	if input.IsPublic != nil {
		collab.IsPublic = *input.IsPublic
	}

	if collab.CollaborationType == constants.CollabTypePaid && !hasPositiveBudget(collab.BudgetMin, collab.BudgetMax) {
		return nil, ErrInvalidBudget
	}

	if err := s.collabRepo.Update(collab); err != nil {
		return nil, err
	}
	return collab, nil
}

// Get 按公开 ID 获取合作
func (s *CollaborationService) Get(collabID string) (*models.Collaboration, error) {
	collab, err := s.collabRepo.GetByPublicID(collabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	return collab, nil
}

// List 查询合作列表
func (s *CollaborationService) List(filter repository.CollabListFilter) ([]models.Collaboration, int64, error) {
	return s.collabRepo.List(filter)
}

// ChangeStatus 推进合作状态
// 完成 paid 合作时进入确认窗口，放款始终由品牌方或管理员显式触发
func (s *CollaborationService) ChangeStatus(collabID string, actorUserID uint, newStatus string) (*models.Collaboration, error) {
	collab, err := s.getOwned(collabID, actorUserID)
	if err != nil {
		return nil, err
	}

	newStatus = strings.ToLower(strings.TrimSpace(newStatus))
	allowed, ok := collabTransitions[collab.Status]
	if !ok || !allowed[newStatus] {
		return nil, ErrInvalidStatusTransition
	}

	if newStatus == constants.CollabStatusCompleted {
		return s.complete(collab)
	}

	if err := s.collabRepo.UpdateStatus(collab.ID, map[string]interface{}{
		"status": newStatus,
	}); err != nil {
		return nil, err
	}
	collab.Status = newStatus
	return collab, nil
}

// complete 处理完成流转
func (s *CollaborationService) complete(collab *models.Collaboration) (*models.Collaboration, error) {
	now := time.Now()

	if collab.CollaborationType != constants.CollabTypePaid {
		if err := s.collabRepo.UpdateStatus(collab.ID, map[string]interface{}{
			"status":       constants.CollabStatusCompleted,
			"completed_at": now,
		}); err != nil {
			return nil, err
		}
		collab.Status = constants.CollabStatusCompleted
		collab.CompletedAt = &now
		return collab, nil
	}

	escrow, err := s.escrowRepo.GetActiveByCollab(collab.ID)
	if err != nil {
		return nil, err
	}
	if escrow == nil || escrow.Status != constants.EscrowStatusSecured {
		return nil, ErrEscrowNotSecured
	}

	releaseAt := now.Add(time.Duration(s.confirmWindowHours) * time.Hour)
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		// 事务内加锁复读，避免与放款或退款并发交叉
		current, err := s.escrowRepo.WithTx(tx).GetByIDForUpdate(escrow.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Status != constants.EscrowStatusSecured {
			return ErrEscrowNotSecured
		}
		if err := s.escrowRepo.WithTx(tx).UpdateStatus(escrow.ID, map[string]interface{}{
			"status":               constants.EscrowStatusCompletedPendingRelease,
			"release_scheduled_at": releaseAt,
		}); err != nil {
			return err
		}
		return s.collabRepo.WithTx(tx).UpdateStatus(collab.ID, map[string]interface{}{
			"status":               constants.CollabStatusCompletedPendingRelease,
			"payment_status":       constants.PaymentStatusCompletedPendingRelease,
			"completed_at":         now,
			"release_scheduled_at": releaseAt,
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueEscrowReleaseReminder(queue.EscrowReleaseReminderPayload{
		EscrowID: escrow.ID,
	}, time.Until(releaseAt)); err != nil {
		logger.Warnw("escrow_release_reminder_enqueue_failed",
			"escrow_id", escrow.EscrowID,
			"error", err,
		)
	}

	collab.Status = constants.CollabStatusCompletedPendingRelease
	collab.PaymentStatus = constants.PaymentStatusCompletedPendingRelease
	collab.CompletedAt = &now
	collab.ReleaseScheduledAt = &releaseAt

	logger.Infow("collab_completed_pending_release",
		"collab_id", collab.CollabID,
		"release_scheduled_at", releaseAt,
	)
	return collab, nil
}

// getOwned 获取合作并校验归属
func (s *CollaborationService) getOwned(collabID string, actorUserID uint) (*models.Collaboration, error) {
	collab, err := s.collabRepo.GetByPublicID(collabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	if collab.BrandUserID != actorUserID {
		return nil, ErrNotCollabOwner
	}
	return collab, nil
}

func hasPositiveBudget(min, max *models.Money) bool {
	if max != nil && max.IsPositive() {
		return true
	}
	return min != nil && min.IsPositive()
}
