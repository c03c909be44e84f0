package service

import (
	"context"
	"strings"
	"time"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/repository"

	"gorm.io/gorm"
)

// DisputeService 争议服务
type DisputeService struct {
	disputeRepo   repository.DisputeRepository
	collabRepo    repository.CollaborationRepository
	escrowRepo    repository.EscrowRepository
	appRepo       repository.ApplicationRepository
	messageRepo   repository.MessageRepository
	escrowService *EscrowService
}

// NewDisputeService 创建争议服务
func NewDisputeService(disputeRepo repository.DisputeRepository, collabRepo repository.CollaborationRepository, escrowRepo repository.EscrowRepository, appRepo repository.ApplicationRepository, messageRepo repository.MessageRepository, escrowService *EscrowService) *DisputeService {
	return &DisputeService{
		disputeRepo:   disputeRepo,
		collabRepo:    collabRepo,
		escrowRepo:    escrowRepo,
		appRepo:       appRepo,
		messageRepo:   messageRepo,
		escrowService: escrowService,
	}
}

// OpenDisputeInput 发起争议输入
type OpenDisputeInput struct {
	Reason  string
	Details string
}

// ResolveDisputeInput 管理员裁决争议输入
type ResolveDisputeInput struct {
	Resolution            string
	SplitInfluencerAmount *models.Money
	SplitBrandAmount      *models.Money
	AdminNotes            string
}

// Open 发起争议
// 仅在确认窗口内允许，冻结合作、托管与会话
func (s *DisputeService) Open(collabID string, actorUserID uint, input OpenDisputeInput) (*models.Dispute, error) {
	collab, err := s.collabRepo.GetByPublicID(collabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}

	role, err := participantRole(s.appRepo, collab, actorUserID)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, ErrNotCollabParticipant
	}

	if collab.Status != constants.CollabStatusCompletedPendingRelease {
		return nil, ErrDisputeWindowClosed
	}

	open, err := s.disputeRepo.GetOpenByCollab(collab.ID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, ErrDisputeExists
	}

	escrow, err := s.escrowRepo.GetActiveByCollab(collab.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dispute := &models.Dispute{
		DisputeID:      models.NewPublicID(constants.IDPrefixDispute),
		CollabID:       collab.ID,
		OpenedByUserID: actorUserID,
		OpenedByRole:   role,
		Reason:         strings.TrimSpace(input.Reason),
		Details:        strings.TrimSpace(input.Details),
		Status:         constants.DisputeStatusOpen,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		// 锁合作行串行化发起，确认窗口与唯一争议约束在事务内复核
		current, err := s.collabRepo.WithTx(tx).GetByIDForUpdate(collab.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Status != constants.CollabStatusCompletedPendingRelease {
			return ErrDisputeWindowClosed
		}
		existing, err := s.disputeRepo.WithTx(tx).GetOpenByCollab(collab.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDisputeExists
		}
		if err := s.disputeRepo.WithTx(tx).Create(dispute); err != nil {
			return err
		}
		if err := s.collabRepo.WithTx(tx).UpdateStatus(collab.ID, map[string]interface{}{
			"status":         constants.CollabStatusDisputed,
			"payment_status": constants.PaymentStatusDisputed,
			"disputed_at":    now,
		}); err != nil {
			return err
		}
		if escrow != nil {
			lockedEscrow, err := s.escrowRepo.WithTx(tx).GetByIDForUpdate(escrow.ID)
			if err != nil {
				return err
			}
			if lockedEscrow == nil || lockedEscrow.Status != constants.EscrowStatusCompletedPendingRelease {
				return ErrDisputeWindowClosed
			}
			if err := s.escrowRepo.WithTx(tx).UpdateStatus(escrow.ID, map[string]interface{}{
				"status": constants.EscrowStatusDisputed,
			}); err != nil {
				return err
			}
		}
		return s.messageRepo.WithTx(tx).SetThreadLocked(collab.ID, true)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("dispute_opened",
		"dispute_id", dispute.DisputeID,
		"collab_id", collab.CollabID,
		"opened_by", role,
	)
	return dispute, nil
}

// MarkUnderReview 管理员受理争议
func (s *DisputeService) MarkUnderReview(disputeID string) (*models.Dispute, error) {
	dispute, err := s.disputeRepo.GetByPublicID(disputeID)
	if err != nil {
		return nil, err
	}
	if dispute == nil {
		return nil, ErrDisputeNotFound
	}
	if dispute.Status != constants.DisputeStatusOpen {
		return nil, ErrDisputeNotOpen
	}
	dispute.Status = constants.DisputeStatusUnderReview
	if err := s.disputeRepo.Update(dispute); err != nil {
		return nil, err
	}
	return dispute, nil
}

// Resolve 管理员裁决争议
func (s *DisputeService) Resolve(ctx context.Context, disputeID string, input ResolveDisputeInput) (*models.Dispute, error) {
	dispute, err := s.disputeRepo.GetByPublicID(disputeID)
	if err != nil {
		return nil, err
	}
	if dispute == nil {
		return nil, ErrDisputeNotFound
	}
	if dispute.Status != constants.DisputeStatusOpen && dispute.Status != constants.DisputeStatusUnderReview {
		return nil, ErrDisputeNotOpen
	}

	collab, err := s.collabRepo.GetByID(dispute.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	escrow, err := s.escrowRepo.GetActiveByCollab(collab.ID)
	if err != nil {
		return nil, err
	}
	if escrow == nil {
		return nil, ErrEscrowNotFound
	}

	resolution := strings.ToLower(strings.TrimSpace(input.Resolution))
	switch resolution {
	case constants.DisputeResolutionReleaseToInfluencer:
		if err := s.resolveRelease(collab, escrow); err != nil {
			return nil, err
		}
	case constants.DisputeResolutionRefundToBrand:
		if err := s.escrowService.refund(ctx, escrow, collab, nil, dispute.Reason); err != nil {
			return nil, err
		}
		if err := s.messageRepo.SetThreadLocked(collab.ID, false); err != nil {
			return nil, err
		}
	case constants.DisputeResolutionSplit:
		if err := s.resolveSplit(collab, escrow, input.SplitInfluencerAmount, input.SplitBrandAmount); err != nil {
			return nil, err
		}
		dispute.SplitInfluencerAmount = input.SplitInfluencerAmount
		dispute.SplitBrandAmount = input.SplitBrandAmount
	default:
		return nil, ErrInvalidResolution
	}

	now := time.Now()
	dispute.Status = constants.DisputeStatusResolved
	dispute.Resolution = resolution
	dispute.AdminNotes = strings.TrimSpace(input.AdminNotes)
	dispute.ResolvedAt = &now
	if err := s.disputeRepo.Update(dispute); err != nil {
		return nil, err
	}

	logger.Infow("dispute_resolved",
		"dispute_id", dispute.DisputeID,
		"resolution", resolution,
	)
	return dispute, nil
}

// resolveRelease 裁决放款给达人，佣金来源标记为争议放款
func (s *DisputeService) resolveRelease(collab *models.Collaboration, escrow *models.Escrow) error {
	accepted, err := s.appRepo.ListAcceptedByCollab(collab.ID)
	if err != nil {
		return err
	}

	now := time.Now()
	return models.DB.Transaction(func(tx *gorm.DB) error {
		// 事务内加锁复读，裁决放款只允许落地一次
		current, err := s.escrowRepo.WithTx(tx).GetByIDForUpdate(escrow.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Status != constants.EscrowStatusDisputed {
			return ErrEscrowNotReleasable
		}
		if err := s.escrowRepo.WithTx(tx).UpdateStatus(escrow.ID, map[string]interface{}{
			"status":      constants.EscrowStatusReleased,
			"released_at": now,
		}); err != nil {
			return err
		}
		if err := s.collabRepo.WithTx(tx).UpdateStatus(collab.ID, map[string]interface{}{
			"status":         constants.CollabStatusCompleted,
			"payment_status": constants.PaymentStatusReleased,
			"released_at":    now,
		}); err != nil {
			return err
		}
		if err := s.escrowService.writeCommissionRows(tx, collab, escrow, accepted, constants.CommissionSourceDisputeRelease); err != nil {
			return err
		}
		return s.messageRepo.WithTx(tx).SetThreadLocked(collab.ID, false)
	})
}

// resolveSplit 裁决分账：金额必须覆盖托管总额，不落佣金流水
func (s *DisputeService) resolveSplit(collab *models.Collaboration, escrow *models.Escrow, influencerAmount, brandAmount *models.Money) error {
	if influencerAmount == nil || brandAmount == nil {
		return ErrSplitAmountInvalid
	}
	if influencerAmount.IsNegative() || brandAmount.IsNegative() {
		return ErrSplitAmountInvalid
	}
	sum := influencerAmount.Decimal.Add(brandAmount.Decimal)
	if !sum.Equal(escrow.TotalAmount.Decimal) {
		return ErrSplitAmountInvalid
	}

	now := time.Now()
	return models.DB.Transaction(func(tx *gorm.DB) error {
		// 事务内加锁复读，拒绝并发下的二次分账
		current, err := s.escrowRepo.WithTx(tx).GetByIDForUpdate(escrow.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Status != constants.EscrowStatusDisputed {
			return ErrEscrowNotReleasable
		}
		if err := s.escrowRepo.WithTx(tx).UpdateStatus(escrow.ID, map[string]interface{}{
			"status":                  constants.EscrowStatusSplitResolved,
			"split_influencer_amount": influencerAmount,
			"split_brand_amount":      brandAmount,
			"released_at":             now,
		}); err != nil {
			return err
		}
		if err := s.collabRepo.WithTx(tx).UpdateStatus(collab.ID, map[string]interface{}{
			"status":         constants.CollabStatusCompleted,
			"payment_status": constants.PaymentStatusSplitResolved,
			"released_at":    now,
		}); err != nil {
			return err
		}
		return s.messageRepo.WithTx(tx).SetThreadLocked(collab.ID, false)
	})
}

// Get 按公开 ID 获取争议
func (s *DisputeService) Get(disputeID string) (*models.Dispute, error) {
	dispute, err := s.disputeRepo.GetByPublicID(disputeID)
	if err != nil {
		return nil, err
	}
	if dispute == nil {
		return nil, ErrDisputeNotFound
	}
	return dispute, nil
}

// GetByCollab 获取合作下最近一条争议（参与方可见）
func (s *DisputeService) GetByCollab(collabID string, actorUserID uint) (*models.Dispute, error) {
	collab, err := s.collabRepo.GetByPublicID(collabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	role, err := participantRole(s.appRepo, collab, actorUserID)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, ErrNotCollabParticipant
	}
	dispute, err := s.disputeRepo.GetLatestByCollab(collab.ID)
	if err != nil {
		return nil, err
	}
	if dispute == nil {
		return nil, ErrDisputeNotFound
	}
	return dispute, nil
}

// List 管理员查询争议列表
func (s *DisputeService) List(filter repository.DisputeListFilter) ([]models.Dispute, int64, error) {
	return s.disputeRepo.List(filter)
}
