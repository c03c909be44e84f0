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

// CancellationService 取消请求服务
type CancellationService struct {
	cancelRepo    repository.CancellationRepository
	collabRepo    repository.CollaborationRepository
	escrowRepo    repository.EscrowRepository
	appRepo       repository.ApplicationRepository
	escrowService *EscrowService
}

// NewCancellationService 创建取消请求服务
func NewCancellationService(cancelRepo repository.CancellationRepository, collabRepo repository.CollaborationRepository, escrowRepo repository.EscrowRepository, appRepo repository.ApplicationRepository, escrowService *EscrowService) *CancellationService {
	return &CancellationService{
		cancelRepo:    cancelRepo,
		collabRepo:    collabRepo,
		escrowRepo:    escrowRepo,
		appRepo:       appRepo,
		escrowService: escrowService,
	}
}

// RequestCancellationInput 发起取消输入
type RequestCancellationInput struct {
	Reason  string
	Details string
}

// ResolveCancellationInput 管理员处理取消输入
type ResolveCancellationInput struct {
	Resolution    string
	PartialAmount *models.Money
	AdminNotes    string
}

// Request 发起取消请求
// 合作进行前自动结清，进行中转管理员裁决，确认窗口内拒绝并引导走争议
func (s *CancellationService) Request(ctx context.Context, collabID string, actorUserID uint, input RequestCancellationInput) (*models.Cancellation, error) {
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

	if collab.Status == constants.CollabStatusCompletedPendingRelease ||
		collab.PaymentStatus == constants.PaymentStatusCompletedPendingRelease {
		return nil, ErrCancellationWindowClosed
	}

	switch collab.Status {
	case constants.CollabStatusActive:
		return s.autoResolve(ctx, collab, actorUserID, role, input)
	case constants.CollabStatusInProgress:
		return s.requestAdminReview(collab, actorUserID, role, input)
	default:
		return nil, ErrCancellationNotAllowed
	}
}

// autoResolve 合作尚未开始，直接取消并按需退款
func (s *CancellationService) autoResolve(ctx context.Context, collab *models.Collaboration, actorUserID uint, role string, input RequestCancellationInput) (*models.Cancellation, error) {
	now := time.Now()
	cancellation := &models.Cancellation{
		CancellationID:    models.NewPublicID(constants.IDPrefixCancellation),
		CollabID:          collab.ID,
		RequestedByUserID: actorUserID,
		RequestedByRole:   role,
		Reason:            strings.TrimSpace(input.Reason),
		Details:           strings.TrimSpace(input.Details),
		Status:            constants.CancellationStatusCompleted,
		Resolution:        constants.CancellationResolutionNoPayment,
		ResolvedAt:        &now,
	}

	switch collab.PaymentStatus {
	case constants.PaymentStatusSecured:
		escrow, err := s.escrowRepo.GetActiveByCollab(collab.ID)
		if err != nil {
			return nil, err
		}
		if escrow == nil {
			return nil, ErrEscrowNotFound
		}
		if err := s.escrowService.refund(ctx, escrow, collab, nil, input.Reason); err != nil {
			return nil, err
		}
		cancellation.Resolution = constants.CancellationResolutionFullRefund
		if err := s.cancelRepo.Create(cancellation); err != nil {
			return nil, err
		}
	case constants.PaymentStatusAwaitingEscrow, constants.PaymentStatusNone:
		err := models.DB.Transaction(func(tx *gorm.DB) error {
			// 锁合作行复核状态，避免与接受申请或完成流转并发交叉
			current, err := s.collabRepo.WithTx(tx).GetByIDForUpdate(collab.ID)
			if err != nil {
				return err
			}
			if current == nil || current.Status != constants.CollabStatusActive {
				return ErrCancellationNotAllowed
			}
			updates := map[string]interface{}{
				"status":       constants.CollabStatusCancelled,
				"cancelled_at": now,
			}
			if current.PaymentStatus == constants.PaymentStatusAwaitingEscrow {
				updates["payment_status"] = constants.PaymentStatusNone
			}
			if err := s.collabRepo.WithTx(tx).UpdateStatus(collab.ID, updates); err != nil {
				return err
			}
			return s.cancelRepo.WithTx(tx).Create(cancellation)
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrCancellationNotAllowed
	}

	logger.Infow("cancellation_auto_resolved",
		"cancellation_id", cancellation.CancellationID,
		"collab_id", collab.CollabID,
		"resolution", cancellation.Resolution,
	)
	return cancellation, nil
}

// requestAdminReview 合作进行中，转管理员裁决
func (s *CancellationService) requestAdminReview(collab *models.Collaboration, actorUserID uint, role string, input RequestCancellationInput) (*models.Cancellation, error) {
	pending, err := s.cancelRepo.GetPendingByCollab(collab.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrCancellationNotAllowed
	}

	requestedStatus := constants.CollabStatusCancelRequestedBrand
	if role == constants.UserTypeInfluencer {
		requestedStatus = constants.CollabStatusCancelRequestedInfluencer
	}

	cancellation := &models.Cancellation{
		CancellationID:    models.NewPublicID(constants.IDPrefixCancellation),
		CollabID:          collab.ID,
		RequestedByUserID: actorUserID,
		RequestedByRole:   role,
		Reason:            strings.TrimSpace(input.Reason),
		Details:           strings.TrimSpace(input.Details),
		Status:            constants.CancellationStatusPendingAdminReview,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		// 锁合作行串行化发起，进行中状态与唯一待审请求在事务内复核
		current, err := s.collabRepo.WithTx(tx).GetByIDForUpdate(collab.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Status != constants.CollabStatusInProgress {
			return ErrCancellationNotAllowed
		}
		existing, err := s.cancelRepo.WithTx(tx).GetPendingByCollab(collab.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrCancellationNotAllowed
		}
		if err := s.cancelRepo.WithTx(tx).Create(cancellation); err != nil {
			return err
		}
		return s.collabRepo.WithTx(tx).UpdateStatus(collab.ID, map[string]interface{}{
			"status": requestedStatus,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("cancellation_pending_admin_review",
		"cancellation_id", cancellation.CancellationID,
		"collab_id", collab.CollabID,
		"requested_by", role,
	)
	return cancellation, nil
}

// Resolve 管理员裁决取消请求
func (s *CancellationService) Resolve(ctx context.Context, cancellationID string, input ResolveCancellationInput) (*models.Cancellation, error) {
	cancellation, err := s.cancelRepo.GetByPublicID(cancellationID)
	if err != nil {
		return nil, err
	}
	if cancellation == nil {
		return nil, ErrCancellationNotFound
	}
	if cancellation.Status != constants.CancellationStatusPendingAdminReview {
		return nil, ErrCancellationNotPending
	}

	collab, err := s.collabRepo.GetByID(cancellation.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}

	resolution := strings.ToLower(strings.TrimSpace(input.Resolution))
	switch resolution {
	case constants.CancellationResolutionFullRefund:
		if err := s.resolveRefund(ctx, collab, nil, cancellation.Reason); err != nil {
			return nil, err
		}
	case constants.CancellationResolutionPartialRefund:
		if input.PartialAmount == nil {
			return nil, ErrPartialAmountInvalid
		}
		if err := s.resolveRefund(ctx, collab, input.PartialAmount, cancellation.Reason); err != nil {
			return nil, err
		}
		cancellation.PartialAmount = input.PartialAmount
	case constants.CancellationResolutionContinue:
		err := models.DB.Transaction(func(tx *gorm.DB) error {
			// 锁合作行复核仍处于取消申请中，避免覆盖并发裁决结果
			current, err := s.collabRepo.WithTx(tx).GetByIDForUpdate(collab.ID)
			if err != nil {
				return err
			}
			if current == nil ||
				(current.Status != constants.CollabStatusCancelRequestedBrand &&
					current.Status != constants.CollabStatusCancelRequestedInfluencer) {
				return ErrCancellationNotPending
			}
			return s.collabRepo.WithTx(tx).UpdateStatus(collab.ID, map[string]interface{}{
				"status": constants.CollabStatusInProgress,
			})
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidResolution
	}

	now := time.Now()
	cancellation.Status = constants.CancellationStatusResolved
	cancellation.Resolution = resolution
	cancellation.AdminNotes = strings.TrimSpace(input.AdminNotes)
	cancellation.ResolvedAt = &now
	if err := s.cancelRepo.Update(cancellation); err != nil {
		return nil, err
	}

	logger.Infow("cancellation_resolved",
		"cancellation_id", cancellation.CancellationID,
		"resolution", resolution,
	)
	return cancellation, nil
}

// resolveRefund 裁决退款：有托管走退款通道，无托管直接取消
func (s *CancellationService) resolveRefund(ctx context.Context, collab *models.Collaboration, amount *models.Money, reason string) error {
	escrow, err := s.escrowRepo.GetActiveByCollab(collab.ID)
	if err != nil {
		return err
	}
	if escrow != nil && escrow.Status != constants.EscrowStatusPending {
		return s.escrowService.refund(ctx, escrow, collab, amount, reason)
	}

	now := time.Now()
	return s.collabRepo.UpdateStatus(collab.ID, map[string]interface{}{
		"status":       constants.CollabStatusCancelled,
		"cancelled_at": now,
	})
}

// Get 按公开 ID 获取取消请求
func (s *CancellationService) Get(cancellationID string) (*models.Cancellation, error) {
	cancellation, err := s.cancelRepo.GetByPublicID(cancellationID)
	if err != nil {
		return nil, err
	}
	if cancellation == nil {
		return nil, ErrCancellationNotFound
	}
	return cancellation, nil
}

// ListByCollab 获取合作下的取消请求
func (s *CancellationService) ListByCollab(collabID string, actorUserID uint) ([]models.Cancellation, error) {
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
	return s.cancelRepo.ListByCollab(collab.ID)
}

// List 管理员查询取消请求列表
func (s *CancellationService) List(filter repository.CancellationListFilter) ([]models.Cancellation, int64, error) {
	return s.cancelRepo.List(filter)
}
