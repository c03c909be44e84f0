package service

import (
	"context"
	"fmt"
	"time"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/models"
	"github.com/colaboreaza/backend/internal/payment"
	"github.com/colaboreaza/backend/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EscrowService 资金托管服务
type EscrowService struct {
	escrowRepo     repository.EscrowRepository
	collabRepo     repository.CollaborationRepository
	appRepo        repository.ApplicationRepository
	commissionRepo repository.CommissionRepository
	settingService *SettingService
	provider       payment.Provider
}

// NewEscrowService 创建托管服务
func NewEscrowService(escrowRepo repository.EscrowRepository, collabRepo repository.CollaborationRepository, appRepo repository.ApplicationRepository, commissionRepo repository.CommissionRepository, settingService *SettingService, provider payment.Provider) *EscrowService {
	return &EscrowService{
		escrowRepo:     escrowRepo,
		collabRepo:     collabRepo,
		appRepo:        appRepo,
		commissionRepo: commissionRepo,
		settingService: settingService,
		provider:       provider,
	}
}

// CommissionQuote 佣金试算结果
type CommissionQuote struct {
	GrossAmount      models.Money `json:"gross_amount"`
	CommissionRate   float64      `json:"commission_rate"`
	CommissionAmount models.Money `json:"commission_amount"`
	NetAmount        models.Money `json:"net_amount"`
}

// CalculateCommission 按当前费率试算佣金
func (s *EscrowService) CalculateCommission(gross models.Money) (*CommissionQuote, error) {
	rate, err := s.settingService.CommissionRate()
	if err != nil {
		return nil, err
	}
	commission, net := splitCommission(gross, rate)
	return &CommissionQuote{
		GrossAmount:      models.NewMoneyFromDecimal(gross.Decimal),
		CommissionRate:   rate,
		CommissionAmount: commission,
		NetAmount:        net,
	}, nil
}

// Create 创建托管（仅 paid 合作的品牌方）
// 费率在创建时刻快照，之后设置变更不影响已有托管
func (s *EscrowService) Create(collabID string, actorUserID uint) (*models.Escrow, error) {
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
	if collab.CollaborationType != constants.CollabTypePaid {
		return nil, ErrEscrowNotRequired
	}

	active, err := s.escrowRepo.GetActiveByCollab(collab.ID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrEscrowExists
	}

	total, ok := escrowTotal(collab)
	if !ok {
		return nil, ErrInvalidBudget
	}

	rate, err := s.settingService.CommissionRate()
	if err != nil {
		return nil, err
	}
	commission, payout := splitCommission(total, rate)

	escrow := &models.Escrow{
		EscrowID:           models.NewPublicID(constants.IDPrefixEscrow),
		CollabID:           collab.ID,
		BrandUserID:        collab.BrandUserID,
		TotalAmount:        total,
		CommissionRate:     rate,
		PlatformCommission: commission,
		InfluencerPayout:   payout,
		Status:             constants.EscrowStatusPending,
	}
	// 锁合作行串行化创建，保证同一合作同时只有一条活跃托管
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.collabRepo.WithTx(tx).GetByIDForUpdate(collab.ID); err != nil {
			return err
		}
		active, err := s.escrowRepo.WithTx(tx).GetActiveByCollab(collab.ID)
		if err != nil {
			return err
		}
		if active != nil {
			return ErrEscrowExists
		}
		return s.escrowRepo.WithTx(tx).Create(escrow)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("escrow_created",
		"escrow_id", escrow.EscrowID,
		"collab_id", collab.CollabID,
		"total", escrow.TotalAmount.String(),
		"rate", rate,
	)
	return escrow, nil
}

// Secure 托管资金（调用支付提供方扣款）
func (s *EscrowService) Secure(ctx context.Context, escrowID string, actorUserID uint, clientIP string) (*models.Escrow, error) {
	escrow, err := s.escrowRepo.GetByPublicID(escrowID)
	if err != nil {
		return nil, err
	}
	if escrow == nil {
		return nil, ErrEscrowNotFound
	}
	if escrow.BrandUserID != actorUserID {
		return nil, ErrNotCollabOwner
	}
	if escrow.Status != constants.EscrowStatusPending {
		return nil, ErrEscrowNotPending
	}

	collab, err := s.collabRepo.GetByID(escrow.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}

	result, err := s.provider.Charge(ctx, payment.ChargeInput{
		EscrowID:    escrow.EscrowID,
		CollabID:    collab.CollabID,
		Amount:      escrow.TotalAmount,
		Currency:    "RON",
		Description: collab.Title,
		ClientIP:    clientIP,
	})
	if err != nil {
		logger.Warnw("escrow_charge_failed",
			"escrow_id", escrow.EscrowID,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.escrowRepo.WithTx(tx).UpdateStatus(escrow.ID, map[string]interface{}{
			"status":            constants.EscrowStatusSecured,
			"payment_reference": result.Reference,
			"secured_at":        now,
		}); err != nil {
			return err
		}
		return s.collabRepo.WithTx(tx).UpdateStatus(collab.ID, map[string]interface{}{
			"payment_status": constants.PaymentStatusSecured,
		})
	})
	if err != nil {
		return nil, err
	}

	escrow.Status = constants.EscrowStatusSecured
	escrow.PaymentReference = result.Reference
	escrow.SecuredAt = &now

	logger.Infow("escrow_secured",
		"escrow_id", escrow.EscrowID,
		"reference", result.Reference,
	)
	return escrow, nil
}

// GetForCollab 获取合作的最近一条托管
func (s *EscrowService) GetForCollab(collabID string, actorUserID uint) (*models.Escrow, error) {
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
	escrow, err := s.escrowRepo.GetLatestByCollab(collab.ID)
	if err != nil {
		return nil, err
	}
	if escrow == nil {
		return nil, ErrEscrowNotFound
	}
	return escrow, nil
}

// Release 放款给达人（管理员显式触发）
func (s *EscrowService) Release(escrowID string) (*models.Escrow, error) {
	escrow, err := s.escrowRepo.GetByPublicID(escrowID)
	if err != nil {
		return nil, err
	}
	if escrow == nil {
		return nil, ErrEscrowNotFound
	}
	return s.release(escrow, constants.CommissionSourceRelease)
}

// ReleaseByBrand 品牌方在确认窗口内主动放款
func (s *EscrowService) ReleaseByBrand(escrowID string, actorUserID uint) (*models.Escrow, error) {
	escrow, err := s.escrowRepo.GetByPublicID(escrowID)
	if err != nil {
		return nil, err
	}
	if escrow == nil {
		return nil, ErrEscrowNotFound
	}
	collab, err := s.collabRepo.GetByID(escrow.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	if collab.BrandUserID != actorUserID {
		return nil, ErrNotCollabOwner
	}
	return s.release(escrow, constants.CommissionSourceRelease)
}

// RefundByBrand 品牌方全额退款（secured 或确认窗口内）
func (s *EscrowService) RefundByBrand(ctx context.Context, escrowID string, actorUserID uint, reason string) (*models.Escrow, error) {
	escrow, err := s.escrowRepo.GetByPublicID(escrowID)
	if err != nil {
		return nil, err
	}
	if escrow == nil {
		return nil, ErrEscrowNotFound
	}
	collab, err := s.collabRepo.GetByID(escrow.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	if collab.BrandUserID != actorUserID {
		return nil, ErrNotCollabOwner
	}
	if err := s.refund(ctx, escrow, collab, nil, reason); err != nil {
		return nil, err
	}
	return escrow, nil
}

// Refund 全额退款给品牌方（管理员操作）
func (s *EscrowService) Refund(ctx context.Context, escrowID string, reason string) (*models.Escrow, error) {
	escrow, err := s.escrowRepo.GetByPublicID(escrowID)
	if err != nil {
		return nil, err
	}
	if escrow == nil {
		return nil, ErrEscrowNotFound
	}
	collab, err := s.collabRepo.GetByID(escrow.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}
	if err := s.refund(ctx, escrow, collab, nil, reason); err != nil {
		return nil, err
	}
	return escrow, nil
}

// release 执行放款：托管与合作进入终态，按已接受申请落佣金流水
func (s *EscrowService) release(escrow *models.Escrow, source string) (*models.Escrow, error) {
	if escrow.Status != constants.EscrowStatusCompletedPendingRelease {
		return nil, ErrEscrowNotReleasable
	}

	collab, err := s.collabRepo.GetByID(escrow.CollabID)
	if err != nil {
		return nil, err
	}
	if collab == nil {
		return nil, ErrCollabNotFound
	}

	accepted, err := s.appRepo.ListAcceptedByCollab(collab.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		// 事务内加锁复读，并发放款只允许一次落佣金
		current, err := s.escrowRepo.WithTx(tx).GetByIDForUpdate(escrow.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Status != constants.EscrowStatusCompletedPendingRelease {
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
		return s.writeCommissionRows(tx, collab, escrow, accepted, source)
	})
	if err != nil {
		return nil, err
	}

	escrow.Status = constants.EscrowStatusReleased
	escrow.ReleasedAt = &now

	logger.Infow("escrow_released",
		"escrow_id", escrow.EscrowID,
		"source", source,
		"commissions", len(accepted),
	)
	return escrow, nil
}

// refund 执行退款：amount 为空时全额退款
func (s *EscrowService) refund(ctx context.Context, escrow *models.Escrow, collab *models.Collaboration, amount *models.Money, reason string) error {
	if escrow.Status != constants.EscrowStatusSecured &&
		escrow.Status != constants.EscrowStatusCompletedPendingRelease &&
		escrow.Status != constants.EscrowStatusDisputed {
		return ErrEscrowNotRefundable
	}

	refundAmount := escrow.TotalAmount
	escrowStatus := constants.EscrowStatusRefunded
	paymentStatus := constants.PaymentStatusRefunded
	if amount != nil {
		if !amount.IsPositive() || amount.GreaterThan(escrow.TotalAmount.Decimal) {
			return ErrPartialAmountInvalid
		}
		refundAmount = *amount
		if !amount.Equal(escrow.TotalAmount.Decimal) {
			escrowStatus = constants.EscrowStatusPartialRefund
			paymentStatus = constants.PaymentStatusPartialRefund
		}
	}

	if _, err := s.provider.Refund(ctx, payment.RefundInput{
		EscrowID:  escrow.EscrowID,
		Reference: escrow.PaymentReference,
		Amount:    refundAmount,
		Currency:  "RON",
		Reason:    reason,
	}); err != nil {
		logger.Warnw("escrow_refund_failed",
			"escrow_id", escrow.EscrowID,
			"error", err,
		)
		return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	now := time.Now()
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		// 事务内加锁复读，拒绝并发下的二次退款
		current, err := s.escrowRepo.WithTx(tx).GetByIDForUpdate(escrow.ID)
		if err != nil {
			return err
		}
		if current == nil || current.Status != escrow.Status {
			return ErrEscrowNotRefundable
		}
		if err := s.escrowRepo.WithTx(tx).UpdateStatus(escrow.ID, map[string]interface{}{
			"status":        escrowStatus,
			"refund_amount": refundAmount,
			"refunded_at":   now,
		}); err != nil {
			return err
		}
		return s.collabRepo.WithTx(tx).UpdateStatus(collab.ID, map[string]interface{}{
			"status":         constants.CollabStatusCancelled,
			"payment_status": paymentStatus,
			"cancelled_at":   now,
		})
	})
	if err != nil {
		return err
	}

	escrow.Status = escrowStatus
	escrow.RefundAmount = &refundAmount
	escrow.RefundedAt = &now

	logger.Infow("escrow_refunded",
		"escrow_id", escrow.EscrowID,
		"amount", refundAmount.String(),
		"status", escrowStatus,
	)
	return nil
}

// writeCommissionRows 按已接受申请落佣金流水
// 流水金额优先取申请报价，缺省回退托管总额
func (s *EscrowService) writeCommissionRows(tx *gorm.DB, collab *models.Collaboration, escrow *models.Escrow, accepted []models.Application, source string) error {
	for i := range accepted {
		app := &accepted[i]
		gross := escrow.TotalAmount
		if app.ProposedPrice != nil && app.ProposedPrice.IsPositive() {
			gross = *app.ProposedPrice
		}
		commission, net := splitCommission(gross, escrow.CommissionRate)
		row := &models.Commission{
			CommissionID:     models.NewPublicID(constants.IDPrefixCommission),
			CollabID:         collab.ID,
			ApplicationID:    app.ID,
			InfluencerUserID: app.InfluencerUserID,
			BrandUserID:      collab.BrandUserID,
			GrossAmount:      gross,
			CommissionRate:   escrow.CommissionRate,
			CommissionAmount: commission,
			NetAmount:        net,
			Source:           source,
		}
		if err := s.commissionRepo.WithTx(tx).Create(row); err != nil {
			return err
		}
	}
	return nil
}

// splitCommission 按费率拆分金额，佣金四舍五入到分，尾差计入净额
func splitCommission(gross models.Money, rate float64) (commission, net models.Money) {
	c := gross.Decimal.Mul(decimal.NewFromFloat(rate)).Div(decimal.NewFromInt(100)).Round(2)
	commission = models.NewMoneyFromDecimal(c)
	net = models.NewMoneyFromDecimal(gross.Decimal.Sub(c))
	return commission, net
}

// escrowTotal 计算托管总额：优先 budget_max，回退 budget_min
func escrowTotal(collab *models.Collaboration) (models.Money, bool) {
	if collab.BudgetMax != nil && collab.BudgetMax.IsPositive() {
		return models.NewMoneyFromDecimal(collab.BudgetMax.Decimal), true
	}
	if collab.BudgetMin != nil && collab.BudgetMin.IsPositive() {
		return models.NewMoneyFromDecimal(collab.BudgetMin.Decimal), true
	}
	return models.Money{}, false
}
