package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"

	"github.com/shopspring/decimal"
)

func TestEscrowCreateCommissionSplit(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 1000)

	escrow, err := env.escrows.Create(collab.CollabID, brand.ID)
	if err != nil {
		t.Fatalf("create escrow failed: %v", err)
	}
	if escrow.Status != constants.EscrowStatusPending {
		t.Fatalf("expected pending escrow, got %s", escrow.Status)
	}
	if escrow.CommissionRate != 10 {
		t.Fatalf("expected rate snapshot 10, got %v", escrow.CommissionRate)
	}
	if !escrow.TotalAmount.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected total 1000, got %s", escrow.TotalAmount.String())
	}
	if !escrow.PlatformCommission.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected commission 100, got %s", escrow.PlatformCommission.String())
	}
	if !escrow.InfluencerPayout.Equal(decimal.NewFromInt(900)) {
		t.Fatalf("expected payout 900, got %s", escrow.InfluencerPayout.String())
	}
}

func TestEscrowCreateRoundingIdentity(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 333.33)

	escrow, err := env.escrows.Create(collab.CollabID, brand.ID)
	if err != nil {
		t.Fatalf("create escrow failed: %v", err)
	}
	sum := escrow.PlatformCommission.Decimal.Add(escrow.InfluencerPayout.Decimal)
	if !sum.Equal(escrow.TotalAmount.Decimal) {
		t.Fatalf("commission %s + payout %s != total %s",
			escrow.PlatformCommission.String(), escrow.InfluencerPayout.String(), escrow.TotalAmount.String())
	}
	if !escrow.PlatformCommission.Equal(decimal.RequireFromString("33.33")) {
		t.Fatalf("expected commission 33.33, got %s", escrow.PlatformCommission.String())
	}
}

func TestEscrowCreateConflict(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	if _, err := env.escrows.Create(collab.CollabID, brand.ID); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := env.escrows.Create(collab.CollabID, brand.ID); !errors.Is(err, ErrEscrowExists) {
		t.Fatalf("expected ErrEscrowExists, got %v", err)
	}
}

func TestEscrowCreateBarterRejected(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createBarterCollab(t, env, brand)

	if _, err := env.escrows.Create(collab.CollabID, brand.ID); !errors.Is(err, ErrEscrowNotRequired) {
		t.Fatalf("expected ErrEscrowNotRequired, got %v", err)
	}
}

func TestEscrowCreateNotOwner(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	other := createTestBrand(t, env.db, "other@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	if _, err := env.escrows.Create(collab.CollabID, other.ID); !errors.Is(err, ErrNotCollabOwner) {
		t.Fatalf("expected ErrNotCollabOwner, got %v", err)
	}
}

func TestEscrowSecure(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	escrow := securedTestEscrow(t, env, collab, brand)
	if escrow.Status != constants.EscrowStatusSecured {
		t.Fatalf("expected secured, got %s", escrow.Status)
	}
	if escrow.PaymentReference == "" {
		t.Fatalf("expected payment reference")
	}
	if escrow.SecuredAt == nil {
		t.Fatalf("expected secured_at set")
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.PaymentStatus != constants.PaymentStatusSecured {
		t.Fatalf("expected collab payment secured, got %s", reloaded.PaymentStatus)
	}
}

func TestEscrowSecureProviderFailureLeavesPending(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	escrow, err := env.escrows.Create(collab.CollabID, brand.ID)
	if err != nil {
		t.Fatalf("create escrow failed: %v", err)
	}

	env.provider.FailCharge = true
	if _, err := env.escrows.Secure(context.Background(), escrow.EscrowID, brand.ID, ""); !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}

	reloaded := reloadEscrow(t, env.db, escrow.ID)
	if reloaded.Status != constants.EscrowStatusPending {
		t.Fatalf("expected escrow to stay pending, got %s", reloaded.Status)
	}
	reloadedCollab := reloadCollab(t, env.db, collab.ID)
	if reloadedCollab.PaymentStatus != constants.PaymentStatusAwaitingEscrow {
		t.Fatalf("expected payment awaiting_escrow, got %s", reloadedCollab.PaymentStatus)
	}
}

func TestEscrowSecureTwiceRejected(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.escrows.Secure(context.Background(), escrow.EscrowID, brand.ID, ""); !errors.Is(err, ErrEscrowNotPending) {
		t.Fatalf("expected ErrEscrowNotPending, got %v", err)
	}
}

func TestEscrowReleaseFlow(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 1000)
	proposed := models.NewMoneyFromFloat(400)
	application := acceptTestApplication(t, env, collab, brand, influencer, &proposed)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start collab failed: %v", err)
	}
	updated, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted)
	if err != nil {
		t.Fatalf("complete collab failed: %v", err)
	}
	if updated.Status != constants.CollabStatusCompletedPendingRelease {
		t.Fatalf("expected completed_pending_release, got %s", updated.Status)
	}
	if updated.ReleaseScheduledAt == nil {
		t.Fatalf("expected release_scheduled_at set")
	}
	window := time.Until(*updated.ReleaseScheduledAt)
	if window < 47*time.Hour || window > 49*time.Hour {
		t.Fatalf("expected ~48h confirmation window, got %s", window)
	}

	released, err := env.escrows.Release(escrow.EscrowID)
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if released.Status != constants.EscrowStatusReleased {
		t.Fatalf("expected released, got %s", released.Status)
	}

	finalCollab := reloadCollab(t, env.db, collab.ID)
	if finalCollab.Status != constants.CollabStatusCompleted {
		t.Fatalf("expected collab completed, got %s", finalCollab.Status)
	}
	if finalCollab.PaymentStatus != constants.PaymentStatusReleased {
		t.Fatalf("expected payment released, got %s", finalCollab.PaymentStatus)
	}

	var commissions []models.Commission
	if err := env.db.Where("collab_id = ?", collab.ID).Find(&commissions).Error; err != nil {
		t.Fatalf("load commissions failed: %v", err)
	}
	if len(commissions) != 1 {
		t.Fatalf("expected 1 commission row, got %d", len(commissions))
	}
	row := commissions[0]
	if row.ApplicationID != application.ID {
		t.Fatalf("commission bound to wrong application")
	}
	if !row.GrossAmount.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected gross 400 from proposed price, got %s", row.GrossAmount.String())
	}
	if !row.CommissionAmount.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected commission 40, got %s", row.CommissionAmount.String())
	}
	if !row.NetAmount.Equal(decimal.NewFromInt(360)) {
		t.Fatalf("expected net 360, got %s", row.NetAmount.String())
	}
	if row.Source != constants.CommissionSourceRelease {
		t.Fatalf("expected source release, got %s", row.Source)
	}
}

func TestEscrowReleaseGrossFallsBackToTotal(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 800)
	acceptTestApplication(t, env, collab, brand, influencer, nil)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start collab failed: %v", err)
	}
	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted); err != nil {
		t.Fatalf("complete collab failed: %v", err)
	}
	if _, err := env.escrows.Release(escrow.EscrowID); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	var row models.Commission
	if err := env.db.Where("collab_id = ?", collab.ID).First(&row).Error; err != nil {
		t.Fatalf("load commission failed: %v", err)
	}
	if !row.GrossAmount.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected gross to fall back to escrow total 800, got %s", row.GrossAmount.String())
	}
}

func TestEscrowReleaseRequiresConfirmationWindow(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.escrows.Release(escrow.EscrowID); !errors.Is(err, ErrEscrowNotReleasable) {
		t.Fatalf("expected ErrEscrowNotReleasable, got %v", err)
	}
}

func TestEscrowReleaseTwiceSingleCommission(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)
	acceptTestApplication(t, env, collab, brand, influencer, nil)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start collab failed: %v", err)
	}
	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted); err != nil {
		t.Fatalf("complete collab failed: %v", err)
	}

	if _, err := env.escrows.ReleaseByBrand(escrow.EscrowID, brand.ID); err != nil {
		t.Fatalf("release by brand failed: %v", err)
	}
	if _, err := env.escrows.ReleaseByBrand(escrow.EscrowID, brand.ID); !errors.Is(err, ErrEscrowNotReleasable) {
		t.Fatalf("expected ErrEscrowNotReleasable on second release, got %v", err)
	}

	var count int64
	if err := env.db.Model(&models.Commission{}).Where("collab_id = ?", collab.ID).Count(&count).Error; err != nil {
		t.Fatalf("count commissions failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 commission row, got %d", count)
	}
}

func TestEscrowRefundTwiceRejected(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.escrows.Refund(context.Background(), escrow.EscrowID, "client request"); err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if _, err := env.escrows.Refund(context.Background(), escrow.EscrowID, "client request"); !errors.Is(err, ErrEscrowNotRefundable) {
		t.Fatalf("expected ErrEscrowNotRefundable on second refund, got %v", err)
	}
}

func TestEscrowRefundFromSecured(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)
	escrow := securedTestEscrow(t, env, collab, brand)

	refunded, err := env.escrows.Refund(context.Background(), escrow.EscrowID, "client request")
	if err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if refunded.Status != constants.EscrowStatusRefunded {
		t.Fatalf("expected refunded, got %s", refunded.Status)
	}
	if refunded.RefundAmount == nil || !refunded.RefundAmount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected full refund amount 500")
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusCancelled {
		t.Fatalf("expected collab cancelled, got %s", reloaded.Status)
	}
	if reloaded.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected payment refunded, got %s", reloaded.PaymentStatus)
	}
}

func TestCalculateCommissionQuote(t *testing.T) {
	env := setupServiceTest(t)

	quote, err := env.escrows.CalculateCommission(models.NewMoneyFromFloat(250))
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	if quote.CommissionRate != 10 {
		t.Fatalf("expected rate 10, got %v", quote.CommissionRate)
	}
	if !quote.CommissionAmount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected commission 25, got %s", quote.CommissionAmount.String())
	}
	if !quote.NetAmount.Equal(decimal.NewFromInt(225)) {
		t.Fatalf("expected net 225, got %s", quote.NetAmount.String())
	}
}

func TestEscrowReleaseByBrand(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 600)
	acceptTestApplication(t, env, collab, brand, influencer, nil)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start collab failed: %v", err)
	}
	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted); err != nil {
		t.Fatalf("complete collab failed: %v", err)
	}

	if _, err := env.escrows.ReleaseByBrand(escrow.EscrowID, influencer.ID); !errors.Is(err, ErrNotCollabOwner) {
		t.Fatalf("expected ErrNotCollabOwner for non-owner, got %v", err)
	}

	released, err := env.escrows.ReleaseByBrand(escrow.EscrowID, brand.ID)
	if err != nil {
		t.Fatalf("release by brand failed: %v", err)
	}
	if released.Status != constants.EscrowStatusReleased {
		t.Fatalf("expected released, got %s", released.Status)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.PaymentStatus != constants.PaymentStatusReleased {
		t.Fatalf("expected payment released, got %s", reloaded.PaymentStatus)
	}
}

func TestEscrowRefundByBrand(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.escrows.RefundByBrand(context.Background(), escrow.EscrowID, influencer.ID, "nu mai continuam"); !errors.Is(err, ErrNotCollabOwner) {
		t.Fatalf("expected ErrNotCollabOwner for non-owner, got %v", err)
	}

	refunded, err := env.escrows.RefundByBrand(context.Background(), escrow.EscrowID, brand.ID, "nu mai continuam")
	if err != nil {
		t.Fatalf("refund by brand failed: %v", err)
	}
	if refunded.Status != constants.EscrowStatusRefunded {
		t.Fatalf("expected refunded, got %s", refunded.Status)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusCancelled {
		t.Fatalf("expected collab cancelled, got %s", reloaded.Status)
	}
	if reloaded.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected payment refunded, got %s", reloaded.PaymentStatus)
	}
}
