package service

import (
	"context"
	"errors"
	"testing"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"

	"github.com/shopspring/decimal"
)

func confirmationWindowCollab(t *testing.T, env *testEnv) (*models.User, *models.User, *models.Collaboration, *models.Escrow) {
	t.Helper()
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 600)
	proposed := models.NewMoneyFromFloat(600)
	acceptTestApplication(t, env, collab, brand, influencer, &proposed)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	return brand, influencer, collab, escrow
}

func TestDisputeOpenFreezesEverything(t *testing.T) {
	env := setupServiceTest(t)
	brand, influencer, collab, escrow := confirmationWindowCollab(t, env)

	if _, err := env.messages.Send(collab.CollabID, influencer.ID, "livrarea e gata"); err != nil {
		t.Fatalf("send message failed: %v", err)
	}

	dispute, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{
		Reason: "continut nelivrat",
	})
	if err != nil {
		t.Fatalf("open dispute failed: %v", err)
	}
	if dispute.Status != constants.DisputeStatusOpen {
		t.Fatalf("expected open, got %s", dispute.Status)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusDisputed || reloaded.PaymentStatus != constants.PaymentStatusDisputed {
		t.Fatalf("expected disputed/disputed, got %s/%s", reloaded.Status, reloaded.PaymentStatus)
	}
	if reloaded.DisputedAt == nil {
		t.Fatalf("expected disputed_at set")
	}
	reloadedEscrow := reloadEscrow(t, env.db, escrow.ID)
	if reloadedEscrow.Status != constants.EscrowStatusDisputed {
		t.Fatalf("expected escrow disputed, got %s", reloadedEscrow.Status)
	}

	var message models.Message
	if err := env.db.Where("collab_id = ?", collab.ID).First(&message).Error; err != nil {
		t.Fatalf("load message failed: %v", err)
	}
	if !message.ThreadLocked {
		t.Fatalf("expected thread locked")
	}

	if _, err := env.messages.Send(collab.CollabID, influencer.ID, "inca un mesaj"); !errors.Is(err, ErrThreadLocked) {
		t.Fatalf("expected ErrThreadLocked, got %v", err)
	}
}

func TestDisputeOpenOutsideWindow(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)
	securedTestEscrow(t, env, collab, brand)

	if _, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{}); !errors.Is(err, ErrDisputeWindowClosed) {
		t.Fatalf("expected ErrDisputeWindowClosed, got %v", err)
	}
}

func TestDisputeOpenConflict(t *testing.T) {
	env := setupServiceTest(t)
	brand, influencer, collab, _ := confirmationWindowCollab(t, env)

	if _, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{}); err != nil {
		t.Fatalf("first open failed: %v", err)
	}
	if _, err := env.disputes.Open(collab.CollabID, influencer.ID, OpenDisputeInput{}); !errors.Is(err, ErrDisputeExists) {
		t.Fatalf("expected ErrDisputeExists, got %v", err)
	}
}

func TestDisputeResolveReleaseToInfluencer(t *testing.T) {
	env := setupServiceTest(t)
	brand, _, collab, escrow := confirmationWindowCollab(t, env)
	dispute, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	resolved, err := env.disputes.Resolve(context.Background(), dispute.DisputeID, ResolveDisputeInput{
		Resolution: constants.DisputeResolutionReleaseToInfluencer,
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != constants.DisputeStatusResolved {
		t.Fatalf("expected resolved, got %s", resolved.Status)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusCompleted || reloaded.PaymentStatus != constants.PaymentStatusReleased {
		t.Fatalf("expected completed/released, got %s/%s", reloaded.Status, reloaded.PaymentStatus)
	}
	reloadedEscrow := reloadEscrow(t, env.db, escrow.ID)
	if reloadedEscrow.Status != constants.EscrowStatusReleased {
		t.Fatalf("expected escrow released, got %s", reloadedEscrow.Status)
	}

	var commissions []models.Commission
	if err := env.db.Where("collab_id = ?", collab.ID).Find(&commissions).Error; err != nil {
		t.Fatalf("load commissions failed: %v", err)
	}
	if len(commissions) != 1 {
		t.Fatalf("expected 1 commission row, got %d", len(commissions))
	}
	if commissions[0].Source != constants.CommissionSourceDisputeRelease {
		t.Fatalf("expected source dispute_release, got %s", commissions[0].Source)
	}
}

func TestDisputeResolveRefundToBrand(t *testing.T) {
	env := setupServiceTest(t)
	brand, _, collab, escrow := confirmationWindowCollab(t, env)
	dispute, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if _, err := env.disputes.Resolve(context.Background(), dispute.DisputeID, ResolveDisputeInput{
		Resolution: constants.DisputeResolutionRefundToBrand,
	}); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusCancelled || reloaded.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected cancelled/refunded, got %s/%s", reloaded.Status, reloaded.PaymentStatus)
	}
	reloadedEscrow := reloadEscrow(t, env.db, escrow.ID)
	if reloadedEscrow.Status != constants.EscrowStatusRefunded {
		t.Fatalf("expected escrow refunded, got %s", reloadedEscrow.Status)
	}

	var count int64
	if err := env.db.Model(&models.Commission{}).Where("collab_id = ?", collab.ID).Count(&count).Error; err != nil {
		t.Fatalf("count commissions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no commission rows on refund, got %d", count)
	}
}

func TestDisputeResolveSplit(t *testing.T) {
	env := setupServiceTest(t)
	brand, _, collab, escrow := confirmationWindowCollab(t, env)
	dispute, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	influencerAmount := models.NewMoneyFromFloat(400)
	brandAmount := models.NewMoneyFromFloat(200)
	resolved, err := env.disputes.Resolve(context.Background(), dispute.DisputeID, ResolveDisputeInput{
		Resolution:            constants.DisputeResolutionSplit,
		SplitInfluencerAmount: &influencerAmount,
		SplitBrandAmount:      &brandAmount,
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.SplitInfluencerAmount == nil || !resolved.SplitInfluencerAmount.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected split influencer amount 400")
	}

	reloadedEscrow := reloadEscrow(t, env.db, escrow.ID)
	if reloadedEscrow.Status != constants.EscrowStatusSplitResolved {
		t.Fatalf("expected split_resolved, got %s", reloadedEscrow.Status)
	}
	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.PaymentStatus != constants.PaymentStatusSplitResolved {
		t.Fatalf("expected payment split_resolved, got %s", reloaded.PaymentStatus)
	}

	var count int64
	if err := env.db.Model(&models.Commission{}).Where("collab_id = ?", collab.ID).Count(&count).Error; err != nil {
		t.Fatalf("count commissions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no commission rows on split, got %d", count)
	}
}

func TestDisputeResolveSplitAmountsMustCoverTotal(t *testing.T) {
	env := setupServiceTest(t)
	brand, _, collab, _ := confirmationWindowCollab(t, env)
	dispute, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	influencerAmount := models.NewMoneyFromFloat(100)
	brandAmount := models.NewMoneyFromFloat(100)
	if _, err := env.disputes.Resolve(context.Background(), dispute.DisputeID, ResolveDisputeInput{
		Resolution:            constants.DisputeResolutionSplit,
		SplitInfluencerAmount: &influencerAmount,
		SplitBrandAmount:      &brandAmount,
	}); !errors.Is(err, ErrSplitAmountInvalid) {
		t.Fatalf("expected ErrSplitAmountInvalid, got %v", err)
	}
}

func TestDisputeResolveTwiceRejected(t *testing.T) {
	env := setupServiceTest(t)
	brand, _, collab, _ := confirmationWindowCollab(t, env)
	dispute, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if _, err := env.disputes.Resolve(context.Background(), dispute.DisputeID, ResolveDisputeInput{
		Resolution: constants.DisputeResolutionReleaseToInfluencer,
	}); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if _, err := env.disputes.Resolve(context.Background(), dispute.DisputeID, ResolveDisputeInput{
		Resolution: constants.DisputeResolutionRefundToBrand,
	}); !errors.Is(err, ErrDisputeNotOpen) {
		t.Fatalf("expected ErrDisputeNotOpen, got %v", err)
	}
}

func TestDisputeMarkUnderReview(t *testing.T) {
	env := setupServiceTest(t)
	brand, _, collab, _ := confirmationWindowCollab(t, env)
	dispute, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	updated, err := env.disputes.MarkUnderReview(dispute.DisputeID)
	if err != nil {
		t.Fatalf("mark under review failed: %v", err)
	}
	if updated.Status != constants.DisputeStatusUnderReview {
		t.Fatalf("expected under_review, got %s", updated.Status)
	}
}
