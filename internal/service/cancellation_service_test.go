package service

import (
	"context"
	"errors"
	"testing"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"

	"github.com/shopspring/decimal"
)

func TestCancellationActiveSecuredFullRefund(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)
	escrow := securedTestEscrow(t, env, collab, brand)

	cancellation, err := env.cancellations.Request(context.Background(), collab.CollabID, brand.ID, RequestCancellationInput{
		Reason: "schimbare de plan",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if cancellation.Status != constants.CancellationStatusCompleted {
		t.Fatalf("expected completed, got %s", cancellation.Status)
	}
	if cancellation.Resolution != constants.CancellationResolutionFullRefund {
		t.Fatalf("expected full_refund, got %s", cancellation.Resolution)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusCancelled {
		t.Fatalf("expected cancelled, got %s", reloaded.Status)
	}
	if reloaded.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected refunded, got %s", reloaded.PaymentStatus)
	}
	reloadedEscrow := reloadEscrow(t, env.db, escrow.ID)
	if reloadedEscrow.Status != constants.EscrowStatusRefunded {
		t.Fatalf("expected escrow refunded, got %s", reloadedEscrow.Status)
	}
}

func TestCancellationActiveNoPayment(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createBarterCollab(t, env, brand)

	cancellation, err := env.cancellations.Request(context.Background(), collab.CollabID, brand.ID, RequestCancellationInput{})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if cancellation.Resolution != constants.CancellationResolutionNoPayment {
		t.Fatalf("expected no_payment, got %s", cancellation.Resolution)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusCancelled {
		t.Fatalf("expected cancelled, got %s", reloaded.Status)
	}
}

func TestCancellationAwaitingEscrowClearsPayment(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	if _, err := env.cancellations.Request(context.Background(), collab.CollabID, brand.ID, RequestCancellationInput{}); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.PaymentStatus != constants.PaymentStatusNone {
		t.Fatalf("expected payment none, got %s", reloaded.PaymentStatus)
	}
}

func TestCancellationInProgressGoesToAdmin(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)
	acceptTestApplication(t, env, collab, brand, influencer, nil)
	securedTestEscrow(t, env, collab, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	cancellation, err := env.cancellations.Request(context.Background(), collab.CollabID, influencer.ID, RequestCancellationInput{
		Reason: "program incarcat",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if cancellation.Status != constants.CancellationStatusPendingAdminReview {
		t.Fatalf("expected pending_admin_review, got %s", cancellation.Status)
	}
	if cancellation.RequestedByRole != constants.UserTypeInfluencer {
		t.Fatalf("expected influencer role, got %s", cancellation.RequestedByRole)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusCancelRequestedInfluencer {
		t.Fatalf("expected cancellation_requested_by_influencer, got %s", reloaded.Status)
	}
}

func TestCancellationWindowClosed(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)
	securedTestEscrow(t, env, collab, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	if _, err := env.cancellations.Request(context.Background(), collab.CollabID, brand.ID, RequestCancellationInput{}); !errors.Is(err, ErrCancellationWindowClosed) {
		t.Fatalf("expected ErrCancellationWindowClosed, got %v", err)
	}
}

func TestCancellationOutsiderRejected(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	outsider := createTestInfluencer(t, env.db, "out@example.com", "outsider")
	collab := createPaidCollab(t, env, brand, 500)

	if _, err := env.cancellations.Request(context.Background(), collab.CollabID, outsider.ID, RequestCancellationInput{}); !errors.Is(err, ErrNotCollabParticipant) {
		t.Fatalf("expected ErrNotCollabParticipant, got %v", err)
	}
}

func pendingCancellation(t *testing.T, env *testEnv) (*models.Collaboration, *models.Escrow, *models.Cancellation) {
	t.Helper()
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)
	acceptTestApplication(t, env, collab, brand, influencer, nil)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	cancellation, err := env.cancellations.Request(context.Background(), collab.CollabID, brand.ID, RequestCancellationInput{
		Reason: "neintelegere",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return collab, escrow, cancellation
}

func TestCancellationResolveFullRefund(t *testing.T) {
	env := setupServiceTest(t)
	collab, escrow, cancellation := pendingCancellation(t, env)

	resolved, err := env.cancellations.Resolve(context.Background(), cancellation.CancellationID, ResolveCancellationInput{
		Resolution: constants.CancellationResolutionFullRefund,
		AdminNotes: "refund aprobat",
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Status != constants.CancellationStatusResolved {
		t.Fatalf("expected resolved, got %s", resolved.Status)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusCancelled || reloaded.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected cancelled/refunded, got %s/%s", reloaded.Status, reloaded.PaymentStatus)
	}
	reloadedEscrow := reloadEscrow(t, env.db, escrow.ID)
	if reloadedEscrow.Status != constants.EscrowStatusRefunded {
		t.Fatalf("expected escrow refunded, got %s", reloadedEscrow.Status)
	}
}

func TestCancellationResolvePartialRefund(t *testing.T) {
	env := setupServiceTest(t)
	collab, escrow, cancellation := pendingCancellation(t, env)

	partial := models.NewMoneyFromFloat(200)
	resolved, err := env.cancellations.Resolve(context.Background(), cancellation.CancellationID, ResolveCancellationInput{
		Resolution:    constants.CancellationResolutionPartialRefund,
		PartialAmount: &partial,
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.PartialAmount == nil || !resolved.PartialAmount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected partial amount 200")
	}

	reloadedEscrow := reloadEscrow(t, env.db, escrow.ID)
	if reloadedEscrow.Status != constants.EscrowStatusPartialRefund {
		t.Fatalf("expected escrow partial_refund, got %s", reloadedEscrow.Status)
	}
	if reloadedEscrow.RefundAmount == nil || !reloadedEscrow.RefundAmount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected refund amount 200")
	}
	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.PaymentStatus != constants.PaymentStatusPartialRefund {
		t.Fatalf("expected payment partial_refund, got %s", reloaded.PaymentStatus)
	}
}

func TestCancellationResolvePartialRequiresAmount(t *testing.T) {
	env := setupServiceTest(t)
	_, _, cancellation := pendingCancellation(t, env)

	if _, err := env.cancellations.Resolve(context.Background(), cancellation.CancellationID, ResolveCancellationInput{
		Resolution: constants.CancellationResolutionPartialRefund,
	}); !errors.Is(err, ErrPartialAmountInvalid) {
		t.Fatalf("expected ErrPartialAmountInvalid, got %v", err)
	}
}

func TestCancellationResolveContinue(t *testing.T) {
	env := setupServiceTest(t)
	collab, escrow, cancellation := pendingCancellation(t, env)

	resolved, err := env.cancellations.Resolve(context.Background(), cancellation.CancellationID, ResolveCancellationInput{
		Resolution: constants.CancellationResolutionContinue,
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if resolved.Resolution != constants.CancellationResolutionContinue {
		t.Fatalf("expected continue, got %s", resolved.Resolution)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.Status != constants.CollabStatusInProgress {
		t.Fatalf("expected in_progress, got %s", reloaded.Status)
	}
	reloadedEscrow := reloadEscrow(t, env.db, escrow.ID)
	if reloadedEscrow.Status != constants.EscrowStatusSecured {
		t.Fatalf("expected escrow untouched, got %s", reloadedEscrow.Status)
	}
}

func TestCancellationResolveInvalidResolution(t *testing.T) {
	env := setupServiceTest(t)
	_, _, cancellation := pendingCancellation(t, env)

	if _, err := env.cancellations.Resolve(context.Background(), cancellation.CancellationID, ResolveCancellationInput{
		Resolution: "void",
	}); !errors.Is(err, ErrInvalidResolution) {
		t.Fatalf("expected ErrInvalidResolution, got %v", err)
	}
}

func TestCancellationResolveTwiceRejected(t *testing.T) {
	env := setupServiceTest(t)
	_, _, cancellation := pendingCancellation(t, env)

	if _, err := env.cancellations.Resolve(context.Background(), cancellation.CancellationID, ResolveCancellationInput{
		Resolution: constants.CancellationResolutionContinue,
	}); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if _, err := env.cancellations.Resolve(context.Background(), cancellation.CancellationID, ResolveCancellationInput{
		Resolution: constants.CancellationResolutionContinue,
	}); !errors.Is(err, ErrCancellationNotPending) {
		t.Fatalf("expected ErrCancellationNotPending, got %v", err)
	}
}
