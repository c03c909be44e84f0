package service

import (
	"errors"
	"testing"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"
)

func TestCollabCreatePaidAwaitsEscrow(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")

	collab := createPaidCollab(t, env, brand, 1000)
	if collab.Status != constants.CollabStatusActive {
		t.Fatalf("expected active, got %s", collab.Status)
	}
	if collab.PaymentStatus != constants.PaymentStatusAwaitingEscrow {
		t.Fatalf("expected awaiting_escrow, got %s", collab.PaymentStatus)
	}
}

func TestCollabCreateBarterNoPayment(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")

	collab := createBarterCollab(t, env, brand)
	if collab.PaymentStatus != constants.PaymentStatusNone {
		t.Fatalf("expected payment none, got %s", collab.PaymentStatus)
	}
}

func TestCollabCreateInvalidType(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")

	_, err := env.collabs.Create(brand.ID, CreateCollabInput{
		Title:             "Campanie",
		CollaborationType: "sponsored",
	})
	if !errors.Is(err, ErrInvalidCollabType) {
		t.Fatalf("expected ErrInvalidCollabType, got %v", err)
	}
}

func TestCollabCreatePaidRequiresBudget(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")

	_, err := env.collabs.Create(brand.ID, CreateCollabInput{
		Title:             "Campanie",
		CollaborationType: constants.CollabTypePaid,
	})
	if !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
}

func TestCollabCreateRejectsInfluencer(t *testing.T) {
	env := setupServiceTest(t)
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")

	_, err := env.collabs.Create(influencer.ID, CreateCollabInput{
		Title:             "Campanie",
		CollaborationType: constants.CollabTypeFree,
	})
	if !errors.Is(err, ErrNotBrand) {
		t.Fatalf("expected ErrNotBrand, got %v", err)
	}
}

func TestCollabStatusTransitions(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createBarterCollab(t, env, brand)

	updated, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress)
	if err != nil {
		t.Fatalf("active to in_progress failed: %v", err)
	}
	if updated.Status != constants.CollabStatusInProgress {
		t.Fatalf("expected in_progress, got %s", updated.Status)
	}

	updated, err = env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted)
	if err != nil {
		t.Fatalf("in_progress to completed failed: %v", err)
	}
	if updated.Status != constants.CollabStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatalf("expected completed_at set")
	}
	if updated.PaymentStatus != constants.PaymentStatusNone {
		t.Fatalf("barter completion must not touch payment, got %s", updated.PaymentStatus)
	}
}

func TestCollabStatusCompleteDirectFromActive(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createBarterCollab(t, env, brand)

	updated, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted)
	if err != nil {
		t.Fatalf("active to completed failed: %v", err)
	}
	if updated.Status != constants.CollabStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	if updated.CompletedAt == nil {
		t.Fatalf("expected completed_at set")
	}
}

func TestCollabStatusCompleteDirectPaidKeepsEscrowGate(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted); !errors.Is(err, ErrEscrowNotSecured) {
		t.Fatalf("expected ErrEscrowNotSecured, got %v", err)
	}

	securedTestEscrow(t, env, collab, brand)
	updated, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted)
	if err != nil {
		t.Fatalf("active to completed failed: %v", err)
	}
	if updated.Status != constants.CollabStatusCompletedPendingRelease {
		t.Fatalf("expected completed_pending_release, got %s", updated.Status)
	}
}

func TestCollabStatusTerminalRejected(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createBarterCollab(t, env, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Fatalf("expected terminal state rejection, got %v", err)
	}
}

func TestCollabCompletePaidRequiresSecuredEscrow(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted); !errors.Is(err, ErrEscrowNotSecured) {
		t.Fatalf("expected ErrEscrowNotSecured, got %v", err)
	}
}

func TestCollabCompletePaidEntersConfirmationWindow(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)
	escrow := securedTestEscrow(t, env, collab, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	updated, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if updated.Status != constants.CollabStatusCompletedPendingRelease {
		t.Fatalf("expected completed_pending_release, got %s", updated.Status)
	}
	if updated.PaymentStatus != constants.PaymentStatusCompletedPendingRelease {
		t.Fatalf("expected payment completed_pending_release, got %s", updated.PaymentStatus)
	}

	reloaded := reloadEscrow(t, env.db, escrow.ID)
	if reloaded.Status != constants.EscrowStatusCompletedPendingRelease {
		t.Fatalf("expected escrow completed_pending_release, got %s", reloaded.Status)
	}
	if reloaded.ReleaseScheduledAt == nil {
		t.Fatalf("expected escrow release_scheduled_at set")
	}
}

func TestCollabChangeStatusNotOwner(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	other := createTestBrand(t, env.db, "other@example.com")
	collab := createBarterCollab(t, env, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, other.ID, constants.CollabStatusInProgress); !errors.Is(err, ErrNotCollabOwner) {
		t.Fatalf("expected ErrNotCollabOwner, got %v", err)
	}
}

func TestCollabUpdateOnlyWhileActive(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createBarterCollab(t, env, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	_, err := env.collabs.Update(collab.CollabID, brand.ID, UpdateCollabInput{Title: "Titlu nou"})
	if !errors.Is(err, ErrCollabNotEditable) {
		t.Fatalf("expected ErrCollabNotEditable, got %v", err)
	}
}

func TestCollabUpdatePaidKeepsBudgetValid(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	zero := models.NewMoneyFromFloat(0)
	_, err := env.collabs.Update(collab.CollabID, brand.ID, UpdateCollabInput{BudgetMax: &zero})
	if !errors.Is(err, ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget, got %v", err)
	}
}
