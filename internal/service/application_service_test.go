package service

import (
	"errors"
	"testing"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"
)

func TestApplicationApply(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)

	application, err := env.applications.Apply(collab.CollabID, influencer.ID, ApplyInput{
		Message: "Vreau sa colaborez",
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if application.Status != constants.ApplicationStatusPending {
		t.Fatalf("expected pending, got %s", application.Status)
	}
	if application.InfluencerUsername != "ana_cream" {
		t.Fatalf("expected username snapshot, got %s", application.InfluencerUsername)
	}

	reloaded := reloadCollab(t, env.db, collab.ID)
	if reloaded.ApplicantsCount != 1 {
		t.Fatalf("expected applicants_count 1, got %d", reloaded.ApplicantsCount)
	}
}

func TestApplicationApplyRequiresProfile(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	bare := &models.User{
		UserID:       models.NewPublicID(constants.IDPrefixUser),
		Email:        "bare@example.com",
		PasswordHash: "hash",
		UserType:     constants.UserTypeInfluencer,
		Status:       constants.UserStatusActive,
	}
	if err := env.db.Create(bare).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if _, err := env.applications.Apply(collab.CollabID, bare.ID, ApplyInput{}); !errors.Is(err, ErrProfileRequired) {
		t.Fatalf("expected ErrProfileRequired, got %v", err)
	}
}

func TestApplicationApplyDuplicate(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)

	if _, err := env.applications.Apply(collab.CollabID, influencer.ID, ApplyInput{}); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	if _, err := env.applications.Apply(collab.CollabID, influencer.ID, ApplyInput{}); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApplicationApplyClosedCollab(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createBarterCollab(t, env, brand)

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := env.applications.Apply(collab.CollabID, influencer.ID, ApplyInput{}); !errors.Is(err, ErrApplicationClosed) {
		t.Fatalf("expected ErrApplicationClosed, got %v", err)
	}
}

func TestApplicationApplyRejectsBrand(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	collab := createPaidCollab(t, env, brand, 500)

	if _, err := env.applications.Apply(collab.CollabID, brand.ID, ApplyInput{}); !errors.Is(err, ErrNotInfluencer) {
		t.Fatalf("expected ErrNotInfluencer, got %v", err)
	}
}

func TestApplicationAcceptUpdatesProfileHistory(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)

	acceptTestApplication(t, env, collab, brand, influencer, nil)

	var profile models.InfluencerProfile
	if err := env.db.Where("user_id = ?", influencer.ID).First(&profile).Error; err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	found := false
	for _, title := range profile.PreviousCollaborations {
		if title == collab.Title {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected collab title in previous_collaborations, got %v", profile.PreviousCollaborations)
	}
}

func TestApplicationSetStatusNotOwner(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	other := createTestBrand(t, env.db, "other@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)

	application, err := env.applications.Apply(collab.CollabID, influencer.ID, ApplyInput{})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := env.applications.SetStatus(application.ApplicationID, other.ID, constants.ApplicationStatusAccepted); !errors.Is(err, ErrNotCollabOwner) {
		t.Fatalf("expected ErrNotCollabOwner, got %v", err)
	}
}

func TestApplicationSetStatusOnlyPending(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)

	application := acceptTestApplication(t, env, collab, brand, influencer, nil)
	if _, err := env.applications.SetStatus(application.ApplicationID, brand.ID, constants.ApplicationStatusRejected); !errors.Is(err, ErrApplicationNotPending) {
		t.Fatalf("expected ErrApplicationNotPending, got %v", err)
	}
}

func TestApplicationSetStatusInvalidValue(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 500)

	application, err := env.applications.Apply(collab.CollabID, influencer.ID, ApplyInput{})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := env.applications.SetStatus(application.ApplicationID, brand.ID, "maybe"); !errors.Is(err, ErrInvalidApplicationStatus) {
		t.Fatalf("expected ErrInvalidApplicationStatus, got %v", err)
	}
}
