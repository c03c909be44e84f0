package service

import (
	"errors"
	"testing"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/models"

	"github.com/shopspring/decimal"
)

func TestSettingCommissionRateDefault(t *testing.T) {
	env := setupServiceTest(t)

	rate, err := env.settings.CommissionRate()
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if rate != constants.DefaultCommissionRatePercent {
		t.Fatalf("expected default rate, got %v", rate)
	}
}

func TestSettingCommissionRateUpdate(t *testing.T) {
	env := setupServiceTest(t)

	if _, err := env.settings.SetCommissionRate(15); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}
	rate, err := env.settings.CommissionRate()
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if rate != 15 {
		t.Fatalf("expected 15, got %v", rate)
	}
}

func TestSettingCommissionRateBounds(t *testing.T) {
	env := setupServiceTest(t)

	for _, rate := range []float64{-1, 100.5} {
		if _, err := env.settings.SetCommissionRate(rate); !errors.Is(err, ErrInvalidCommissionRate) {
			t.Fatalf("rate %v: expected ErrInvalidCommissionRate, got %v", rate, err)
		}
	}
}

func TestSettingInvalidStoredRateFallsBack(t *testing.T) {
	env := setupServiceTest(t)

	if _, err := env.settings.Update(constants.SettingKeyCommission, map[string]interface{}{
		constants.SettingFieldRate: "nu e numar",
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	rate, err := env.settings.CommissionRate()
	if err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	if rate != constants.DefaultCommissionRatePercent {
		t.Fatalf("expected fallback to default, got %v", rate)
	}
}

func TestSettingRateChangeDoesNotAffectExistingEscrow(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createPaidCollab(t, env, brand, 1000)
	acceptTestApplication(t, env, collab, brand, influencer, nil)

	if _, err := env.settings.SetCommissionRate(20); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}
	escrow := securedTestEscrow(t, env, collab, brand)
	if escrow.CommissionRate != 20 {
		t.Fatalf("expected snapshot rate 20, got %v", escrow.CommissionRate)
	}

	if _, err := env.settings.SetCommissionRate(5); err != nil {
		t.Fatalf("set rate failed: %v", err)
	}

	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusInProgress); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := env.collabs.ChangeStatus(collab.CollabID, brand.ID, constants.CollabStatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if _, err := env.escrows.Release(escrow.EscrowID); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	var commission models.Commission
	if err := env.db.Where("collab_id = ?", collab.ID).First(&commission).Error; err != nil {
		t.Fatalf("load commission failed: %v", err)
	}
	if commission.CommissionRate != 20 {
		t.Fatalf("expected commission rate 20, got %v", commission.CommissionRate)
	}
	if !commission.CommissionAmount.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected commission 200, got %s", commission.CommissionAmount)
	}
}
