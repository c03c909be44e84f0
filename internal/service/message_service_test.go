package service

import (
	"context"
	"errors"
	"testing"

	"github.com/colaboreaza/backend/internal/constants"
)

func TestMessageThreadOpensAfterAcceptance(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createBarterCollab(t, env, brand)

	if _, err := env.messages.Send(collab.CollabID, brand.ID, "salut"); !errors.Is(err, ErrMessagingNotOpen) {
		t.Fatalf("expected ErrMessagingNotOpen before acceptance, got %v", err)
	}

	acceptTestApplication(t, env, collab, brand, influencer, nil)

	message, err := env.messages.Send(collab.CollabID, brand.ID, "salut, incepem?")
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if message.SenderType != constants.UserTypeBrand {
		t.Fatalf("expected sender type brand, got %s", message.SenderType)
	}

	reply, err := env.messages.Send(collab.CollabID, influencer.ID, "da, incepem")
	if err != nil {
		t.Fatalf("reply failed: %v", err)
	}
	if reply.SenderType != constants.UserTypeInfluencer {
		t.Fatalf("expected sender type influencer, got %s", reply.SenderType)
	}

	list, err := env.messages.List(collab.CollabID, influencer.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(list))
	}
}

func TestMessagePendingApplicantCannotSend(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createBarterCollab(t, env, brand)

	if _, err := env.applications.Apply(collab.CollabID, influencer.ID, ApplyInput{}); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, err := env.messages.Send(collab.CollabID, influencer.ID, "salut"); !errors.Is(err, ErrMessagingNotOpen) {
		t.Fatalf("expected ErrMessagingNotOpen for pending applicant, got %v", err)
	}
}

func TestMessageEmptyContentRejected(t *testing.T) {
	env := setupServiceTest(t)
	brand := createTestBrand(t, env.db, "brand@example.com")
	influencer := createTestInfluencer(t, env.db, "inf@example.com", "ana_cream")
	collab := createBarterCollab(t, env, brand)
	acceptTestApplication(t, env, collab, brand, influencer, nil)

	if _, err := env.messages.Send(collab.CollabID, brand.ID, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestMessageThreadLockedDuringDispute(t *testing.T) {
	env := setupServiceTest(t)
	brand, influencer, collab, _ := confirmationWindowCollab(t, env)

	dispute, err := env.disputes.Open(collab.CollabID, brand.ID, OpenDisputeInput{})
	if err != nil {
		t.Fatalf("open dispute failed: %v", err)
	}
	if _, err := env.messages.Send(collab.CollabID, brand.ID, "mesaj"); !errors.Is(err, ErrThreadLocked) {
		t.Fatalf("expected ErrThreadLocked, got %v", err)
	}

	if _, err := env.disputes.Resolve(context.Background(), dispute.DisputeID, ResolveDisputeInput{
		Resolution: constants.DisputeResolutionReleaseToInfluencer,
	}); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	if _, err := env.messages.Send(collab.CollabID, influencer.ID, "multumesc"); err != nil {
		t.Fatalf("send after resolve failed: %v", err)
	}
}
