package worker

import (
	"context"
	"testing"

	"github.com/colaboreaza/backend/internal/provider"
	"github.com/colaboreaza/backend/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleApplicationStatusEmailInvalidPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskApplicationStatusEmail, []byte("not-json"))

	if err := consumer.handleApplicationStatusEmail(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleApplicationStatusEmailZeroIDSkipped(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskApplicationStatusEmail, []byte(`{"application_id":0}`))

	if err := consumer.handleApplicationStatusEmail(context.Background(), task); err != nil {
		t.Fatalf("expected zero id to be skipped, got %v", err)
	}
}

func TestHandleEscrowReleaseReminderZeroIDSkipped(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskEscrowReleaseReminder, []byte(`{"escrow_id":0}`))

	if err := consumer.handleEscrowReleaseReminder(context.Background(), task); err != nil {
		t.Fatalf("expected zero id to be skipped, got %v", err)
	}
}

func TestHandleEscrowReleaseReminderNilRepoSkipped(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskEscrowReleaseReminder, []byte(`{"escrow_id":7}`))

	if err := consumer.handleEscrowReleaseReminder(context.Background(), task); err != nil {
		t.Fatalf("expected nil repo to be skipped, got %v", err)
	}
}

func TestHandleReviewAutoRevealNilServiceSkipped(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})
	task := asynq.NewTask(queue.TaskReviewAutoReveal, []byte(`{"review_id":1}`))

	if err := consumer.handleReviewAutoReveal(context.Background(), task); err != nil {
		t.Fatalf("expected nil service to be skipped, got %v", err)
	}
}

func TestNilConsumerHandlersNoop(t *testing.T) {
	var consumer *Consumer
	task := asynq.NewTask(queue.TaskEscrowReleaseReminder, []byte(`{"escrow_id":1}`))

	if err := consumer.handleEscrowReleaseReminder(context.Background(), task); err != nil {
		t.Fatalf("expected nil consumer noop, got %v", err)
	}
	consumer.Register(nil)
}
