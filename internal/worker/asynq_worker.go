package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/colaboreaza/backend/internal/constants"
	"github.com/colaboreaza/backend/internal/logger"
	"github.com/colaboreaza/backend/internal/provider"
	"github.com/colaboreaza/backend/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskApplicationStatusEmail, c.handleApplicationStatusEmail)
	mux.HandleFunc(queue.TaskReviewAutoReveal, c.handleReviewAutoReveal)
	mux.HandleFunc(queue.TaskEscrowReleaseReminder, c.handleEscrowReleaseReminder)
}

// handleApplicationStatusEmail 申请状态变更通知
// 目前只记录通知日志，邮件投递接入后在此处发送
func (c *Consumer) handleApplicationStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_application_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ApplicationStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_application_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.ApplicationID == 0 {
		logger.Debugw("worker_application_status_email_skip_invalid_payload", "application_id", payload.ApplicationID)
		return nil
	}
	application, err := c.ApplicationRepo.GetByID(payload.ApplicationID)
	if err != nil {
		logger.Warnw("worker_application_status_email_fetch_failed", "application_id", payload.ApplicationID, "error", err)
		return err
	}
	if application == nil {
		logger.Debugw("worker_application_status_email_skip_not_found", "application_id", payload.ApplicationID)
		return nil
	}
	user, err := c.UserRepo.GetByID(application.InfluencerUserID)
	if err != nil {
		logger.Warnw("worker_application_status_email_fetch_user_failed", "application_id", payload.ApplicationID, "error", err)
		return err
	}
	if user == nil || user.Email == "" {
		logger.Debugw("worker_application_status_email_skip_empty_receiver", "application_id", payload.ApplicationID)
		return nil
	}
	logger.Infow("application_status_notification",
		"application_id", application.ApplicationID,
		"receiver_email", user.Email,
		"locale", user.Locale,
		"status", payload.Status,
	)
	return nil
}

// handleReviewAutoReveal 评价超期揭示
// 定时任务按申请维度排队，消费时统一跑一次全量超期扫描
func (c *Consumer) handleReviewAutoReveal(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_review_auto_reveal_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ReviewAutoRevealPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_review_auto_reveal_unmarshal_failed", "error", err)
		return err
	}
	if c.ReviewService == nil {
		logger.Warnw("worker_review_auto_reveal_skip_service_nil", "review_id", payload.ReviewID)
		return nil
	}
	count, err := c.ReviewService.AutoRevealTimedOut(time.Now())
	if err != nil {
		logger.Warnw("worker_review_auto_reveal_failed", "review_id", payload.ReviewID, "error", err)
		return err
	}
	if count > 0 {
		logger.Infow("worker_review_auto_reveal_done", "count", count)
	}
	return nil
}

// handleEscrowReleaseReminder 确认窗口到期提醒
// 只通知品牌方确认放款，资金不在这里流转
func (c *Consumer) handleEscrowReleaseReminder(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_escrow_release_reminder_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.EscrowReleaseReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_escrow_release_reminder_unmarshal_failed", "error", err)
		return err
	}
	if payload.EscrowID == 0 {
		logger.Debugw("worker_escrow_release_reminder_skip_invalid_payload", "escrow_id", payload.EscrowID)
		return nil
	}
	if c.EscrowRepo == nil {
		logger.Warnw("worker_escrow_release_reminder_skip_repo_nil", "escrow_id", payload.EscrowID)
		return nil
	}
	escrow, err := c.EscrowRepo.GetByID(payload.EscrowID)
	if err != nil {
		logger.Warnw("worker_escrow_release_reminder_fetch_failed", "escrow_id", payload.EscrowID, "error", err)
		return err
	}
	if escrow == nil {
		logger.Debugw("worker_escrow_release_reminder_skip_not_found", "escrow_id", payload.EscrowID)
		return nil
	}
	if escrow.Status != constants.EscrowStatusCompletedPendingRelease {
		// 已放款、退款或进入争议，提醒作废
		logger.Debugw("worker_escrow_release_reminder_skip_settled", "escrow_id", escrow.EscrowID, "status", escrow.Status)
		return nil
	}
	brand, err := c.UserRepo.GetByID(escrow.BrandUserID)
	if err != nil {
		logger.Warnw("worker_escrow_release_reminder_fetch_user_failed", "escrow_id", escrow.EscrowID, "error", err)
		return err
	}
	if brand == nil || brand.Email == "" {
		logger.Debugw("worker_escrow_release_reminder_skip_empty_receiver", "escrow_id", escrow.EscrowID)
		return nil
	}
	logger.Infow("escrow_release_reminder",
		"escrow_id", escrow.EscrowID,
		"receiver_email", brand.Email,
		"locale", brand.Locale,
		"amount", escrow.TotalAmount.String(),
	)
	return nil
}
