package queue

import (
	"encoding/json"

	"github.com/colaboreaza/backend/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskApplicationStatusEmail 申请状态邮件通知任务
	TaskApplicationStatusEmail = constants.TaskApplicationStatusEmail
	// TaskReviewAutoReveal 评价超时揭示任务
	TaskReviewAutoReveal = constants.TaskReviewAutoReveal
	// TaskEscrowReleaseReminder 托管确认窗口到期提醒任务
	TaskEscrowReleaseReminder = constants.TaskEscrowReleaseReminder
)

// ApplicationStatusEmailPayload 申请状态邮件任务载荷
type ApplicationStatusEmailPayload struct {
	ApplicationID uint   `json:"application_id"`
	Status        string `json:"status"`
}

// ReviewAutoRevealPayload 评价超时揭示任务载荷
type ReviewAutoRevealPayload struct {
	ReviewID uint `json:"review_id"`
}

// EscrowReleaseReminderPayload 托管到期提醒任务载荷
type EscrowReleaseReminderPayload struct {
	EscrowID uint `json:"escrow_id"`
}

// NewApplicationStatusEmailTask 创建申请状态邮件任务
func NewApplicationStatusEmailTask(payload ApplicationStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskApplicationStatusEmail, body), nil
}

// NewReviewAutoRevealTask 创建评价超时揭示任务
func NewReviewAutoRevealTask(payload ReviewAutoRevealPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReviewAutoReveal, body), nil
}

// NewEscrowReleaseReminderTask 创建托管到期提醒任务
func NewEscrowReleaseReminderTask(payload EscrowReleaseReminderPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskEscrowReleaseReminder, body), nil
}
