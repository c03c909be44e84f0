package constants

// 用户类型常量
const (
	UserTypeBrand      = "brand"
	UserTypeInfluencer = "influencer"
)

// 合作类型常量
const (
	CollabTypePaid   = "paid"
	CollabTypeBarter = "barter"
	CollabTypeFree   = "free"
)

// 合作状态常量
const (
	CollabStatusActive                    = "active"
	CollabStatusInProgress                = "in_progress"
	CollabStatusCompletedPendingRelease   = "completed_pending_release"
	CollabStatusCompleted                 = "completed"
	CollabStatusCancelled                 = "cancelled"
	CollabStatusDisputed                  = "disputed"
	CollabStatusCancelRequestedBrand      = "cancellation_requested_by_brand"
	CollabStatusCancelRequestedInfluencer = "cancellation_requested_by_influencer"
)

// 合作支付状态常量
const (
	PaymentStatusNone                    = "none"
	PaymentStatusAwaitingEscrow          = "awaiting_escrow"
	PaymentStatusSecured                 = "secured"
	PaymentStatusCompletedPendingRelease = "completed_pending_release"
	PaymentStatusReleased                = "released"
	PaymentStatusRefunded                = "refunded"
	PaymentStatusPartialRefund           = "partial_refund"
	PaymentStatusDisputed                = "disputed"
	PaymentStatusSplitResolved           = "split_resolved"
)

// 托管状态常量
const (
	EscrowStatusPending                 = "pending"
	EscrowStatusSecured                 = "secured"
	EscrowStatusCompletedPendingRelease = "completed_pending_release"
	EscrowStatusReleased                = "released"
	EscrowStatusRefunded                = "refunded"
	EscrowStatusPartialRefund           = "partial_refund"
	EscrowStatusDisputed                = "disputed"
	EscrowStatusSplitResolved           = "split_resolved"
)

// 申请状态常量
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// 取消请求状态常量
const (
	CancellationStatusCompleted          = "completed"
	CancellationStatusPendingAdminReview = "pending_admin_review"
	CancellationStatusResolved           = "resolved"
)

// 取消处理结果常量
const (
	CancellationResolutionFullRefund    = "full_refund"
	CancellationResolutionPartialRefund = "partial_refund"
	CancellationResolutionContinue      = "continue"
	CancellationResolutionNoPayment     = "no_payment"
)

// 争议状态常量
const (
	DisputeStatusOpen        = "open"
	DisputeStatusUnderReview = "under_review"
	DisputeStatusResolved    = "resolved"
)

// 争议处理结果常量
const (
	DisputeResolutionReleaseToInfluencer = "release_to_influencer"
	DisputeResolutionRefundToBrand       = "refund_to_brand"
	DisputeResolutionSplit               = "split"
)

// 佣金来源常量
const (
	CommissionSourceRelease        = "release"
	CommissionSourceDisputeRelease = "dispute_release"
)

// 评价方类型常量
const (
	ReviewerTypeBrand      = "brand"
	ReviewerTypeInfluencer = "influencer"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskApplicationStatusEmail = "application:status_email"
	TaskReviewAutoReveal       = "review:auto_reveal"
	TaskEscrowReleaseReminder  = "escrow:release_reminder"
)

// 设置键常量
const (
	SettingKeyCommission = "commission"
	SettingFieldRate     = "rate"
	SettingKeySiteConfig = "site_config"
)

// 公开 ID 前缀常量
const (
	IDPrefixUser         = "user"
	IDPrefixCollab       = "collab"
	IDPrefixApplication  = "app"
	IDPrefixEscrow       = "escrow"
	IDPrefixCancellation = "cancel"
	IDPrefixDispute      = "disp"
	IDPrefixCommission   = "comm"
	IDPrefixReview       = "rev"
	IDPrefixMessage      = "msg"
)

// 业务默认值常量
const (
	DefaultCommissionRatePercent = 10
	DefaultConfirmWindowHours    = 48
	DefaultReviewRevealDays      = 14
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)
