package service

import "errors"

// 认证与用户错误
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password too weak")
)

// 达人档案错误
var (
	ErrProfileNotFound = errors.New("influencer profile not found")
	ErrProfileExists   = errors.New("influencer profile already exists")
	ErrProfileRequired = errors.New("influencer profile required")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidUsername = errors.New("invalid username")
	ErrNotInfluencer   = errors.New("user is not an influencer")
	ErrNotBrand        = errors.New("user is not a brand")
)

// 合作错误
var (
	ErrCollabNotFound          = errors.New("collaboration not found")
	ErrNotCollabOwner          = errors.New("not the collaboration owner")
	ErrNotCollabParticipant    = errors.New("not a collaboration participant")
	ErrInvalidCollabType       = errors.New("invalid collaboration type")
	ErrInvalidBudget           = errors.New("invalid budget")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrCollabNotEditable       = errors.New("collaboration not editable")
	ErrInvalidCollabInput      = errors.New("invalid collaboration input")
)

// 申请错误
var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrAlreadyApplied           = errors.New("already applied")
	ErrApplicationClosed        = errors.New("collaboration not open for applications")
	ErrApplicationNotPending    = errors.New("application not pending")
	ErrInvalidApplicationStatus = errors.New("invalid application status")
)

// 托管与支付错误
var (
	ErrEscrowNotFound      = errors.New("escrow not found")
	ErrEscrowExists        = errors.New("active escrow already exists")
	ErrEscrowNotRequired   = errors.New("escrow not required for this collaboration")
	ErrEscrowNotPending    = errors.New("escrow not pending")
	ErrEscrowNotSecured    = errors.New("escrow not secured")
	ErrEscrowNotReleasable = errors.New("escrow not releasable")
	ErrEscrowNotRefundable = errors.New("escrow not refundable")
	ErrPaymentFailed       = errors.New("payment provider operation failed")
)

// 取消错误
var (
	ErrCancellationNotFound     = errors.New("cancellation not found")
	ErrCancellationNotAllowed   = errors.New("cancellation not allowed in current state")
	ErrCancellationWindowClosed = errors.New("cancellation window closed, open a dispute instead")
	ErrCancellationNotPending   = errors.New("cancellation not pending admin review")
	ErrInvalidResolution        = errors.New("invalid resolution")
	ErrPartialAmountInvalid     = errors.New("partial refund amount invalid")
)

// 争议错误
var (
	ErrDisputeWindowClosed = errors.New("dispute can only be opened during the confirmation window")
	ErrDisputeExists       = errors.New("an open dispute already exists")
	ErrDisputeNotFound     = errors.New("dispute not found")
	ErrDisputeNotOpen      = errors.New("dispute is not open")
	ErrSplitAmountInvalid  = errors.New("split amounts must add up to the escrow total")
)

// 评价错误
var (
	ErrReviewNotAllowed = errors.New("review not allowed yet")
	ErrAlreadyReviewed  = errors.New("already reviewed")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrReviewNotFound   = errors.New("review not found")
)

// 消息错误
var (
	ErrMessagingNotOpen = errors.New("messaging opens after an application is accepted")
	ErrThreadLocked     = errors.New("thread locked during dispute")
	ErrEmptyMessage     = errors.New("message content required")
)

// 设置错误
var (
	ErrInvalidCommissionRate = errors.New("commission rate must be between 0 and 100")
)
