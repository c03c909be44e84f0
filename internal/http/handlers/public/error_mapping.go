package public

import (
	"errors"

	"github.com/colaboreaza/backend/internal/http/response"
	"github.com/colaboreaza/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// 合作查询与归属校验的通用错误
var collabAccessErrorRules = []mappedHandlerError{
	{target: service.ErrCollabNotFound, code: response.CodeNotFound, key: "error.collab_not_found"},
	{target: service.ErrNotCollabOwner, code: response.CodeForbidden, key: "error.not_collab_owner"},
	{target: service.ErrNotCollabParticipant, code: response.CodeForbidden, key: "error.not_participant"},
}

var collabWriteErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrNotBrand, code: response.CodeForbidden, key: "error.not_brand"},
	{target: service.ErrInvalidCollabType, code: response.CodeBadRequest, key: "error.collab_type_invalid"},
	{target: service.ErrInvalidBudget, code: response.CodeBadRequest, key: "error.budget_invalid"},
	{target: service.ErrInvalidCollabInput, code: response.CodeBadRequest, key: "error.invalid_request"},
	{target: service.ErrCollabNotEditable, code: response.CodeConflict, key: "error.collab_not_editable"},
	{target: service.ErrInvalidStatusTransition, code: response.CodeConflict, key: "error.collab_status_invalid"},
	{target: service.ErrEscrowNotSecured, code: response.CodeConflict, key: "error.escrow_not_secured"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrNotInfluencer, code: response.CodeForbidden, key: "error.not_influencer"},
	{target: service.ErrProfileNotFound, code: response.CodeNotFound, key: "error.profile_not_found"},
	{target: service.ErrProfileExists, code: response.CodeConflict, key: "error.profile_exists"},
	{target: service.ErrUsernameTaken, code: response.CodeConflict, key: "error.username_exists"},
	{target: service.ErrInvalidUsername, code: response.CodeBadRequest, key: "error.username_invalid"},
}

var applicationErrorRules = []mappedHandlerError{
	{target: service.ErrApplicationNotFound, code: response.CodeNotFound, key: "error.application_not_found"},
	{target: service.ErrAlreadyApplied, code: response.CodeConflict, key: "error.application_exists"},
	{target: service.ErrApplicationClosed, code: response.CodeConflict, key: "error.collab_not_open"},
	{target: service.ErrApplicationNotPending, code: response.CodeConflict, key: "error.application_not_pending"},
	{target: service.ErrInvalidApplicationStatus, code: response.CodeBadRequest, key: "error.application_status_invalid"},
	{target: service.ErrProfileRequired, code: response.CodeBadRequest, key: "error.profile_required"},
	{target: service.ErrNotInfluencer, code: response.CodeForbidden, key: "error.not_influencer"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var escrowErrorRules = []mappedHandlerError{
	{target: service.ErrEscrowNotFound, code: response.CodeNotFound, key: "error.escrow_not_found"},
	{target: service.ErrEscrowExists, code: response.CodeConflict, key: "error.escrow_exists"},
	{target: service.ErrEscrowNotRequired, code: response.CodeBadRequest, key: "error.escrow_not_required"},
	{target: service.ErrEscrowNotPending, code: response.CodeConflict, key: "error.escrow_status_invalid"},
	{target: service.ErrEscrowNotSecured, code: response.CodeConflict, key: "error.escrow_not_secured"},
	{target: service.ErrInvalidBudget, code: response.CodeBadRequest, key: "error.escrow_amount_missing"},
	{target: service.ErrPaymentFailed, code: response.CodeInternal, key: "error.payment_provider_failed"},
}

var cancellationErrorRules = []mappedHandlerError{
	{target: service.ErrCancellationNotFound, code: response.CodeNotFound, key: "error.cancellation_not_found"},
	{target: service.ErrCancellationNotAllowed, code: response.CodeConflict, key: "error.cancellation_not_allowed"},
	{target: service.ErrCancellationWindowClosed, code: response.CodeConflict, key: "error.cancellation_window_closed"},
	{target: service.ErrCancellationNotPending, code: response.CodeConflict, key: "error.cancellation_status_invalid"},
	{target: service.ErrInvalidResolution, code: response.CodeBadRequest, key: "error.cancellation_resolution_invalid"},
	{target: service.ErrPartialAmountInvalid, code: response.CodeBadRequest, key: "error.amount_invalid"},
	{target: service.ErrPaymentFailed, code: response.CodeInternal, key: "error.payment_provider_failed"},
}

var disputeErrorRules = []mappedHandlerError{
	{target: service.ErrDisputeNotFound, code: response.CodeNotFound, key: "error.dispute_not_found"},
	{target: service.ErrDisputeExists, code: response.CodeConflict, key: "error.dispute_exists"},
	{target: service.ErrDisputeWindowClosed, code: response.CodeConflict, key: "error.dispute_window_closed"},
	{target: service.ErrDisputeNotOpen, code: response.CodeConflict, key: "error.dispute_status_invalid"},
	{target: service.ErrSplitAmountInvalid, code: response.CodeBadRequest, key: "error.dispute_split_invalid"},
	{target: service.ErrInvalidResolution, code: response.CodeBadRequest, key: "error.dispute_resolution_invalid"},
	{target: service.ErrPaymentFailed, code: response.CodeInternal, key: "error.payment_provider_failed"},
}

var messageErrorRules = []mappedHandlerError{
	{target: service.ErrMessagingNotOpen, code: response.CodeConflict, key: "error.messaging_not_open"},
	{target: service.ErrThreadLocked, code: response.CodeConflict, key: "error.thread_locked"},
	{target: service.ErrEmptyMessage, code: response.CodeBadRequest, key: "error.message_empty"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrApplicationNotFound, code: response.CodeNotFound, key: "error.application_not_found"},
	{target: service.ErrReviewNotAllowed, code: response.CodeConflict, key: "error.review_not_eligible"},
	{target: service.ErrAlreadyReviewed, code: response.CodeConflict, key: "error.review_exists"},
	{target: service.ErrInvalidRating, code: response.CodeBadRequest, key: "error.rating_invalid"},
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, key: "error.review_not_found"},
}
