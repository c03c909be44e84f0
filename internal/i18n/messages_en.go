package i18n

var messagesEN = map[string]string{
	"success": "success",

	"error.internal":               "An internal error occurred. Please try again.",
	"error.invalid_request":        "Invalid request.",
	"error.unauthorized":           "Authentication required.",
	"error.forbidden":              "You do not have permission for this operation.",
	"error.not_found":              "Resource not found.",
	"error.auth_header_missing":    "Missing authorization header.",
	"error.auth_header_invalid":    "Invalid authorization header.",
	"error.token_invalid":          "Invalid or expired token.",
	"error.token_revoked":          "Token revoked. Please sign in again.",
	"error.jwt_secret_missing":     "Authentication service is not configured.",
	"error.user_disabled":          "This account is disabled.",
	"error.user_id_invalid":        "Invalid user identifier.",
	"error.user_id_type_invalid":   "User identifier has an invalid type.",
	"error.rate_limited":           "Too many attempts. Retry in %d seconds.",
	"error.rate_limit_unavailable": "Rate limiting service is unavailable.",
	"error.login_too_many":         "Too many login attempts. Retry in %d seconds.",

	"error.email_exists":        "An account with this email already exists.",
	"error.email_invalid":       "Invalid email address.",
	"error.username_exists":     "This username is already taken.",
	"error.username_invalid":    "Username must be 3-30 characters: lowercase letters, digits, dots or underscores.",
	"error.invalid_credentials": "Incorrect email or password.",
	"error.password_too_short":  "Password must be at least 8 characters.",
	"error.user_type_invalid":   "Account type must be brand or influencer.",
	"error.user_not_found":      "User not found.",
	"error.not_influencer":      "Only influencer accounts can perform this operation.",
	"error.not_brand":           "Only brand accounts can perform this operation.",

	"error.profile_not_found": "Influencer profile not found.",
	"error.profile_exists":    "An influencer profile already exists for this account.",
	"error.profile_required":  "An influencer profile is required to apply.",

	"error.collab_not_found":      "Collaboration not found.",
	"error.not_collab_owner":      "Only the brand that created the collaboration can do this.",
	"error.not_participant":       "You are not part of this collaboration.",
	"error.collab_type_invalid":   "Invalid collaboration type.",
	"error.collab_terminal":       "Collaboration is in a terminal state and can no longer change.",
	"error.collab_status_invalid": "Invalid collaboration status transition.",
	"error.collab_not_editable":   "Collaboration can no longer be edited.",
	"error.collab_not_paid":       "This operation is only available for paid collaborations.",
	"error.collab_update_failed":  "Collaboration update failed.",
	"error.budget_invalid":        "Invalid budget range.",

	"error.application_not_found":      "Application not found.",
	"error.application_exists":         "You already applied to this collaboration.",
	"error.application_status_invalid": "Invalid application status.",
	"error.application_not_pending":    "Application has already been decided.",
	"error.application_not_accepted":   "Application has not been accepted.",
	"error.collab_not_open":            "Collaboration is no longer accepting applications.",

	"error.escrow_not_found":        "Escrow account not found.",
	"error.escrow_exists":           "An escrow account already exists for this collaboration.",
	"error.escrow_not_required":     "This collaboration does not use escrow.",
	"error.escrow_status_invalid":   "Invalid escrow status for this operation.",
	"error.escrow_not_secured":      "Funds have not been secured in escrow yet.",
	"error.escrow_amount_missing":   "Collaboration has no budget defined.",
	"error.payment_provider_failed": "The payment provider could not complete the operation. Please try again.",
	"error.amount_invalid":          "Invalid amount.",

	"error.cancellation_not_found":          "Cancellation request not found.",
	"error.cancellation_exists":             "A cancellation request is already pending for this collaboration.",
	"error.cancellation_not_allowed":        "Cancellation is not possible in the current state.",
	"error.cancellation_window_closed":      "Collaboration is in its confirmation window. Cancellation is no longer possible; open a dispute if there is a problem.",
	"error.cancellation_resolution_invalid": "Invalid cancellation resolution.",
	"error.cancellation_status_invalid":     "Cancellation request can no longer be processed.",

	"error.dispute_not_found":          "Dispute not found.",
	"error.dispute_exists":             "A dispute is already open for this collaboration.",
	"error.dispute_window_closed":      "A dispute can only be opened during the delivery confirmation window.",
	"error.dispute_resolution_invalid": "Invalid dispute resolution.",
	"error.dispute_status_invalid":     "Dispute can no longer be processed.",
	"error.dispute_split_invalid":      "Split amounts do not cover the escrow total.",

	"error.thread_locked":      "The conversation is locked while the dispute is open.",
	"error.messaging_not_open": "Messaging opens after an application is accepted.",
	"error.message_empty":      "Message cannot be empty.",

	"error.review_not_found":    "Review not found.",
	"error.review_exists":       "You already submitted a review for this collaboration.",
	"error.review_not_eligible": "Reviews can only be submitted after the collaboration is completed.",
	"error.rating_invalid":      "Rating must be between 1 and 5.",

	"error.commission_rate_invalid": "Commission rate must be between 0 and 100.",
	"error.setting_update_failed":   "Settings update failed.",
}
