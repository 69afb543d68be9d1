package notification

import "errors"

// Notification domain errors
var (
	ErrSenderUnavailable = errors.New("notification sender is not configured")
	ErrQuotaExceeded     = errors.New("email quota exceeded")
)
