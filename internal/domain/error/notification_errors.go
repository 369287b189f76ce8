package error

import "errors"

// ErrNotificationNotFound is returned when a notification does not exist for the owner.
var ErrNotificationNotFound = errors.New("notification not found")

const (
	ErrCodeInvalidNotificationType     ErrorCode = "NTF-010001"
	ErrCodeNotificationMessageRequired ErrorCode = "NTF-010002"
	ErrCodeNotificationNotFound        ErrorCode = "NTF-020001"
)
