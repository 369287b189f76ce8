package error

import "errors"

// Authentication domain errors.
var (
	// ErrInvalidCredentials is returned when email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailAlreadyExists is returned when registering an email that is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidEmail is returned when the email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword is returned when the password does not meet minimum requirements.
	ErrWeakPassword = errors.New("password does not meet requirements")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidEmail      ErrorCode = "AUTH-010001"
	ErrCodeWeakPassword      ErrorCode = "AUTH-010002"
	ErrCodeMissingAuthFields ErrorCode = "AUTH-010003"

	// Authentication errors (02XXXX)
	ErrCodeInvalidCredentials ErrorCode = "AUTH-020001"
	ErrCodeMissingToken       ErrorCode = "AUTH-020002"
	ErrCodeInvalidToken       ErrorCode = "AUTH-020003"

	// State errors (03XXXX)
	ErrCodeEmailExists ErrorCode = "AUTH-030001"
	ErrCodeRateLimited ErrorCode = "AUTH-030002"
)
