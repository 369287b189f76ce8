// Package error defines domain-specific errors for the personal finance backend.
package error

import "errors"

// Kind classifies a domain error so callers can react without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindLimitExceeded
	KindInsufficientFunds
	KindConflict
	KindUnauthorized
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindLimitExceeded:
		return "limit_exceeded"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// ErrorCode identifies a specific error.
// Format: XXX-YYZZZZ where XXX is the domain, YY the category and ZZZZ the specific error.
type ErrorCode string

// Error is the single domain error type, tagged with a Kind.
type Error struct {
	Kind    Kind
	Code    ErrorCode
	Message string
	Err     error
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails attaches structured details to the error and returns it.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// New creates a new Error.
func New(kind Kind, code ErrorCode, message string, err error) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewNotFound creates a KindNotFound error.
func NewNotFound(code ErrorCode, message string, err error) *Error {
	return New(KindNotFound, code, message, err)
}

// NewValidation creates a KindValidation error.
func NewValidation(code ErrorCode, message string, err error) *Error {
	return New(KindValidation, code, message, err)
}

// NewConflict creates a KindConflict error.
func NewConflict(code ErrorCode, message string, err error) *Error {
	return New(KindConflict, code, message, err)
}

// NewUnauthorized creates a KindUnauthorized error.
func NewUnauthorized(code ErrorCode, message string, err error) *Error {
	return New(KindUnauthorized, code, message, err)
}

// KindOf returns the Kind of err, or KindInternal when err is not a domain error.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
