// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used in requests and responses.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a date is neither YYYY-MM-DD nor RFC 3339.
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD or RFC 3339")

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// PaginationResponse represents pagination information in list responses.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ParseDate parses a YYYY-MM-DD or RFC 3339 value into a UTC time.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseOptionalDate parses value when it is set.
func ParseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Money renders an amount with two decimal places.
func Money(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}
