package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget does not exist for the owner.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetCategoryExists is returned when the owner already has a budget for the category.
	ErrBudgetCategoryExists = errors.New("budget already exists for category")

	// ErrInvalidBudgetAmount is returned when the budget amount is negative.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrInvalidBudgetPeriod is returned when the period is not monthly, quarterly or yearly.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrInvalidBudgetTheme is returned when the theme is not a hex colour.
	ErrInvalidBudgetTheme = errors.New("invalid budget theme")

	// ErrBudgetCategoryRequired is returned when the category label is empty.
	ErrBudgetCategoryRequired = errors.New("budget category is required")

	// ErrBudgetLimitExceeded is returned when an expense would push spending past the budget amount.
	ErrBudgetLimitExceeded = errors.New("transaction would exceed budget limit")

	// ErrInvalidThreshold is returned when a near-limit threshold is out of range.
	ErrInvalidThreshold = errors.New("invalid threshold")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount    ErrorCode = "BUD-010001"
	ErrCodeInvalidBudgetPeriod    ErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetTheme     ErrorCode = "BUD-010003"
	ErrCodeBudgetCategoryRequired ErrorCode = "BUD-010004"
	ErrCodeMissingBudgetFields    ErrorCode = "BUD-010005"
	ErrCodeInvalidThreshold       ErrorCode = "BUD-010006"
	ErrCodeInvalidBudgetSort      ErrorCode = "BUD-010007"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound ErrorCode = "BUD-020001"

	// State errors (03XXXX)
	ErrCodeBudgetCategoryExists ErrorCode = "BUD-030001"
	ErrCodeBudgetLimitExceeded  ErrorCode = "BUD-030002"
)
