package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when a category with the same name already exists.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryNameRequired is returned when the category name is empty.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrInvalidCategoryTheme is returned when the theme is not a hex colour.
	ErrInvalidCategoryTheme = errors.New("invalid category theme")
)

const (
	ErrCodeCategoryNameRequired  ErrorCode = "CAT-010001"
	ErrCodeInvalidCategoryTheme  ErrorCode = "CAT-010002"
	ErrCodeMissingCategoryFields ErrorCode = "CAT-010003"
	ErrCodeCategoryNotFound      ErrorCode = "CAT-020001"
	ErrCodeCategoryNameExists    ErrorCode = "CAT-030001"
)
