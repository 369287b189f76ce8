package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is invalid.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrTransactionNameRequired is returned when the name is empty.
	ErrTransactionNameRequired = errors.New("transaction name is required")

	// ErrTransactionNameTooLong is returned when the name exceeds the maximum length.
	ErrTransactionNameTooLong = errors.New("name too long")

	// ErrTransactionCategoryTooLong is returned when the category label exceeds the maximum length.
	ErrTransactionCategoryTooLong = errors.New("category too long")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrInvalidRecurringFrequency is returned when the recurring frequency is unknown.
	ErrInvalidRecurringFrequency = errors.New("invalid recurring frequency")

	// ErrInvalidAvatar is returned when the avatar path is outside the uploads directory.
	ErrInvalidAvatar = errors.New("invalid avatar path")

	// ErrSelfParentedTransaction is returned when a transaction names itself as its parent.
	ErrSelfParentedTransaction = errors.New("transaction cannot be its own parent")

	// ErrInvalidDateRange is returned when an analytics date range is unknown.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidTransactionSort is returned when the sort field is not supported.
	ErrInvalidTransactionSort = errors.New("invalid sort field")
)

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType    ErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount  ErrorCode = "TXN-010002"
	ErrCodeTransactionNameRequired   ErrorCode = "TXN-010003"
	ErrCodeTransactionNameTooLong    ErrorCode = "TXN-010004"
	ErrCodeTransactionCategoryLong   ErrorCode = "TXN-010005"
	ErrCodeDescriptionTooLong        ErrorCode = "TXN-010006"
	ErrCodeInvalidRecurringFrequency ErrorCode = "TXN-010007"
	ErrCodeInvalidAvatar             ErrorCode = "TXN-010008"
	ErrCodeSelfParentedTransaction   ErrorCode = "TXN-010009"
	ErrCodeInvalidDateRange          ErrorCode = "TXN-010010"
	ErrCodeMissingTransactionFields  ErrorCode = "TXN-010011"
	ErrCodeInvalidTransactionSort    ErrorCode = "TXN-010012"
	ErrCodeInvalidTransactionDate    ErrorCode = "TXN-010013"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound ErrorCode = "TXN-020001"
	ErrCodeTxnBudgetNotFound   ErrorCode = "TXN-020002"
	ErrCodeTxnPotNotFound      ErrorCode = "TXN-020003"
)
