package error

import "errors"

// Pot domain errors.
var (
	// ErrPotNotFound is returned when a pot does not exist for the owner.
	ErrPotNotFound = errors.New("pot not found")

	// ErrPotNameExists is returned when the owner already has a pot with the same name.
	ErrPotNameExists = errors.New("pot name already exists")

	// ErrPotNameRequired is returned when the pot name is empty.
	ErrPotNameRequired = errors.New("pot name is required")

	// ErrInvalidPotGoal is returned when the goal amount is not positive.
	ErrInvalidPotGoal = errors.New("invalid pot goal amount")

	// ErrInvalidPotAmount is returned when a balance adjustment amount is not positive.
	ErrInvalidPotAmount = errors.New("invalid pot amount")

	// ErrInvalidPotOperation is returned when the operation is neither add nor withdraw.
	ErrInvalidPotOperation = errors.New("invalid pot operation")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the pot balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

const (
	// Validation errors (01XXXX)
	ErrCodePotNameRequired     ErrorCode = "POT-010001"
	ErrCodeInvalidPotGoal      ErrorCode = "POT-010002"
	ErrCodeInvalidPotAmount    ErrorCode = "POT-010003"
	ErrCodeInvalidPotOperation ErrorCode = "POT-010004"
	ErrCodeMissingPotFields    ErrorCode = "POT-010005"

	// Lookup errors (02XXXX)
	ErrCodePotNotFound ErrorCode = "POT-020001"

	// State errors (03XXXX)
	ErrCodePotNameExists     ErrorCode = "POT-030001"
	ErrCodeInsufficientFunds ErrorCode = "POT-030002"
)
