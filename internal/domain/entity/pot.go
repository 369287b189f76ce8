package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// PotOperation is a balance adjustment direction.
type PotOperation string

const (
	PotOperationAdd      PotOperation = "add"
	PotOperationWithdraw PotOperation = "withdraw"
)

// Pot represents a savings pot with a goal.
type Pot struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	GoalAmount    decimal.Decimal
	CurrentAmount decimal.Decimal // Kept within [0, GoalAmount]
	TargetDate    *time.Time
	Description   string
	Category      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPot creates a new Pot entity with an empty balance.
func NewPot(userID uuid.UUID, name string, goalAmount decimal.Decimal, targetDate *time.Time, description, category string, now time.Time) *Pot {
	return &Pot{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		GoalAmount:    goalAmount,
		CurrentAmount: decimal.Zero,
		TargetDate:    targetDate,
		Description:   description,
		Category:      category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Progress returns the saved percentage of the goal.
func (p *Pot) Progress() decimal.Decimal {
	if !p.GoalAmount.IsPositive() {
		return decimal.Zero
	}
	return p.CurrentAmount.Div(p.GoalAmount).Mul(hundred)
}

// ClampToGoal caps the current amount at the goal.
func (p *Pot) ClampToGoal() {
	if p.CurrentAmount.GreaterThan(p.GoalAmount) {
		p.CurrentAmount = p.GoalAmount
	}
}

// Adjust adds to or withdraws from the pot balance.
// A withdrawal larger than the balance fails and leaves the pot unchanged.
func (p *Pot) Adjust(operation PotOperation, amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidPotAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidPotAmount,
		)
	}

	switch operation {
	case PotOperationAdd:
		p.CurrentAmount = p.CurrentAmount.Add(amount)
		p.ClampToGoal()
	case PotOperationWithdraw:
		if amount.GreaterThan(p.CurrentAmount) {
			return domainerror.New(
				domainerror.KindInsufficientFunds,
				domainerror.ErrCodeInsufficientFunds,
				"insufficient funds in pot",
				domainerror.ErrInsufficientFunds,
			).WithDetails(map[string]any{
				"current_amount": p.CurrentAmount.String(),
				"requested":      amount.String(),
			})
		}
		p.CurrentAmount = p.CurrentAmount.Sub(amount)
	default:
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidPotOperation,
			"operation must be 'add' or 'withdraw'",
			domainerror.ErrInvalidPotOperation,
		)
	}

	p.UpdatedAt = now
	return nil
}
