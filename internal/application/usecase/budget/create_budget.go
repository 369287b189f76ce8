package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID    uuid.UUID
	Category  string
	Amount    decimal.Decimal
	Theme     *string              // Optional, defaults to #000000
	Period    *entity.BudgetPeriod // Optional, defaults to monthly
	StartDate *time.Time           // Optional, defaults to now
	IsActive  *bool                // Optional, defaults to true
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	clock      adapter.Clock
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo: budgetRepo,
		clock:      clock,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}

	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	// Apply defaults
	theme := entity.DefaultBudgetTheme
	if input.Theme != nil {
		theme = *input.Theme
	}
	if err := validateTheme(theme); err != nil {
		return nil, err
	}

	period := entity.BudgetPeriodMonthly
	if input.Period != nil {
		period = *input.Period
	}
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	startDate := now
	if input.StartDate != nil {
		startDate = *input.StartDate
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	// One budget per (owner, category)
	exists, err := uc.budgetRepo.ExistsByUserAndCategory(ctx, input.UserID, category, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check budget existence: %w", err)
	}
	if exists {
		return nil, categoryConflictError()
	}

	budget := entity.NewBudget(input.UserID, category, input.Amount, theme, period, startDate, isActive, now)

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{
		Budget: budget,
	}, nil
}
