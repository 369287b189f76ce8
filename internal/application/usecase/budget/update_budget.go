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

// UpdateBudgetInput represents the input for budget update. Nil fields are left unchanged.
type UpdateBudgetInput struct {
	BudgetID  uuid.UUID
	UserID    uuid.UUID
	Category  *string
	Amount    *decimal.Decimal
	Theme     *string
	Period    *entity.BudgetPeriod
	StartDate *time.Time
	IsActive  *bool
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	clock      adapter.Clock
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
		clock:      clock,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByIDAndUser(ctx, input.BudgetID, input.UserID)
	if err != nil {
		return nil, findBudgetError(err)
	}

	if input.Category != nil {
		category, err := normalizeCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		if category != budget.Category {
			exists, err := uc.budgetRepo.ExistsByUserAndCategory(ctx, input.UserID, category, &budget.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check budget existence: %w", err)
			}
			if exists {
				return nil, categoryConflictError()
			}
		}
		budget.Category = category
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		budget.Amount = *input.Amount
	}

	if input.Theme != nil {
		if err := validateTheme(*input.Theme); err != nil {
			return nil, err
		}
		budget.Theme = *input.Theme
	}

	if input.Period != nil {
		if err := validatePeriod(*input.Period); err != nil {
			return nil, err
		}
		budget.Period = *input.Period
	}

	if input.StartDate != nil {
		budget.StartDate = *input.StartDate
	}

	if input.IsActive != nil {
		budget.IsActive = *input.IsActive
	}

	budget.UpdatedAt = uc.clock.Now()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &UpdateBudgetOutput{
		Budget: budget,
	}, nil
}
