package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// UtilizationCalculator computes how much of a budget is spent in its current window.
// Results are derived from the store on every call.
type UtilizationCalculator struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewUtilizationCalculator creates a new UtilizationCalculator instance.
func NewUtilizationCalculator(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *UtilizationCalculator {
	return &UtilizationCalculator{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Calculate sums the live expenses linked to budget inside its window.
// excludeID leaves one transaction out of the sum.
func (c *UtilizationCalculator) Calculate(ctx context.Context, budget *entity.Budget, excludeID *uuid.UUID) (*entity.BudgetUtilization, error) {
	window, err := budget.Period.Window(budget.StartDate, c.clock.Now())
	if err != nil {
		return nil, err
	}

	spent, err := c.transactionRepo.SumExpenses(ctx, adapter.SpendingQuery{
		UserID:    budget.UserID,
		BudgetID:  budget.ID,
		Start:     window.Start,
		End:       window.End,
		ExcludeID: excludeID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sum budget spending: %w", err)
	}

	return entity.NewBudgetUtilization(budget, spent, window), nil
}

// GetBudgetUtilizationInput represents the input for computing utilization.
type GetBudgetUtilizationInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// GetBudgetUtilizationOutput represents the output of computing utilization.
type GetBudgetUtilizationOutput struct {
	Utilization *entity.BudgetUtilization
}

// GetBudgetUtilizationUseCase handles the utilization query for one budget.
type GetBudgetUtilizationUseCase struct {
	budgetRepo adapter.BudgetRepository
	calculator *UtilizationCalculator
}

// NewGetBudgetUtilizationUseCase creates a new GetBudgetUtilizationUseCase instance.
func NewGetBudgetUtilizationUseCase(budgetRepo adapter.BudgetRepository, calculator *UtilizationCalculator) *GetBudgetUtilizationUseCase {
	return &GetBudgetUtilizationUseCase{
		budgetRepo: budgetRepo,
		calculator: calculator,
	}
}

// Execute performs the utilization computation.
func (uc *GetBudgetUtilizationUseCase) Execute(ctx context.Context, input GetBudgetUtilizationInput) (*GetBudgetUtilizationOutput, error) {
	budget, err := uc.budgetRepo.FindByIDAndUser(ctx, input.BudgetID, input.UserID)
	if err != nil {
		return nil, findBudgetError(err)
	}

	utilization, err := uc.calculator.Calculate(ctx, budget, nil)
	if err != nil {
		return nil, err
	}

	return &GetBudgetUtilizationOutput{
		Utilization: utilization,
	}, nil
}

// CheckBudgetLimitInput represents a prospective expense against a budget.
type CheckBudgetLimitInput struct {
	UserID               uuid.UUID
	BudgetID             uuid.UUID
	Amount               decimal.Decimal
	ExcludeTransactionID *uuid.UUID // Set when the prospective expense replaces an existing one
}

// CheckBudgetLimitOutput represents the guard decision.
// Spent and Remaining describe the budget before the prospective expense.
type CheckBudgetLimitOutput struct {
	WithinLimit bool
	Budget      *entity.Budget
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
}

// CheckBudgetLimitUseCase decides whether an expense fits the remaining budget.
// It never writes.
type CheckBudgetLimitUseCase struct {
	budgetRepo adapter.BudgetRepository
	calculator *UtilizationCalculator
}

// NewCheckBudgetLimitUseCase creates a new CheckBudgetLimitUseCase instance.
func NewCheckBudgetLimitUseCase(budgetRepo adapter.BudgetRepository, calculator *UtilizationCalculator) *CheckBudgetLimitUseCase {
	return &CheckBudgetLimitUseCase{
		budgetRepo: budgetRepo,
		calculator: calculator,
	}
}

// Execute performs the limit check. An expense that lands exactly on the amount is within the limit.
func (uc *CheckBudgetLimitUseCase) Execute(ctx context.Context, input CheckBudgetLimitInput) (*CheckBudgetLimitOutput, error) {
	if input.Amount.IsNegative() {
		return nil, domainerror.NewValidation(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	budget, err := uc.budgetRepo.FindByIDAndUser(ctx, input.BudgetID, input.UserID)
	if err != nil {
		return nil, findBudgetError(err)
	}

	utilization, err := uc.calculator.Calculate(ctx, budget, input.ExcludeTransactionID)
	if err != nil {
		return nil, err
	}

	return &CheckBudgetLimitOutput{
		WithinLimit: utilization.Spent.Add(input.Amount).LessThanOrEqual(budget.Amount),
		Budget:      budget,
		Spent:       utilization.Spent,
		Remaining:   utilization.Remaining,
	}, nil
}

// LimitExceededError builds the rejection returned when a write would overrun the budget.
func LimitExceededError(check *CheckBudgetLimitOutput) error {
	return domainerror.New(
		domainerror.KindLimitExceeded,
		domainerror.ErrCodeBudgetLimitExceeded,
		"Transaction would exceed budget limit",
		domainerror.ErrBudgetLimitExceeded,
	).WithDetails(map[string]any{
		"budget_id":        check.Budget.ID.String(),
		"category":         check.Budget.Category,
		"budget_amount":    check.Budget.Amount.String(),
		"current_spending": check.Spent.String(),
		"remaining_budget": check.Remaining.String(),
	})
}
