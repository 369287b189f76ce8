// Package account contains read-only account overview use cases.
package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	budgetuc "github.com/personal-finance/backend/internal/application/usecase/budget"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// potsOverviewSize is the number of pots in the overview breakdown.
const potsOverviewSize = 5

// GetSummaryInput represents the input for the account summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// GetSummaryOutput represents income, expenses and the resulting balance.
type GetSummaryOutput struct {
	CurrentBalance decimal.Decimal
	Income         decimal.Decimal
	Expenses       decimal.Decimal
}

// GetSummaryUseCase computes the owner's balance from live transactions.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	totals, err := uc.transactionRepo.GetTotals(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return &GetSummaryOutput{
		CurrentBalance: totals.IncomeTotal.Sub(totals.ExpenseTotal),
		Income:         totals.IncomeTotal,
		Expenses:       totals.ExpenseTotal,
	}, nil
}

// GetPotsOverviewInput represents the input for the pots overview.
type GetPotsOverviewInput struct {
	UserID uuid.UUID
}

// GetPotsOverviewOutput represents total savings and the newest pots.
type GetPotsOverviewOutput struct {
	TotalSaved decimal.Decimal
	Breakdown  []*entity.Pot
}

// GetPotsOverviewUseCase sums the owner's pot balances.
type GetPotsOverviewUseCase struct {
	potRepo adapter.PotRepository
}

// NewGetPotsOverviewUseCase creates a new GetPotsOverviewUseCase instance.
func NewGetPotsOverviewUseCase(potRepo adapter.PotRepository) *GetPotsOverviewUseCase {
	return &GetPotsOverviewUseCase{
		potRepo: potRepo,
	}
}

// Execute performs the pots overview.
func (uc *GetPotsOverviewUseCase) Execute(ctx context.Context, input GetPotsOverviewInput) (*GetPotsOverviewOutput, error) {
	pots, err := uc.potRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pots: %w", err)
	}

	total := decimal.Zero
	for _, pot := range pots {
		total = total.Add(pot.CurrentAmount)
	}

	breakdown := pots
	if len(breakdown) > potsOverviewSize {
		breakdown = breakdown[:potsOverviewSize]
	}

	return &GetPotsOverviewOutput{
		TotalSaved: total,
		Breakdown:  breakdown,
	}, nil
}

// GetBudgetOverviewInput represents the input for the budget overview.
type GetBudgetOverviewInput struct {
	UserID uuid.UUID
}

// GetBudgetOverviewOutput represents the combined limit and spending of active budgets.
type GetBudgetOverviewOutput struct {
	TotalBudget decimal.Decimal
	AmountSpent decimal.Decimal
	Budgets     []*entity.BudgetUtilization
}

// GetBudgetOverviewUseCase sums active budgets and their spending in the current windows.
type GetBudgetOverviewUseCase struct {
	budgetRepo adapter.BudgetRepository
	calculator *budgetuc.UtilizationCalculator
}

// NewGetBudgetOverviewUseCase creates a new GetBudgetOverviewUseCase instance.
func NewGetBudgetOverviewUseCase(budgetRepo adapter.BudgetRepository, calculator *budgetuc.UtilizationCalculator) *GetBudgetOverviewUseCase {
	return &GetBudgetOverviewUseCase{
		budgetRepo: budgetRepo,
		calculator: calculator,
	}
}

// Execute performs the budget overview.
func (uc *GetBudgetOverviewUseCase) Execute(ctx context.Context, input GetBudgetOverviewInput) (*GetBudgetOverviewOutput, error) {
	budgets, err := uc.budgetRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active budgets: %w", err)
	}

	output := &GetBudgetOverviewOutput{
		TotalBudget: decimal.Zero,
		AmountSpent: decimal.Zero,
		Budgets:     make([]*entity.BudgetUtilization, 0, len(budgets)),
	}
	for _, budget := range budgets {
		utilization, err := uc.calculator.Calculate(ctx, budget, nil)
		if err != nil {
			return nil, err
		}
		output.TotalBudget = output.TotalBudget.Add(budget.Amount)
		output.AmountSpent = output.AmountSpent.Add(utilization.Spent)
		output.Budgets = append(output.Budgets, utilization)
	}

	return output, nil
}
