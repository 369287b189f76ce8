package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// GetBudgetInput represents the input for getting a budget.
type GetBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// GetBudgetOutput represents the output of getting a budget.
type GetBudgetOutput struct {
	Budget *entity.Budget
}

// GetBudgetUseCase handles getting a budget by ID.
type GetBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(budgetRepo adapter.BudgetRepository) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget retrieval.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByIDAndUser(ctx, input.BudgetID, input.UserID)
	if err != nil {
		return nil, findBudgetError(err)
	}

	return &GetBudgetOutput{
		Budget: budget,
	}, nil
}

// GetBudgetByCategoryInput represents the input for getting a budget by its category label.
type GetBudgetByCategoryInput struct {
	UserID   uuid.UUID
	Category string
}

// GetBudgetByCategoryUseCase handles getting the owner's budget for a category.
type GetBudgetByCategoryUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewGetBudgetByCategoryUseCase creates a new GetBudgetByCategoryUseCase instance.
func NewGetBudgetByCategoryUseCase(budgetRepo adapter.BudgetRepository) *GetBudgetByCategoryUseCase {
	return &GetBudgetByCategoryUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget retrieval by category.
func (uc *GetBudgetByCategoryUseCase) Execute(ctx context.Context, input GetBudgetByCategoryInput) (*GetBudgetOutput, error) {
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}

	budget, err := uc.budgetRepo.FindByUserAndCategory(ctx, input.UserID, category)
	if err != nil {
		return nil, findBudgetError(err)
	}

	return &GetBudgetOutput{
		Budget: budget,
	}, nil
}
