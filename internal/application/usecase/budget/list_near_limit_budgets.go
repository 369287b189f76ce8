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

// ListNearLimitBudgetsInput represents the input for the near-limit listing.
type ListNearLimitBudgetsInput struct {
	UserID    uuid.UUID
	Threshold *float64 // Percentage, defaults to the configured alert threshold
}

// ListNearLimitBudgetsOutput represents the output of the near-limit listing.
type ListNearLimitBudgetsOutput struct {
	Budgets   []*entity.BudgetUtilization
	Threshold decimal.Decimal
}

// ListNearLimitBudgetsUseCase lists active budgets whose utilization reached a threshold.
type ListNearLimitBudgetsUseCase struct {
	budgetRepo       adapter.BudgetRepository
	calculator       *UtilizationCalculator
	defaultThreshold float64
}

// NewListNearLimitBudgetsUseCase creates a new ListNearLimitBudgetsUseCase instance.
func NewListNearLimitBudgetsUseCase(budgetRepo adapter.BudgetRepository, calculator *UtilizationCalculator, defaultThreshold float64) *ListNearLimitBudgetsUseCase {
	return &ListNearLimitBudgetsUseCase{
		budgetRepo:       budgetRepo,
		calculator:       calculator,
		defaultThreshold: defaultThreshold,
	}
}

// Execute performs the near-limit listing.
func (uc *ListNearLimitBudgetsUseCase) Execute(ctx context.Context, input ListNearLimitBudgetsInput) (*ListNearLimitBudgetsOutput, error) {
	threshold := uc.defaultThreshold
	if input.Threshold != nil {
		threshold = *input.Threshold
	}
	if threshold < 0 {
		return nil, domainerror.NewValidation(
			domainerror.ErrCodeInvalidThreshold,
			"threshold must not be negative",
			domainerror.ErrInvalidThreshold,
		)
	}
	limit := decimal.NewFromFloat(threshold)

	budgets, err := uc.budgetRepo.FindActiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active budgets: %w", err)
	}

	nearLimit := make([]*entity.BudgetUtilization, 0)
	for _, budget := range budgets {
		utilization, err := uc.calculator.Calculate(ctx, budget, nil)
		if err != nil {
			return nil, err
		}
		if utilization.PercentageUsed.GreaterThanOrEqual(limit) {
			nearLimit = append(nearLimit, utilization)
		}
	}

	return &ListNearLimitBudgetsOutput{
		Budgets:   nearLimit,
		Threshold: limit,
	}, nil
}
