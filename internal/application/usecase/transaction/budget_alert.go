package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	budgetuc "github.com/personal-finance/backend/internal/application/usecase/budget"
	notificationuc "github.com/personal-finance/backend/internal/application/usecase/notification"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// BudgetAlert warns an owner when an expense pushes a budget to the alert threshold.
// Every qualifying write produces a new warning; nothing is deduplicated.
type BudgetAlert struct {
	budgetRepo adapter.BudgetRepository
	calculator *budgetuc.UtilizationCalculator
	notifier   *notificationuc.NotifyUserUseCase
	threshold  decimal.Decimal
}

// NewBudgetAlert creates a new BudgetAlert. threshold is a percentage.
func NewBudgetAlert(
	budgetRepo adapter.BudgetRepository,
	calculator *budgetuc.UtilizationCalculator,
	notifier *notificationuc.NotifyUserUseCase,
	threshold float64,
) *BudgetAlert {
	return &BudgetAlert{
		budgetRepo: budgetRepo,
		calculator: calculator,
		notifier:   notifier,
		threshold:  decimal.NewFromFloat(threshold),
	}
}

// Check recomputes the utilization of the transaction's budget and notifies the owner
// once it reaches the threshold. It returns the notification sent, if any.
// Failures are logged and never reach the caller.
func (a *BudgetAlert) Check(ctx context.Context, transaction *entity.Transaction) *entity.Notification {
	if !transaction.CountsAgainstBudget() {
		return nil
	}

	logger := slog.With("transaction_id", transaction.ID, "budget_id", *transaction.BudgetID)

	budget, err := a.budgetRepo.FindByIDAndUser(ctx, *transaction.BudgetID, transaction.UserID)
	if err != nil {
		logger.Warn("Budget alert skipped, budget lookup failed", "error", err)
		return nil
	}

	utilization, err := a.calculator.Calculate(ctx, budget, nil)
	if err != nil {
		logger.Warn("Budget alert skipped, utilization failed", "error", err)
		return nil
	}

	if utilization.PercentageUsed.LessThan(a.threshold) {
		return nil
	}

	budgetID := budget.ID
	output, err := a.notifier.Execute(ctx, notificationuc.NotifyUserInput{
		UserID:    budget.UserID,
		Message:   fmt.Sprintf("Budget %s is at %s%% utilization", budget.Category, utilization.PercentageUsed.StringFixed(1)),
		Type:      entity.NotificationTypeWarning,
		Category:  entity.NotificationCategoryBudget,
		RelatedID: &budgetID,
	})
	if err != nil {
		logger.Error("Failed to send budget alert", "error", err)
		return nil
	}

	logger.Info("Budget alert sent", "percentage_used", utilization.PercentageUsed.StringFixed(1))
	return output.Notification
}
