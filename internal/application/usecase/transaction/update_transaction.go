package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	budgetuc "github.com/personal-finance/backend/internal/application/usecase/budget"
	categoryuc "github.com/personal-finance/backend/internal/application/usecase/category"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// UpdateTransactionInput represents the input for transaction update. Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID      uuid.UUID
	UserID             uuid.UUID
	Name               *string
	Amount             *decimal.Decimal
	Type               *entity.TransactionType
	Category           *string
	Description        *string
	Date               *time.Time
	Recurring          *bool
	RecurringFrequency *entity.RecurringFrequency
	Avatar             *string
	BudgetID           *uuid.UUID
	ClearBudget        bool // Unlinks the budget when set
	PotID              *uuid.UUID
	ClearPot           bool // Unlinks the pot when set
	Tags               []string
	ReplaceTags        bool // Tags replaces the stored tags when set
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	potRepo         adapter.PotRepository
	ensureCategory  *categoryuc.EnsureCategoryUseCase
	limitGuard      *budgetuc.CheckBudgetLimitUseCase
	budgetAlert     *BudgetAlert
	clock           adapter.Clock
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	potRepo adapter.PotRepository,
	ensureCategory *categoryuc.EnsureCategoryUseCase,
	limitGuard *budgetuc.CheckBudgetLimitUseCase,
	budgetAlert *BudgetAlert,
	clock adapter.Clock,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		potRepo:         potRepo,
		ensureCategory:  ensureCategory,
		limitGuard:      limitGuard,
		budgetAlert:     budgetAlert,
		clock:           clock,
	}
}

// Execute performs the transaction update.
// The limit guard runs again only when the amount, type, date or budget link changes;
// the edited transaction's previous amount is excluded from the spent total.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*TransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByIDAndUser(ctx, input.TransactionID, input.UserID)
	if err != nil {
		return nil, findTransactionError(err)
	}

	spendingChanged := false

	if input.Name != nil {
		name, err := normalizeName(*input.Name)
		if err != nil {
			return nil, err
		}
		transaction.Name = name
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		spendingChanged = spendingChanged || !input.Amount.Equal(transaction.Amount)
		transaction.Amount = *input.Amount
	}

	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
		spendingChanged = spendingChanged || *input.Type != transaction.Type
		transaction.Type = *input.Type
	}

	categoryChanged := false
	if input.Category != nil {
		category, err := normalizeCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		categoryChanged = category != transaction.Category
		transaction.Category = category
	}

	if input.Description != nil {
		if err := validateDescription(*input.Description); err != nil {
			return nil, err
		}
		transaction.Description = *input.Description
	}

	if input.Date != nil {
		spendingChanged = spendingChanged || !input.Date.Equal(transaction.Date)
		transaction.Date = *input.Date
	}

	if input.Recurring != nil {
		transaction.Recurring = *input.Recurring
	}

	if input.RecurringFrequency != nil {
		if err := validateFrequency(*input.RecurringFrequency); err != nil {
			return nil, err
		}
		transaction.RecurringFrequency = *input.RecurringFrequency
	}

	if input.Avatar != nil {
		if err := validateAvatar(*input.Avatar); err != nil {
			return nil, err
		}
		transaction.Avatar = *input.Avatar
	}

	// Relink budget and pot
	var newBudgetID, newPotID *uuid.UUID
	switch {
	case input.ClearBudget:
		transaction.BudgetID = nil
	case input.BudgetID != nil:
		spendingChanged = spendingChanged || transaction.BudgetID == nil || *transaction.BudgetID != *input.BudgetID
		transaction.BudgetID = input.BudgetID
		newBudgetID = input.BudgetID
	}
	switch {
	case input.ClearPot:
		transaction.PotID = nil
	case input.PotID != nil:
		transaction.PotID = input.PotID
		newPotID = input.PotID
	}
	if err := verifyLinks(ctx, uc.budgetRepo, uc.potRepo, input.UserID, newBudgetID, newPotID); err != nil {
		return nil, err
	}

	if input.ReplaceTags {
		transaction.Tags = normalizeTags(input.Tags)
	}

	if categoryChanged {
		if _, err := uc.ensureCategory.Execute(ctx, transaction.Category); err != nil {
			slog.Warn("Failed to ensure category", "category", transaction.Category, "error", err)
		}
	}

	// Run the limit guard
	if spendingChanged && transaction.CountsAgainstBudget() {
		excludeID := transaction.ID
		check, err := uc.limitGuard.Execute(ctx, budgetuc.CheckBudgetLimitInput{
			UserID:               input.UserID,
			BudgetID:             *transaction.BudgetID,
			Amount:               transaction.Amount,
			ExcludeTransactionID: &excludeID,
		})
		if err != nil {
			return nil, err
		}
		if !check.WithinLimit {
			return nil, budgetuc.LimitExceededError(check)
		}
	}

	transaction.UpdatedAt = uc.clock.Now()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	uc.budgetAlert.Check(ctx, transaction)

	return &TransactionOutput{
		Transaction: transaction,
	}, nil
}
