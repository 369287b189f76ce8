package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	budgetuc "github.com/personal-finance/backend/internal/application/usecase/budget"
	categoryuc "github.com/personal-finance/backend/internal/application/usecase/category"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID             uuid.UUID
	Name               string
	Amount             decimal.Decimal
	Type               entity.TransactionType
	Category           string
	Description        string
	Date               *time.Time // Optional, defaults to now
	Recurring          bool
	RecurringFrequency entity.RecurringFrequency // Optional, defaults to monthly
	Avatar             string
	BudgetID           *uuid.UUID
	PotID              *uuid.UUID
	Tags               []string
}

// TransactionOutput represents a transaction in use case outputs.
type TransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase records a transaction in the ledger.
// Expenses linked to a budget pass the limit guard before anything is written.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	potRepo         adapter.PotRepository
	ensureCategory  *categoryuc.EnsureCategoryUseCase
	limitGuard      *budgetuc.CheckBudgetLimitUseCase
	budgetAlert     *BudgetAlert
	clock           adapter.Clock
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	potRepo adapter.PotRepository,
	ensureCategory *categoryuc.EnsureCategoryUseCase,
	limitGuard *budgetuc.CheckBudgetLimitUseCase,
	budgetAlert *BudgetAlert,
	clock adapter.Clock,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		potRepo:         potRepo,
		ensureCategory:  ensureCategory,
		limitGuard:      limitGuard,
		budgetAlert:     budgetAlert,
		clock:           clock,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*TransactionOutput, error) {
	// Validate fields
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}
	category, err := normalizeCategory(input.Category)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	frequency := entity.RecurringFrequencyMonthly
	if input.RecurringFrequency != "" {
		frequency = input.RecurringFrequency
	}
	if err := validateFrequency(frequency); err != nil {
		return nil, err
	}
	if err := validateAvatar(input.Avatar); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}

	// Resolve category, creating it on first use
	if _, err := uc.ensureCategory.Execute(ctx, category); err != nil {
		slog.Warn("Failed to ensure category", "category", category, "error", err)
	}

	// Verify links belong to the owner
	if err := verifyLinks(ctx, uc.budgetRepo, uc.potRepo, input.UserID, input.BudgetID, input.PotID); err != nil {
		return nil, err
	}

	// Run the limit guard
	if input.Type == entity.TransactionTypeExpense && input.BudgetID != nil {
		check, err := uc.limitGuard.Execute(ctx, budgetuc.CheckBudgetLimitInput{
			UserID:   input.UserID,
			BudgetID: *input.BudgetID,
			Amount:   input.Amount,
		})
		if err != nil {
			return nil, err
		}
		if !check.WithinLimit {
			return nil, budgetuc.LimitExceededError(check)
		}
	}

	transaction := entity.NewTransaction(input.UserID, name, input.Amount, input.Type, category, date, now)
	transaction.Description = input.Description
	transaction.Recurring = input.Recurring
	transaction.RecurringFrequency = frequency
	transaction.Avatar = input.Avatar
	transaction.BudgetID = input.BudgetID
	transaction.PotID = input.PotID
	transaction.Tags = normalizeTags(input.Tags)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	slog.Info("Transaction created",
		"transaction_id", transaction.ID,
		"user_id", transaction.UserID,
		"type", transaction.Type)

	uc.budgetAlert.Check(ctx, transaction)

	return &TransactionOutput{
		Transaction: transaction,
	}, nil
}

// verifyLinks checks that the linked budget and pot exist for the owner.
func verifyLinks(
	ctx context.Context,
	budgetRepo adapter.BudgetRepository,
	potRepo adapter.PotRepository,
	userID uuid.UUID,
	budgetID, potID *uuid.UUID,
) error {
	if budgetID != nil {
		if _, err := budgetRepo.FindByIDAndUser(ctx, *budgetID, userID); err != nil {
			if errors.Is(err, domainerror.ErrBudgetNotFound) {
				return domainerror.NewNotFound(
					domainerror.ErrCodeTxnBudgetNotFound,
					"Budget not found or unauthorized",
					domainerror.ErrBudgetNotFound,
				)
			}
			return fmt.Errorf("failed to find budget: %w", err)
		}
	}

	if potID != nil {
		if _, err := potRepo.FindByIDAndUser(ctx, *potID, userID); err != nil {
			if errors.Is(err, domainerror.ErrPotNotFound) {
				return domainerror.NewNotFound(
					domainerror.ErrCodeTxnPotNotFound,
					"Pot not found or unauthorized",
					domainerror.ErrPotNotFound,
				)
			}
			return fmt.Errorf("failed to find pot: %w", err)
		}
	}

	return nil
}
