// Package recurring contains the use cases that materialize recurring transactions.
package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// AdvanceRecurringInput identifies the recurring transaction to advance.
type AdvanceRecurringInput struct {
	TransactionID uuid.UUID
}

// AdvanceRecurringOutput holds the generated instance, or nil when nothing was due.
type AdvanceRecurringOutput struct {
	Transaction *entity.Transaction
}

// AdvanceRecurringUseCase generates the next occurrence of a recurring transaction.
// Generated instances link to the row they were advanced from, so lineage forms a chain.
// They are written directly and never pass the limit guard or budget alert.
type AdvanceRecurringUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewAdvanceRecurringUseCase creates a new AdvanceRecurringUseCase instance.
func NewAdvanceRecurringUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *AdvanceRecurringUseCase {
	return &AdvanceRecurringUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute advances the source once. It returns an empty output when the source is
// missing, not recurring, deleted, not yet due, or already advanced to its next date.
func (uc *AdvanceRecurringUseCase) Execute(ctx context.Context, input AdvanceRecurringInput) (*AdvanceRecurringOutput, error) {
	source, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return &AdvanceRecurringOutput{}, nil
		}
		return nil, fmt.Errorf("failed to load recurring transaction: %w", err)
	}

	if !source.Recurring || source.IsDeleted {
		return &AdvanceRecurringOutput{}, nil
	}

	if source.ParentTransactionID != nil && *source.ParentTransactionID == source.ID {
		return nil, domainerror.NewValidation(
			domainerror.ErrCodeSelfParentedTransaction,
			"transaction cannot be its own parent",
			domainerror.ErrSelfParentedTransaction,
		)
	}

	nextDate, err := entity.AddInterval(source.Date, source.RecurringFrequency)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if nextDate.After(now) {
		return &AdvanceRecurringOutput{}, nil
	}

	// At most one instance per due occurrence, across runs and restarts
	exists, err := uc.transactionRepo.ExistsChildOn(ctx, source.ID, nextDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing occurrence: %w", err)
	}
	if exists {
		return &AdvanceRecurringOutput{}, nil
	}

	instance := source.CloneAt(nextDate, now)

	if err := uc.transactionRepo.Create(ctx, instance); err != nil {
		return nil, fmt.Errorf("failed to create recurring instance: %w", err)
	}

	slog.Info("Recurring instance created",
		"source_id", source.ID,
		"transaction_id", instance.ID,
		"date", nextDate.Format("2006-01-02"))

	return &AdvanceRecurringOutput{
		Transaction: instance,
	}, nil
}
