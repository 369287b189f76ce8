package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/adapter"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionUseCase soft-deletes a transaction. Deleted rows stop counting
// against budgets and are never advanced.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the soft delete.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	transaction, err := uc.transactionRepo.FindByIDAndUser(ctx, input.TransactionID, input.UserID)
	if err != nil {
		return findTransactionError(err)
	}

	transaction.SoftDelete(uc.clock.Now())

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return nil
}

// RestoreTransactionInput represents the input for restoring a soft-deleted transaction.
type RestoreTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// RestoreTransactionUseCase clears the deleted flag of a transaction.
type RestoreTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewRestoreTransactionUseCase creates a new RestoreTransactionUseCase instance.
func NewRestoreTransactionUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *RestoreTransactionUseCase {
	return &RestoreTransactionUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the restore.
func (uc *RestoreTransactionUseCase) Execute(ctx context.Context, input RestoreTransactionInput) (*TransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindDeletedByIDAndUser(ctx, input.TransactionID, input.UserID)
	if err != nil {
		return nil, findTransactionError(err)
	}

	transaction.Restore(uc.clock.Now())

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to restore transaction: %w", err)
	}

	return &TransactionOutput{
		Transaction: transaction,
	}, nil
}
