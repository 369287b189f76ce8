package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/personal-finance/backend/internal/application/adapter"
)

// ProcessDueRecurringOutput counts the outcome of one run.
type ProcessDueRecurringOutput struct {
	Scanned int
	Created int
	Skipped int
	Failed  int
}

// ProcessDueRecurringUseCase advances every due recurring transaction once.
// A failure on one item is logged and counted; the remaining items still run.
type ProcessDueRecurringUseCase struct {
	transactionRepo adapter.TransactionRepository
	advancer        *AdvanceRecurringUseCase
	clock           adapter.Clock
}

// NewProcessDueRecurringUseCase creates a new ProcessDueRecurringUseCase instance.
func NewProcessDueRecurringUseCase(
	transactionRepo adapter.TransactionRepository,
	advancer *AdvanceRecurringUseCase,
	clock adapter.Clock,
) *ProcessDueRecurringUseCase {
	return &ProcessDueRecurringUseCase{
		transactionRepo: transactionRepo,
		advancer:        advancer,
		clock:           clock,
	}
}

// Execute scans live recurring transactions dated up to today and advances each one.
// Items are processed sequentially in date order.
func (uc *ProcessDueRecurringUseCase) Execute(ctx context.Context) (*ProcessDueRecurringOutput, error) {
	now := uc.clock.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	due, err := uc.transactionRepo.FindDueRecurring(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to find due recurring transactions: %w", err)
	}

	output := &ProcessDueRecurringOutput{Scanned: len(due)}
	for _, source := range due {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		created, err := uc.advanceOne(ctx, AdvanceRecurringInput{TransactionID: source.ID})
		switch {
		case err != nil:
			output.Failed++
			slog.Error("Failed to advance recurring transaction",
				"transaction_id", source.ID,
				"user_id", source.UserID,
				"error", err)
		case created:
			output.Created++
		default:
			output.Skipped++
		}
	}

	return output, nil
}

// advanceOne runs the advancer for one item, turning a panic into an error.
func (uc *ProcessDueRecurringUseCase) advanceOne(ctx context.Context, input AdvanceRecurringInput) (created bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while advancing %s: %v", input.TransactionID, r)
		}
	}()

	output, err := uc.advancer.Execute(ctx, input)
	if err != nil {
		return false, err
	}
	return output.Transaction != nil, nil
}
