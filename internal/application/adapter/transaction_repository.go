package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
// Soft-deleted rows are always excluded.
type TransactionFilter struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Categories []string
	Type       *entity.TransactionType
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Search     string // Case-insensitive name match
	BudgetID   *uuid.UUID
	PotID      *uuid.UUID
	Tags       []string // Rows carrying any of the tags
	Recurring  *bool
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// SpendingQuery selects the expenses that count against a budget window.
type SpendingQuery struct {
	UserID    uuid.UUID
	BudgetID  uuid.UUID
	Start     time.Time
	End       time.Time
	ExcludeID *uuid.UUID // Transaction being edited
}

// TransactionTotals represents aggregated totals for an owner.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by ID regardless of owner or deleted state.
	// Returns domainerror.ErrTransactionNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDAndUser retrieves a live transaction owned by userID.
	// Returns domainerror.ErrTransactionNotFound when no row matches.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error)

	// FindDeletedByIDAndUser retrieves a soft-deleted transaction owned by userID.
	// Returns domainerror.ErrTransactionNotFound when no row matches.
	FindDeletedByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination Pagination) (*TransactionListResult, error)

	// FindInRange retrieves the owner's live transactions dated within [start, end].
	FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// FindRecurringByUser retrieves the owner's live recurring transactions.
	FindRecurringByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindDueRecurring retrieves live recurring transactions of every owner dated at or before cutoff.
	FindDueRecurring(ctx context.Context, cutoff time.Time) ([]*entity.Transaction, error)

	// ExistsChildOn checks whether parentID already produced a transaction on day's calendar date.
	ExistsChildOn(ctx context.Context, parentID uuid.UUID, day time.Time) (bool, error)

	// SumExpenses sums live expense amounts matching the query.
	SumExpenses(ctx context.Context, query SpendingQuery) (decimal.Decimal, error)

	// GetTotals sums the owner's live income and expenses.
	GetTotals(ctx context.Context, userID uuid.UUID) (*TransactionTotals, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error
}
