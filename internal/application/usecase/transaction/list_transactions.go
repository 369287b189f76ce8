package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

var sortColumns = map[string]string{
	"date":       "date",
	"amount":     "amount",
	"name":       "name",
	"category":   "category",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// GetTransactionInput represents the input for getting a transaction.
type GetTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// GetTransactionUseCase handles getting a live transaction by ID.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction retrieval.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*TransactionOutput, error) {
	transaction, err := uc.transactionRepo.FindByIDAndUser(ctx, input.TransactionID, input.UserID)
	if err != nil {
		return nil, findTransactionError(err)
	}
	return &TransactionOutput{Transaction: transaction}, nil
}

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID     uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Categories []string
	Type       *entity.TransactionType
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Search     string
	BudgetID   *uuid.UUID
	PotID      *uuid.UUID
	Tags       []string
	Recurring  *bool
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing. Deleted transactions are never listed.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, domainerror.NewValidation(
			domainerror.ErrCodeInvalidDateRange,
			"start_date must not be after end_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
	}

	// Build pagination
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	column := "date"
	if input.SortBy != "" {
		var ok bool
		column, ok = sortColumns[input.SortBy]
		if !ok {
			return nil, domainerror.NewValidation(
				domainerror.ErrCodeInvalidTransactionSort,
				fmt.Sprintf("cannot sort transactions by %q", input.SortBy),
				domainerror.ErrInvalidTransactionSort,
			)
		}
	}

	order := adapter.SortDesc
	if input.SortOrder == string(adapter.SortAsc) {
		order = adapter.SortAsc
	}

	filter := adapter.TransactionFilter{
		UserID:     input.UserID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Categories: input.Categories,
		Type:       input.Type,
		MinAmount:  input.MinAmount,
		MaxAmount:  input.MaxAmount,
		Search:     input.Search,
		BudgetID:   input.BudgetID,
		PotID:      input.PotID,
		Tags:       input.Tags,
		Recurring:  input.Recurring,
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.Pagination{
		Page:      page,
		Limit:     limit,
		SortBy:    column,
		SortOrder: order,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: result.Transactions,
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}
