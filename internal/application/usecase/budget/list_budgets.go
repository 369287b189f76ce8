package budget

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

// sortColumns maps accepted sort keys to columns.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"amount":     "amount",
	"category":   "category",
	"start_date": "start_date",
}

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID     uuid.UUID
	Categories []string
	Period     *entity.BudgetPeriod
	IsActive   *bool
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
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

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets    []*entity.Budget
	Pagination PaginationOutput
}

// ListBudgetsUseCase handles listing budgets logic.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	if input.Period != nil {
		if err := validatePeriod(*input.Period); err != nil {
			return nil, err
		}
	}

	pagination, err := buildPagination(input.Page, input.Limit, input.SortBy, input.SortOrder)
	if err != nil {
		return nil, err
	}

	filter := adapter.BudgetFilter{
		UserID:     input.UserID,
		Categories: input.Categories,
		Period:     input.Period,
		IsActive:   input.IsActive,
		MinAmount:  input.MinAmount,
		MaxAmount:  input.MaxAmount,
		Search:     input.Search,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	result, err := uc.budgetRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	return &ListBudgetsOutput{
		Budgets: result.Budgets,
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}

func buildPagination(page, limit int, sortBy, sortOrder string) (adapter.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	column := "created_at"
	if sortBy != "" {
		var ok bool
		column, ok = sortColumns[sortBy]
		if !ok {
			return adapter.Pagination{}, domainerror.NewValidation(
				domainerror.ErrCodeInvalidBudgetSort,
				fmt.Sprintf("cannot sort budgets by %q", sortBy),
				nil,
			)
		}
	}

	order := adapter.SortDesc
	if sortOrder == string(adapter.SortAsc) {
		order = adapter.SortAsc
	}

	return adapter.Pagination{
		Page:      page,
		Limit:     limit,
		SortBy:    column,
		SortOrder: order,
	}, nil
}
