package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// BudgetFilter defines filter options for listing budgets.
type BudgetFilter struct {
	UserID     uuid.UUID
	Categories []string
	Period     *entity.BudgetPeriod
	IsActive   *bool
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Search     string // Case-insensitive category match
	StartDate  *time.Time
	EndDate    *time.Time
}

// BudgetListResult represents the result of listing budgets.
type BudgetListResult struct {
	Budgets    []*entity.Budget
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByIDAndUser retrieves a budget owned by userID.
	// Returns domainerror.ErrBudgetNotFound when no row matches.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Budget, error)

	// FindByUserAndCategory retrieves the owner's budget for a category label.
	// Returns domainerror.ErrBudgetNotFound when no row matches.
	FindByUserAndCategory(ctx context.Context, userID uuid.UUID, category string) (*entity.Budget, error)

	// ExistsByUserAndCategory checks whether the owner already budgets the category,
	// ignoring excludeID when set.
	ExistsByUserAndCategory(ctx context.Context, userID uuid.UUID, category string, excludeID *uuid.UUID) (bool, error)

	// FindByFilter retrieves budgets based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter BudgetFilter, pagination Pagination) (*BudgetListResult, error)

	// FindActiveByUser retrieves all active budgets of an owner.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget owned by userID.
	// Returns domainerror.ErrBudgetNotFound when no row matches.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
