package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	// Returns domainerror.ErrCategoryNameExists on a unique-name violation.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	// Returns domainerror.ErrCategoryNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// ExistsByName checks whether a category with name exists, ignoring excludeID when set.
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// FindAll retrieves categories ordered by name.
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Category, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error
}
