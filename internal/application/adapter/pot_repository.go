package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// PotRepository defines the interface for pot persistence operations.
type PotRepository interface {
	// Create creates a new pot in the database.
	Create(ctx context.Context, pot *entity.Pot) error

	// FindByIDAndUser retrieves a pot owned by userID.
	// Returns domainerror.ErrPotNotFound when no row matches.
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Pot, error)

	// FindByUser retrieves all pots of an owner ordered by creation time.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Pot, error)

	// ExistsByUserAndName checks whether the owner already has a pot with name,
	// ignoring excludeID when set.
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing pot in the database.
	Update(ctx context.Context, pot *entity.Pot) error

	// Delete removes a pot owned by userID.
	// Returns domainerror.ErrPotNotFound when no row matches.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
