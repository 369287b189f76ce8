package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// UserRepository persists account owners. Emails are stored normalized to
// lower case and every lookup by email is case-insensitive.
type UserRepository interface {
	// Create returns domainerror.ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail returns domainerror.ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID returns domainerror.ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
