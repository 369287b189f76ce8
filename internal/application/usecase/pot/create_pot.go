// Package pot contains savings pot use cases.
package pot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// CreatePotInput represents the input for pot creation.
type CreatePotInput struct {
	UserID      uuid.UUID
	Name        string
	GoalAmount  decimal.Decimal
	TargetDate  *time.Time
	Description string
	Category    string
}

// PotOutput represents a pot in use case outputs.
type PotOutput struct {
	Pot *entity.Pot
}

// CreatePotUseCase handles pot creation logic.
type CreatePotUseCase struct {
	potRepo adapter.PotRepository
	clock   adapter.Clock
}

// NewCreatePotUseCase creates a new CreatePotUseCase instance.
func NewCreatePotUseCase(potRepo adapter.PotRepository, clock adapter.Clock) *CreatePotUseCase {
	return &CreatePotUseCase{
		potRepo: potRepo,
		clock:   clock,
	}
}

// Execute performs the pot creation. The balance starts at zero.
func (uc *CreatePotUseCase) Execute(ctx context.Context, input CreatePotInput) (*PotOutput, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	if err := validateGoal(input.GoalAmount); err != nil {
		return nil, err
	}

	exists, err := uc.potRepo.ExistsByUserAndName(ctx, input.UserID, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check pot name: %w", err)
	}
	if exists {
		return nil, nameExistsError(name)
	}

	pot := entity.NewPot(input.UserID, name, input.GoalAmount, input.TargetDate, input.Description, input.Category, uc.clock.Now())

	if err := uc.potRepo.Create(ctx, pot); err != nil {
		return nil, fmt.Errorf("failed to create pot: %w", err)
	}

	return &PotOutput{
		Pot: pot,
	}, nil
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewValidation(
			domainerror.ErrCodePotNameRequired,
			"name is required",
			domainerror.ErrPotNameRequired,
		)
	}
	return name, nil
}

func validateGoal(goal decimal.Decimal) error {
	if !goal.IsPositive() {
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidPotGoal,
			"goal amount must be greater than zero",
			domainerror.ErrInvalidPotGoal,
		)
	}
	return nil
}

func nameExistsError(name string) error {
	return domainerror.NewConflict(
		domainerror.ErrCodePotNameExists,
		fmt.Sprintf("Pot with name '%s' already exists", name),
		domainerror.ErrPotNameExists,
	)
}

func findPotError(err error) error {
	if errors.Is(err, domainerror.ErrPotNotFound) {
		return domainerror.NewNotFound(
			domainerror.ErrCodePotNotFound,
			"pot not found",
			domainerror.ErrPotNotFound,
		)
	}
	return fmt.Errorf("failed to find pot: %w", err)
}
