package pot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// GetPotInput represents the input for getting a pot.
type GetPotInput struct {
	UserID uuid.UUID
	PotID  uuid.UUID
}

// GetPotUseCase handles getting a pot by ID.
type GetPotUseCase struct {
	potRepo adapter.PotRepository
}

// NewGetPotUseCase creates a new GetPotUseCase instance.
func NewGetPotUseCase(potRepo adapter.PotRepository) *GetPotUseCase {
	return &GetPotUseCase{
		potRepo: potRepo,
	}
}

// Execute performs the pot retrieval.
func (uc *GetPotUseCase) Execute(ctx context.Context, input GetPotInput) (*PotOutput, error) {
	pot, err := uc.potRepo.FindByIDAndUser(ctx, input.PotID, input.UserID)
	if err != nil {
		return nil, findPotError(err)
	}
	return &PotOutput{Pot: pot}, nil
}

// ListPotsInput represents the input for listing pots.
type ListPotsInput struct {
	UserID uuid.UUID
}

// ListPotsOutput represents the owner's pots, newest first.
type ListPotsOutput struct {
	Pots []*entity.Pot
}

// ListPotsUseCase handles listing pots logic.
type ListPotsUseCase struct {
	potRepo adapter.PotRepository
}

// NewListPotsUseCase creates a new ListPotsUseCase instance.
func NewListPotsUseCase(potRepo adapter.PotRepository) *ListPotsUseCase {
	return &ListPotsUseCase{
		potRepo: potRepo,
	}
}

// Execute performs the pot listing.
func (uc *ListPotsUseCase) Execute(ctx context.Context, input ListPotsInput) (*ListPotsOutput, error) {
	pots, err := uc.potRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pots: %w", err)
	}
	return &ListPotsOutput{Pots: pots}, nil
}

// UpdatePotInput represents the input for pot update. Nil fields are left unchanged.
type UpdatePotInput struct {
	UserID      uuid.UUID
	PotID       uuid.UUID
	Name        *string
	GoalAmount  *decimal.Decimal
	TargetDate  *time.Time
	Description *string
	Category    *string
}

// UpdatePotUseCase handles pot update logic.
type UpdatePotUseCase struct {
	potRepo adapter.PotRepository
	clock   adapter.Clock
}

// NewUpdatePotUseCase creates a new UpdatePotUseCase instance.
func NewUpdatePotUseCase(potRepo adapter.PotRepository, clock adapter.Clock) *UpdatePotUseCase {
	return &UpdatePotUseCase{
		potRepo: potRepo,
		clock:   clock,
	}
}

// Execute performs the pot update. Lowering the goal below the balance clamps the balance.
func (uc *UpdatePotUseCase) Execute(ctx context.Context, input UpdatePotInput) (*PotOutput, error) {
	pot, err := uc.potRepo.FindByIDAndUser(ctx, input.PotID, input.UserID)
	if err != nil {
		return nil, findPotError(err)
	}

	if input.Name != nil {
		name, err := normalizeName(*input.Name)
		if err != nil {
			return nil, err
		}
		if name != pot.Name {
			exists, err := uc.potRepo.ExistsByUserAndName(ctx, input.UserID, name, &pot.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check pot name: %w", err)
			}
			if exists {
				return nil, nameExistsError(name)
			}
		}
		pot.Name = name
	}

	if input.GoalAmount != nil {
		if err := validateGoal(*input.GoalAmount); err != nil {
			return nil, err
		}
		pot.GoalAmount = *input.GoalAmount
		pot.ClampToGoal()
	}

	if input.TargetDate != nil {
		pot.TargetDate = input.TargetDate
	}
	if input.Description != nil {
		pot.Description = *input.Description
	}
	if input.Category != nil {
		pot.Category = *input.Category
	}

	pot.UpdatedAt = uc.clock.Now()

	if err := uc.potRepo.Update(ctx, pot); err != nil {
		return nil, fmt.Errorf("failed to update pot: %w", err)
	}

	return &PotOutput{Pot: pot}, nil
}

// DeletePotInput represents the input for pot deletion.
type DeletePotInput struct {
	UserID uuid.UUID
	PotID  uuid.UUID
}

// DeletePotUseCase handles pot deletion.
type DeletePotUseCase struct {
	potRepo adapter.PotRepository
}

// NewDeletePotUseCase creates a new DeletePotUseCase instance.
func NewDeletePotUseCase(potRepo adapter.PotRepository) *DeletePotUseCase {
	return &DeletePotUseCase{
		potRepo: potRepo,
	}
}

// Execute performs the pot deletion.
func (uc *DeletePotUseCase) Execute(ctx context.Context, input DeletePotInput) error {
	if err := uc.potRepo.Delete(ctx, input.PotID, input.UserID); err != nil {
		return findPotError(err)
	}
	return nil
}

// AdjustPotBalanceInput represents a deposit into or withdrawal from a pot.
type AdjustPotBalanceInput struct {
	UserID    uuid.UUID
	PotID     uuid.UUID
	Amount    decimal.Decimal
	Operation entity.PotOperation
}

// AdjustPotBalanceUseCase moves money in or out of a pot.
type AdjustPotBalanceUseCase struct {
	potRepo adapter.PotRepository
	clock   adapter.Clock
}

// NewAdjustPotBalanceUseCase creates a new AdjustPotBalanceUseCase instance.
func NewAdjustPotBalanceUseCase(potRepo adapter.PotRepository, clock adapter.Clock) *AdjustPotBalanceUseCase {
	return &AdjustPotBalanceUseCase{
		potRepo: potRepo,
		clock:   clock,
	}
}

// Execute applies the adjustment. Deposits clamp at the goal; overdrawing fails without writing.
func (uc *AdjustPotBalanceUseCase) Execute(ctx context.Context, input AdjustPotBalanceInput) (*PotOutput, error) {
	pot, err := uc.potRepo.FindByIDAndUser(ctx, input.PotID, input.UserID)
	if err != nil {
		return nil, findPotError(err)
	}

	if err := pot.Adjust(input.Operation, input.Amount, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.potRepo.Update(ctx, pot); err != nil {
		return nil, fmt.Errorf("failed to update pot balance: %w", err)
	}

	return &PotOutput{Pot: pot}, nil
}
