package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name        string
	Description string
	Icon        string
	Theme       string // Optional, defaults to #000000
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository, clock adapter.Clock) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewValidation(
			domainerror.ErrCodeCategoryNameRequired,
			"name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}

	theme := input.Theme
	if theme == "" {
		theme = entity.DefaultCategoryTheme
	}
	if !entity.IsValidTheme(theme) {
		return nil, invalidThemeError()
	}

	exists, err := uc.categoryRepo.ExistsByName(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return nil, nameExistsError()
	}

	category := entity.NewCategory(name, input.Description, input.Icon, theme, uc.clock.Now())

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}

func invalidThemeError() error {
	return domainerror.NewValidation(
		domainerror.ErrCodeInvalidCategoryTheme,
		"theme must be a hex colour such as #1A2B3C",
		domainerror.ErrInvalidCategoryTheme,
	)
}

func nameExistsError() error {
	return domainerror.NewConflict(
		domainerror.ErrCodeCategoryNameExists,
		"a category with this name already exists",
		domainerror.ErrCategoryNameExists,
	)
}
