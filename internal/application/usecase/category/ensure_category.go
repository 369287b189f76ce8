package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// EnsureCategoryUseCase resolves a category label, creating it on first use.
type EnsureCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewEnsureCategoryUseCase creates a new EnsureCategoryUseCase instance.
func NewEnsureCategoryUseCase(categoryRepo adapter.CategoryRepository, clock adapter.Clock) *EnsureCategoryUseCase {
	return &EnsureCategoryUseCase{
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute creates an active category named name unless one already exists.
// It reports whether a category was created.
func (uc *EnsureCategoryUseCase) Execute(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	exists, err := uc.categoryRepo.ExistsByName(ctx, name, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	if exists {
		return false, nil
	}

	category := entity.NewCategory(name, "", "", entity.DefaultCategoryTheme, uc.clock.Now())
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return false, fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("Category created on first use", "category", name)
	return true, nil
}
