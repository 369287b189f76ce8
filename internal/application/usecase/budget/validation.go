// Package budget contains budget-related use cases.
package budget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// findBudgetError maps a repository lookup failure to the domain error callers see.
func findBudgetError(err error) error {
	if errors.Is(err, domainerror.ErrBudgetNotFound) {
		return domainerror.NewNotFound(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}
	return fmt.Errorf("failed to find budget: %w", err)
}

func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", domainerror.NewValidation(
			domainerror.ErrCodeBudgetCategoryRequired,
			"category is required",
			domainerror.ErrBudgetCategoryRequired,
		)
	}
	return category, nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidBudgetAmount,
			"amount must not be negative",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	return nil
}

func validatePeriod(period entity.BudgetPeriod) error {
	if !period.IsValid() {
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'monthly', 'quarterly', or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}
	return nil
}

func validateTheme(theme string) error {
	if !entity.IsValidTheme(theme) {
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidBudgetTheme,
			"theme must be a hex colour such as #1A2B3C",
			domainerror.ErrInvalidBudgetTheme,
		)
	}
	return nil
}

func categoryConflictError() error {
	return domainerror.NewConflict(
		domainerror.ErrCodeBudgetCategoryExists,
		"a budget already exists for this category",
		domainerror.ErrBudgetCategoryExists,
	)
}
