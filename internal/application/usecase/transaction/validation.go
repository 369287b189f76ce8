// Package transaction contains transaction-related use cases.
package transaction

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

const (
	// MaxNameLength is the maximum allowed length for transaction names.
	MaxNameLength = 100
	// MaxCategoryLength is the maximum allowed length for category labels.
	MaxCategoryLength = 50
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 500
	// AvatarPathPrefix is the only accepted avatar location.
	AvatarPathPrefix = "/uploads/avatars/"
)

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewValidation(
			domainerror.ErrCodeTransactionNameRequired,
			"name is required",
			domainerror.ErrTransactionNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", domainerror.NewValidation(
			domainerror.ErrCodeTransactionNameTooLong,
			fmt.Sprintf("name must not exceed %d characters", MaxNameLength),
			domainerror.ErrTransactionNameTooLong,
		)
	}
	return name, nil
}

func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return "", domainerror.NewValidation(
			domainerror.ErrCodeMissingTransactionFields,
			"category is required",
			nil,
		)
	}
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return "", domainerror.NewValidation(
			domainerror.ErrCodeTransactionCategoryLong,
			fmt.Sprintf("category must not exceed %d characters", MaxCategoryLength),
			domainerror.ErrTransactionCategoryTooLong,
		)
	}
	return category, nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateType(transactionType entity.TransactionType) error {
	if !transactionType.IsValid() {
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return domainerror.NewValidation(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

func validateFrequency(frequency entity.RecurringFrequency) error {
	if !frequency.IsValid() {
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidRecurringFrequency,
			"recurring frequency must be 'daily', 'weekly', 'monthly', or 'yearly'",
			domainerror.ErrInvalidRecurringFrequency,
		)
	}
	return nil
}

func validateAvatar(avatar string) error {
	if avatar != "" && !strings.HasPrefix(avatar, AvatarPathPrefix) {
		return domainerror.NewValidation(
			domainerror.ErrCodeInvalidAvatar,
			fmt.Sprintf("avatar must be stored under %s", AvatarPathPrefix),
			domainerror.ErrInvalidAvatar,
		)
	}
	return nil
}

// normalizeTags trims tags and drops blanks and duplicates, keeping first-seen order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	return result
}

func findTransactionError(err error) error {
	if errors.Is(err, domainerror.ErrTransactionNotFound) {
		return domainerror.NewNotFound(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return fmt.Errorf("failed to find transaction: %w", err)
}
