// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/personal-finance/backend/internal/application/adapter"
)

const (
	// DefaultBcryptCost is the cost factor used outside of tests.
	DefaultBcryptCost = 12
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

var (
	errPasswordTooShort = errors.New("password must be at least 8 characters long")
	errPasswordTooLong  = errors.New("password must be at most 72 bytes long")
	errPasswordNoLetter = errors.New("password must contain a letter")
	errPasswordNoDigit  = errors.New("password must contain a digit")
)

// passwordService implements the adapter.PasswordService interface.
type passwordService struct {
	cost int
}

// NewPasswordService creates a password service hashing with the given bcrypt
// cost. Values outside bcrypt's range fall back to DefaultBcryptCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordService{cost: cost}
}

// HashPassword hashes a plain text password using bcrypt.
func (s *passwordService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword compares a plain text password with a hashed password.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePasswordStrength requires 8 to 72 bytes with at least one letter and one digit.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return errPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return errPasswordTooLong
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter {
		return errPasswordNoLetter
	}
	if !hasDigit {
		return errPasswordNoDigit
	}
	return nil
}
