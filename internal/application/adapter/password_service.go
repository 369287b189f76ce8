// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and checks user passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)

	// VerifyPassword returns an error when password does not match hashedPassword.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength enforces the registration policy: 8 to 72 bytes,
	// at least one letter and one digit.
	ValidatePasswordStrength(password string) error
}
