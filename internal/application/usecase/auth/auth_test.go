package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/application/adapter/adaptertest"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("too short")
	}
	return nil
}

type fakeTokenService struct{}

func (fakeTokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, _ string) (string, time.Time, error) {
	return "token-" + userID.String(), testNow.Add(time.Hour), nil
}

func (fakeTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return nil, errors.New("not used")
}

func TestRegisterUserUseCase_Execute(t *testing.T) {
	users := adaptertest.NewUserRepository()
	uc := NewRegisterUserUseCase(users, fakePasswordService{}, fakeTokenService{}, adaptertest.NewClock(testNow))

	output, err := uc.Execute(context.Background(), RegisterUserInput{Email: " Ana@Example.COM ", Name: "Ana", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.User.Email != "ana@example.com" {
		t.Errorf("expected normalized email, got %s", output.User.Email)
	}
	if output.User.PasswordHash != "hashed:correct-horse" {
		t.Errorf("expected password to be hashed")
	}
	if output.AccessToken != "token-"+output.User.ID.String() {
		t.Errorf("unexpected token %s", output.AccessToken)
	}

	tests := []struct {
		name  string
		input RegisterUserInput
		kind  domainerror.Kind
	}{
		{name: "duplicate email", input: RegisterUserInput{Email: "ana@example.com", Password: "correct-horse"}, kind: domainerror.KindConflict},
		{name: "invalid email", input: RegisterUserInput{Email: "ana", Password: "correct-horse"}, kind: domainerror.KindValidation},
		{name: "weak password", input: RegisterUserInput{Email: "bo@example.com", Password: "short"}, kind: domainerror.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			if !domainerror.IsKind(err, tt.kind) {
				t.Errorf("expected %s, got %v", tt.kind, err)
			}
		})
	}
}

func TestLoginUserUseCase_Execute(t *testing.T) {
	users := adaptertest.NewUserRepository()
	register := NewRegisterUserUseCase(users, fakePasswordService{}, fakeTokenService{}, adaptertest.NewClock(testNow))
	if _, err := register.Execute(context.Background(), RegisterUserInput{Email: "ana@example.com", Password: "correct-horse"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc := NewLoginUserUseCase(users, fakePasswordService{}, fakeTokenService{})

	output, err := uc.Execute(context.Background(), LoginUserInput{Email: "ANA@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.AccessToken == "" || !output.ExpiresAt.Equal(testNow.Add(time.Hour)) {
		t.Errorf("unexpected output %+v", output)
	}

	for _, input := range []LoginUserInput{
		{Email: "ana@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "correct-horse"},
	} {
		_, err := uc.Execute(context.Background(), input)
		var domainErr *domainerror.Error
		if !errors.As(err, &domainErr) || domainErr.Code != domainerror.ErrCodeInvalidCredentials {
			t.Errorf("expected invalid credentials for %s, got %v", input.Email, err)
		}
	}
}
