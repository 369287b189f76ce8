package adapters

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/personal-finance/backend/internal/domain/entity"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cretpass" {
		t.Fatal("HashPassword() returned the plain text")
	}
	if err := svc.VerifyPassword(hash, "s3cretpass"); err != nil {
		t.Errorf("VerifyPassword() correct password error = %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrongpass1"); err == nil {
		t.Error("VerifyPassword() accepted a wrong password")
	}

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid", password: "abcdefg1"},
		{name: "too short", password: "abc1", wantErr: errPasswordTooShort},
		{name: "too long", password: string(make([]byte, 73)), wantErr: errPasswordTooLong},
		{name: "no digit", password: "abcdefgh", wantErr: errPasswordNoDigit},
		{name: "no letter", password: "12345678", wantErr: errPasswordNoLetter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ValidatePasswordStrength(tt.password); err != tt.wantErr {
				t.Errorf("ValidatePasswordStrength() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	clock := &fixedClock{now: time.Now().UTC().Truncate(time.Second)}
	svc := NewTokenService("test-secret", time.Hour, clock)
	userID := uuid.New()

	token, expiresAt, err := svc.GenerateAccessToken(ctx, userID, "jane@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if !expiresAt.Equal(clock.now.Add(time.Hour)) {
		t.Errorf("expiresAt = %v, want %v", expiresAt, clock.now.Add(time.Hour))
	}

	claims, err := svc.ValidateAccessToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != userID || claims.Email != "jane@example.com" {
		t.Errorf("claims = %+v, want user %s", claims, userID)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour, clock)
		if _, err := other.ValidateAccessToken(ctx, token); err == nil {
			t.Error("ValidateAccessToken() accepted a token signed with another secret")
		}
	})

	t.Run("expired", func(t *testing.T) {
		later := &fixedClock{now: clock.now.Add(2 * time.Hour)}
		expired := NewTokenService("test-secret", time.Hour, later)
		if _, err := expired.ValidateAccessToken(ctx, token); err == nil {
			t.Error("ValidateAccessToken() accepted an expired token")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken(ctx, "not-a-token"); err == nil {
			t.Error("ValidateAccessToken() accepted garbage")
		}
	})
}

func TestRedisNotificationPublisher(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	budgetID := uuid.New()
	notification := entity.NewNotification(uuid.New(), "Budget Groceries is at 85.0% utilization",
		entity.NotificationTypeWarning, entity.NotificationCategoryBudget, &budgetID, time.Now().UTC())

	sub := client.Subscribe(ctx, UserChannel("notifications", notification.UserID.String()))
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe error = %v", err)
	}

	publisher := NewRedisNotificationPublisher(client, "notifications")
	if err := publisher.Publish(ctx, notification); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	msg, err := sub.ReceiveMessage(ctx)
	if err != nil {
		t.Fatalf("ReceiveMessage() error = %v", err)
	}

	var got NotificationMessage
	if err := json.Unmarshal([]byte(msg.Payload), &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got.ID != notification.ID.String() || got.Type != "warning" || got.Category != "budget" {
		t.Errorf("payload = %+v", got)
	}
	if got.RelatedID == nil || *got.RelatedID != budgetID.String() {
		t.Errorf("RelatedID = %v, want %s", got.RelatedID, budgetID)
	}

	t.Run("unreachable redis", func(t *testing.T) {
		mr.Close()
		if err := publisher.Publish(ctx, notification); err == nil {
			t.Error("Publish() should fail when redis is down")
		}
	})
}
