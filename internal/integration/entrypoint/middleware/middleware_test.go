package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/adapter"
)

type stubTokenService struct {
	claims *adapter.TokenClaims
}

func (s *stubTokenService) GenerateAccessToken(_ context.Context, _ uuid.UUID, _ string) (string, time.Time, error) {
	return "", time.Time{}, errors.New("not implemented")
}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "valid-token" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	userID := uuid.New()
	tokens := &stubTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "owner@example.com"}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer valid-token", wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer valid-token", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser uuid.UUID
			router := gin.New()
			router.GET("/me", NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
				gotUser, _ = GetUserIDFromContext(c)
				email, _ := GetUserEmailFromContext(c)
				c.String(http.StatusOK, email)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotUser != userID {
					t.Errorf("user id = %s, want %s", gotUser, userID)
				}
				if rec.Body.String() != "owner@example.com" {
					t.Errorf("email = %q, want owner@example.com", rec.Body.String())
				}
			}
		})
	}
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if _, ok := GetUserIDFromContext(c); ok {
		t.Error("expected no user id on an unauthenticated context")
	}

	c.Set(string(UserIDKey), "not-a-uuid")
	if _, ok := GetUserIDFromContext(c); ok {
		t.Error("expected a non-uuid value to be rejected")
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiterWithConfig(2, time.Minute)
	limiter.now = func() time.Time { return now }

	router := gin.New()
	router.GET("/limited", limiter.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	if rec := do(); rec.Code != http.StatusOK || rec.Header().Get("X-RateLimit-Remaining") != "1" {
		t.Fatalf("first request: status %d, remaining %q", rec.Code, rec.Header().Get("X-RateLimit-Remaining"))
	}
	if rec := do(); rec.Code != http.StatusOK || rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("second request: status %d, remaining %q", rec.Code, rec.Header().Get("X-RateLimit-Remaining"))
	}

	rec := do()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
	}

	now = now.Add(time.Minute)
	if rec := do(); rec.Code != http.StatusOK {
		t.Errorf("after window: status = %d, want 200", rec.Code)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiterWithConfig(0, 0)
	limiter.now = func() time.Time { return now }

	if limiter.maxRequests != DefaultMaxRequests || limiter.window != DefaultWindow {
		t.Fatalf("defaults not applied: %d / %s", limiter.maxRequests, limiter.window)
	}

	limiter.allow("a")
	now = now.Add(DefaultWindow)
	limiter.allow("b")
	limiter.Cleanup()

	if _, ok := limiter.entries["a"]; ok {
		t.Error("expired entry was not removed")
	}
	if _, ok := limiter.entries["b"]; !ok {
		t.Error("live entry was removed")
	}

	limiter.Reset()
	if len(limiter.entries) != 0 {
		t.Errorf("entries after reset = %d, want 0", len(limiter.entries))
	}
}
