package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter/adaptertest"
	budgetuc "github.com/personal-finance/backend/internal/application/usecase/budget"
	categoryuc "github.com/personal-finance/backend/internal/application/usecase/category"
	notificationuc "github.com/personal-finance/backend/internal/application/usecase/notification"
	potuc "github.com/personal-finance/backend/internal/application/usecase/pot"
	transactionuc "github.com/personal-finance/backend/internal/application/usecase/transaction"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/entrypoint/dto"
	"github.com/personal-finance/backend/internal/integration/entrypoint/middleware"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type apiFixture struct {
	userID        uuid.UUID
	router        *gin.Engine
	budgets       *adaptertest.BudgetRepository
	transactions  *adaptertest.TransactionRepository
	pots          *adaptertest.PotRepository
	notifications *adaptertest.NotificationRepository
}

func newAPIFixture() *apiFixture {
	gin.SetMode(gin.TestMode)

	f := &apiFixture{
		userID:        uuid.New(),
		budgets:       adaptertest.NewBudgetRepository(),
		transactions:  adaptertest.NewTransactionRepository(),
		pots:          adaptertest.NewPotRepository(),
		notifications: adaptertest.NewNotificationRepository(),
	}
	clock := adaptertest.NewClock(testNow)
	categories := adaptertest.NewCategoryRepository()

	calculator := budgetuc.NewUtilizationCalculator(f.transactions, clock)
	limitGuard := budgetuc.NewCheckBudgetLimitUseCase(f.budgets, calculator)
	ensureCategory := categoryuc.NewEnsureCategoryUseCase(categories, clock)
	notifier := notificationuc.NewNotifyUserUseCase(f.notifications, nil, clock)
	alert := transactionuc.NewBudgetAlert(f.budgets, calculator, notifier, 80)

	budgets := NewBudgetController(
		budgetuc.NewCreateBudgetUseCase(f.budgets, clock),
		budgetuc.NewGetBudgetUseCase(f.budgets),
		budgetuc.NewGetBudgetByCategoryUseCase(f.budgets),
		budgetuc.NewListBudgetsUseCase(f.budgets),
		budgetuc.NewListNearLimitBudgetsUseCase(f.budgets, calculator, 80),
		budgetuc.NewUpdateBudgetUseCase(f.budgets, clock),
		budgetuc.NewDeleteBudgetUseCase(f.budgets),
		budgetuc.NewGetBudgetUtilizationUseCase(f.budgets, calculator),
		limitGuard,
	)
	transactions := NewTransactionController(
		transactionuc.NewCreateTransactionUseCase(f.transactions, f.budgets, f.pots, ensureCategory, limitGuard, alert, clock),
		transactionuc.NewGetTransactionUseCase(f.transactions),
		transactionuc.NewListTransactionsUseCase(f.transactions),
		transactionuc.NewUpdateTransactionUseCase(f.transactions, f.budgets, f.pots, ensureCategory, limitGuard, alert, clock),
		transactionuc.NewDeleteTransactionUseCase(f.transactions, clock),
		transactionuc.NewRestoreTransactionUseCase(f.transactions, clock),
		transactionuc.NewGetOverviewUseCase(f.transactions),
		transactionuc.NewGetAnalyticsUseCase(f.transactions, clock),
	)
	pots := NewPotController(
		potuc.NewCreatePotUseCase(f.pots, clock),
		potuc.NewGetPotUseCase(f.pots),
		potuc.NewListPotsUseCase(f.pots),
		potuc.NewUpdatePotUseCase(f.pots, clock),
		potuc.NewDeletePotUseCase(f.pots),
		potuc.NewAdjustPotBalanceUseCase(f.pots, clock),
	)
	notifications := NewNotificationController(
		notificationuc.NewListNotificationsUseCase(f.notifications),
		notificationuc.NewMarkNotificationReadUseCase(f.notifications),
		notificationuc.NewMarkAllNotificationsReadUseCase(f.notifications),
	)

	f.router = gin.New()
	api := f.router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-Anonymous") == "" {
			c.Set(string(middleware.UserIDKey), f.userID)
		}
		c.Next()
	})
	api.POST("/budgets", budgets.Create)
	api.GET("/budgets/:id", budgets.Get)
	api.GET("/budgets/:id/utilization", budgets.Utilization)
	api.POST("/budgets/:id/check-limit", budgets.CheckLimit)
	api.POST("/transactions", transactions.Create)
	api.PUT("/transactions/:id", transactions.Update)
	api.GET("/transactions", transactions.List)
	api.PATCH("/pots/:id/balance", pots.AdjustBalance)
	api.GET("/notifications", notifications.List)

	return f
}

func (f *apiFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) seedBudget(amount string) *entity.Budget {
	budget := entity.NewBudget(
		f.userID, "Groceries", decimal.RequireFromString(amount), "#277C78",
		entity.BudgetPeriodMonthly, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true, testNow,
	)
	f.budgets.Seed(budget)
	return budget
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind domainerror.Kind
		want int
	}{
		{domainerror.KindNotFound, http.StatusNotFound},
		{domainerror.KindValidation, http.StatusBadRequest},
		{domainerror.KindLimitExceeded, http.StatusUnprocessableEntity},
		{domainerror.KindInsufficientFunds, http.StatusUnprocessableEntity},
		{domainerror.KindConflict, http.StatusConflict},
		{domainerror.KindUnauthorized, http.StatusUnauthorized},
		{domainerror.KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := statusForKind(tt.kind); got != tt.want {
				t.Errorf("statusForKind(%s) = %d, want %d", tt.kind, got, tt.want)
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   dto.ErrorResponse
	}{
		{
			name:       "wrapped domain error",
			err:        fmt.Errorf("outer: %w", domainerror.NewConflict(domainerror.ErrCodePotNameExists, "Pot name already exists", nil)),
			wantStatus: http.StatusConflict,
			wantBody:   dto.ErrorResponse{Error: "Pot name already exists", Code: string(domainerror.ErrCodePotNameExists)},
		},
		{
			name:       "plain error hides the cause",
			err:        errors.New("connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   dto.ErrorResponse{Error: "Failed to do the thing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err, "Failed to do the thing")

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			got := decodeBody[dto.ErrorResponse](t, rec)
			if got.Error != tt.wantBody.Error || got.Code != tt.wantBody.Code {
				t.Errorf("body = %+v, want %+v", got, tt.wantBody)
			}
		})
	}
}

func TestBudgetController(t *testing.T) {
	t.Run("create returns 201 with defaults", func(t *testing.T) {
		f := newAPIFixture()
		rec := f.do(t, http.MethodPost, "/api/v1/budgets", map[string]any{
			"category": "Dining",
			"amount":   "250",
		})

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		got := decodeBody[dto.BudgetResponse](t, rec)
		if got.Amount != "250.00" || got.Period != "monthly" || !got.IsActive {
			t.Errorf("unexpected budget %+v", got)
		}
	})

	t.Run("create without amount is rejected", func(t *testing.T) {
		f := newAPIFixture()
		rec := f.do(t, http.MethodPost, "/api/v1/budgets", map[string]any{"category": "Dining"})

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decodeBody[dto.ErrorResponse](t, rec); got.Code != string(domainerror.ErrCodeMissingBudgetFields) {
			t.Errorf("code = %q", got.Code)
		}
	})

	t.Run("duplicate category conflicts", func(t *testing.T) {
		f := newAPIFixture()
		f.seedBudget("100")
		rec := f.do(t, http.MethodPost, "/api/v1/budgets", map[string]any{"category": "Groceries", "amount": "50"})

		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409, body %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newAPIFixture()
		if rec := f.do(t, http.MethodGet, "/api/v1/budgets/nope", nil); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown budget", func(t *testing.T) {
		f := newAPIFixture()
		if rec := f.do(t, http.MethodGet, "/api/v1/budgets/"+uuid.NewString(), nil); rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newAPIFixture()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/budgets/"+uuid.NewString(), nil)
		req.Header.Set("X-Test-Anonymous", "1")
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("utilization and check-limit", func(t *testing.T) {
		f := newAPIFixture()
		budget := f.seedBudget("100")
		for _, amount := range []string{"40", "30"} {
			rec := f.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
				"name": "Market", "amount": amount, "type": "expense", "category": "Groceries",
				"date": "2024-03-10", "budget_id": budget.ID.String(),
			})
			if rec.Code != http.StatusCreated {
				t.Fatalf("create expense: status = %d, body %s", rec.Code, rec.Body.String())
			}
		}

		rec := f.do(t, http.MethodGet, "/api/v1/budgets/"+budget.ID.String()+"/utilization", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("utilization: status = %d", rec.Code)
		}
		utilization := decodeBody[dto.BudgetUtilizationResponse](t, rec)
		if utilization.Spent != "70.00" || utilization.Remaining != "30.00" || utilization.PercentageUsed != "70.0" {
			t.Errorf("unexpected utilization %+v", utilization)
		}

		rec = f.do(t, http.MethodPost, "/api/v1/budgets/"+budget.ID.String()+"/check-limit", map[string]any{"amount": "31"})
		if rec.Code != http.StatusOK {
			t.Fatalf("check-limit: status = %d", rec.Code)
		}
		if check := decodeBody[dto.CheckBudgetLimitResponse](t, rec); check.WithinLimit {
			t.Errorf("expected 31 to exceed the remaining 30, got %+v", check)
		}
	})
}

func TestTransactionController(t *testing.T) {
	t.Run("limit exceeded maps to 422 with details", func(t *testing.T) {
		f := newAPIFixture()
		budget := f.seedBudget("100")
		create := func(amount string) *httptest.ResponseRecorder {
			return f.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
				"name": "Market", "amount": amount, "type": "expense", "category": "Groceries",
				"date": "2024-03-10", "budget_id": budget.ID.String(),
			})
		}

		if rec := create("90"); rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}

		rec := create("20")
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		got := decodeBody[dto.ErrorResponse](t, rec)
		if got.Code != string(domainerror.ErrCodeBudgetLimitExceeded) {
			t.Errorf("code = %q", got.Code)
		}
		if got.Details["remaining_budget"] != "10" {
			t.Errorf("details = %v", got.Details)
		}
		if n := len(f.transactions.All()); n != 1 {
			t.Errorf("stored transactions = %d, want 1", n)
		}
	})

	t.Run("crossing the threshold notifies", func(t *testing.T) {
		f := newAPIFixture()
		budget := f.seedBudget("100")
		for _, amount := range []string{"40", "30", "15"} {
			rec := f.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
				"name": "Market", "amount": amount, "type": "expense", "category": "Groceries",
				"date": "2024-03-10", "budget_id": budget.ID.String(),
			})
			if rec.Code != http.StatusCreated {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
		}

		rec := f.do(t, http.MethodGet, "/api/v1/notifications", nil)
		inbox := decodeBody[dto.NotificationListResponse](t, rec)
		if len(inbox.Notifications) != 1 || inbox.UnreadCount != 1 {
			t.Fatalf("unexpected inbox %+v", inbox)
		}
		if inbox.Notifications[0].Message != "Budget Groceries is at 85.0% utilization" {
			t.Errorf("message = %q", inbox.Notifications[0].Message)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		f := newAPIFixture()
		rec := f.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{"name": "Coffee"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		f := newAPIFixture()
		rec := f.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
			"name": "Coffee", "amount": "3", "type": "expense", "category": "Cafe", "date": "15/03/2024",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := decodeBody[dto.ErrorResponse](t, rec); got.Code != string(domainerror.ErrCodeInvalidTransactionDate) {
			t.Errorf("code = %q", got.Code)
		}
	})

	t.Run("update with an empty budget id unlinks it", func(t *testing.T) {
		f := newAPIFixture()
		budget := f.seedBudget("100")
		rec := f.do(t, http.MethodPost, "/api/v1/transactions", map[string]any{
			"name": "Market", "amount": "10", "type": "expense", "category": "Groceries",
			"budget_id": budget.ID.String(), "tags": []string{"weekly"},
		})
		created := decodeBody[dto.TransactionResponse](t, rec)

		rec = f.do(t, http.MethodPut, "/api/v1/transactions/"+created.ID, map[string]any{
			"budget_id": "",
			"tags":      []string{},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		updated := decodeBody[dto.TransactionResponse](t, rec)
		if updated.BudgetID != nil {
			t.Errorf("budget still linked: %v", *updated.BudgetID)
		}
		if len(updated.Tags) != 0 {
			t.Errorf("tags = %v, want none", updated.Tags)
		}
	})

	t.Run("list rejects a malformed amount filter", func(t *testing.T) {
		f := newAPIFixture()
		if rec := f.do(t, http.MethodGet, "/api/v1/transactions?min_amount=abc", nil); rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestPotController_AdjustBalance(t *testing.T) {
	f := newAPIFixture()
	pot := entity.NewPot(f.userID, "Holiday", decimal.NewFromInt(100), nil, "", "", testNow)
	pot.CurrentAmount = decimal.NewFromInt(50)
	f.pots.Seed(pot)
	path := "/api/v1/pots/" + pot.ID.String() + "/balance"

	rec := f.do(t, http.MethodPatch, path, map[string]any{"amount": "120", "operation": "withdraw"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("withdraw: status = %d, want 422", rec.Code)
	}
	if got := decodeBody[dto.ErrorResponse](t, rec); got.Code != string(domainerror.ErrCodeInsufficientFunds) {
		t.Errorf("code = %q", got.Code)
	}

	rec = f.do(t, http.MethodPatch, path, map[string]any{"amount": "80", "operation": "add"})
	if rec.Code != http.StatusOK {
		t.Fatalf("add: status = %d, body %s", rec.Code, rec.Body.String())
	}
	got := decodeBody[dto.PotResponse](t, rec)
	if got.CurrentAmount != "100.00" || got.Progress != "100.0" {
		t.Errorf("unexpected pot %+v", got)
	}
}

func TestHealthController_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)
	up := func() bool { return true }
	down := func() bool { return false }

	tests := []struct {
		name       string
		controller *HealthController
		wantStatus int
		want       HealthResponse
	}{
		{
			name:       "all up",
			controller: NewHealthController(up, up, up),
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Database: "connected", Redis: "connected", Scheduler: "started"},
		},
		{
			name:       "optional services disabled",
			controller: NewHealthController(up, nil, nil),
			wantStatus: http.StatusOK,
			want:       HealthResponse{Status: "ok", Database: "connected", Redis: "disabled", Scheduler: "disabled"},
		},
		{
			name:       "database down",
			controller: NewHealthController(down, down, down),
			wantStatus: http.StatusServiceUnavailable,
			want:       HealthResponse{Status: "degraded", Database: "disconnected", Redis: "disconnected", Scheduler: "stopped"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", tt.controller.Check)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			got := decodeBody[HealthResponse](t, rec)
			got.Timestamp = ""
			if got != tt.want {
				t.Errorf("body = %+v, want %+v", got, tt.want)
			}
		})
	}
}
