package budget

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter/adaptertest"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

func strPtr(s string) *string { return &s }

func TestCreateBudgetUseCase_Execute(t *testing.T) {
	userID := uuid.New()

	t.Run("applies defaults", func(t *testing.T) {
		repo := adaptertest.NewBudgetRepository()
		uc := NewCreateBudgetUseCase(repo, adaptertest.NewClock(testNow))

		output, err := uc.Execute(context.Background(), CreateBudgetInput{
			UserID:   userID,
			Category: "  Dining Out ",
			Amount:   decimal.NewFromInt(250),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		budget := output.Budget
		if budget.Category != "Dining Out" {
			t.Errorf("expected trimmed category, got %q", budget.Category)
		}
		if budget.Theme != entity.DefaultBudgetTheme {
			t.Errorf("expected default theme, got %s", budget.Theme)
		}
		if budget.Period != entity.BudgetPeriodMonthly {
			t.Errorf("expected monthly period, got %s", budget.Period)
		}
		if !budget.StartDate.Equal(testNow) {
			t.Errorf("expected start date %v, got %v", testNow, budget.StartDate)
		}
		if !budget.IsActive {
			t.Error("expected budget to be active")
		}
		if repo.Len() != 1 {
			t.Errorf("expected 1 stored budget, got %d", repo.Len())
		}
	})

	t.Run("one budget per owner and category", func(t *testing.T) {
		repo := adaptertest.NewBudgetRepository()
		uc := NewCreateBudgetUseCase(repo, adaptertest.NewClock(testNow))
		input := CreateBudgetInput{UserID: userID, Category: "Bills", Amount: decimal.NewFromInt(100)}

		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := uc.Execute(context.Background(), input)
		if !domainerror.IsKind(err, domainerror.KindConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}

		input.UserID = uuid.New()
		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Errorf("another owner may reuse the category, got %v", err)
		}
	})

	invalid := []struct {
		name  string
		input CreateBudgetInput
	}{
		{name: "blank category", input: CreateBudgetInput{UserID: userID, Category: "  ", Amount: decimal.NewFromInt(1)}},
		{name: "negative amount", input: CreateBudgetInput{UserID: userID, Category: "Bills", Amount: decimal.NewFromInt(-1)}},
		{name: "bad theme", input: CreateBudgetInput{UserID: userID, Category: "Bills", Amount: decimal.NewFromInt(1), Theme: strPtr("red")}},
		{name: "bad period", input: CreateBudgetInput{UserID: userID, Category: "Bills", Amount: decimal.NewFromInt(1), Period: func() *entity.BudgetPeriod { p := entity.BudgetPeriod("weekly"); return &p }()}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			repo := adaptertest.NewBudgetRepository()
			uc := NewCreateBudgetUseCase(repo, adaptertest.NewClock(testNow))

			_, err := uc.Execute(context.Background(), tt.input)
			if !domainerror.IsKind(err, domainerror.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if repo.Len() != 0 {
				t.Errorf("expected nothing stored, got %d", repo.Len())
			}
		})
	}
}

func TestUpdateBudgetUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	clock := adaptertest.NewClock(testNow)

	newRepo := func() (*adaptertest.BudgetRepository, *entity.Budget, *entity.Budget) {
		repo := adaptertest.NewBudgetRepository()
		bills := entity.NewBudget(userID, "Bills", decimal.NewFromInt(100), entity.DefaultBudgetTheme, entity.BudgetPeriodMonthly, testNow, true, testNow)
		fun := entity.NewBudget(userID, "Fun", decimal.NewFromInt(50), entity.DefaultBudgetTheme, entity.BudgetPeriodMonthly, testNow, true, testNow)
		repo.Seed(bills, fun)
		return repo, bills, fun
	}

	t.Run("updates provided fields only", func(t *testing.T) {
		repo, bills, _ := newRepo()
		uc := NewUpdateBudgetUseCase(repo, clock)
		amount := decimal.NewFromInt(300)
		period := entity.BudgetPeriodQuarterly

		output, err := uc.Execute(context.Background(), UpdateBudgetInput{
			BudgetID: bills.ID,
			UserID:   userID,
			Amount:   &amount,
			Period:   &period,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Budget.Amount.Equal(amount) || output.Budget.Period != period {
			t.Errorf("unexpected budget %+v", output.Budget)
		}
		if output.Budget.Category != "Bills" {
			t.Errorf("category should be unchanged, got %s", output.Budget.Category)
		}
	})

	t.Run("renaming onto another budget's category conflicts", func(t *testing.T) {
		repo, bills, _ := newRepo()
		uc := NewUpdateBudgetUseCase(repo, clock)

		_, err := uc.Execute(context.Background(), UpdateBudgetInput{BudgetID: bills.ID, UserID: userID, Category: strPtr("Fun")})
		if !domainerror.IsKind(err, domainerror.KindConflict) {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("unknown budget", func(t *testing.T) {
		repo, _, _ := newRepo()
		uc := NewUpdateBudgetUseCase(repo, clock)

		_, err := uc.Execute(context.Background(), UpdateBudgetInput{BudgetID: uuid.New(), UserID: userID})
		if !domainerror.IsKind(err, domainerror.KindNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestDeleteBudgetUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	repo := adaptertest.NewBudgetRepository()
	budget := entity.NewBudget(userID, "Bills", decimal.NewFromInt(100), entity.DefaultBudgetTheme, entity.BudgetPeriodMonthly, testNow, true, testNow)
	repo.Seed(budget)
	uc := NewDeleteBudgetUseCase(repo)

	if err := uc.Execute(context.Background(), DeleteBudgetInput{BudgetID: budget.ID, UserID: uuid.New()}); !domainerror.IsKind(err, domainerror.KindNotFound) {
		t.Fatalf("expected not found for another owner, got %v", err)
	}
	if err := uc.Execute(context.Background(), DeleteBudgetInput{BudgetID: budget.ID, UserID: userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.Len() != 0 {
		t.Errorf("expected budget to be removed")
	}
}

func TestGetBudgetByCategoryUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	repo := adaptertest.NewBudgetRepository()
	budget := entity.NewBudget(userID, "Bills", decimal.NewFromInt(100), entity.DefaultBudgetTheme, entity.BudgetPeriodMonthly, testNow, true, testNow)
	repo.Seed(budget)
	uc := NewGetBudgetByCategoryUseCase(repo)

	output, err := uc.Execute(context.Background(), GetBudgetByCategoryInput{UserID: userID, Category: "Bills"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Budget.ID != budget.ID {
		t.Errorf("expected budget %s, got %s", budget.ID, output.Budget.ID)
	}

	if _, err := uc.Execute(context.Background(), GetBudgetByCategoryInput{UserID: userID, Category: "Rent"}); !domainerror.IsKind(err, domainerror.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListBudgetsUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	repo := adaptertest.NewBudgetRepository()
	for i, category := range []string{"A", "B", "C"} {
		created := testNow.Add(time.Duration(i) * time.Hour)
		repo.Seed(entity.NewBudget(userID, category, decimal.NewFromInt(int64(10*(i+1))), entity.DefaultBudgetTheme, entity.BudgetPeriodMonthly, testNow, true, created))
	}
	repo.Seed(entity.NewBudget(uuid.New(), "Z", decimal.NewFromInt(1), entity.DefaultBudgetTheme, entity.BudgetPeriodMonthly, testNow, true, testNow))
	uc := NewListBudgetsUseCase(repo)

	t.Run("newest first by default", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListBudgetsInput{UserID: userID, Limit: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Pagination.Total != 3 || output.Pagination.TotalPages != 2 {
			t.Errorf("unexpected pagination %+v", output.Pagination)
		}
		if len(output.Budgets) != 2 || output.Budgets[0].Category != "C" {
			t.Errorf("expected C first, got %d budgets", len(output.Budgets))
		}
	})

	t.Run("amount filter and ascending sort", func(t *testing.T) {
		minAmount := decimal.NewFromInt(20)
		output, err := uc.Execute(context.Background(), ListBudgetsInput{UserID: userID, MinAmount: &minAmount, SortBy: "amount", SortOrder: "asc"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Budgets) != 2 || output.Budgets[0].Category != "B" {
			t.Errorf("expected B then C, got %d budgets", len(output.Budgets))
		}
	})

	t.Run("unknown sort key", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListBudgetsInput{UserID: userID, SortBy: "theme; DROP TABLE budgets"})
		if !domainerror.IsKind(err, domainerror.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}
