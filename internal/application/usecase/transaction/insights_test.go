package transaction

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

func seedTransaction(repo *adaptertest.TransactionRepository, userID uuid.UUID, category, amount string, date time.Time) *entity.Transaction {
	t := entity.NewTransaction(userID, "Item", decimal.RequireFromString(amount), entity.TransactionTypeExpense, category, date, date)
	repo.Seed(t)
	return t
}

func TestGetAnalyticsUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	repo := adaptertest.NewTransactionRepository()
	uc := NewGetAnalyticsUseCase(repo, adaptertest.NewClock(testNow))

	seedTransaction(repo, userID, "Food", "30", testNow.AddDate(0, 0, -1))
	seedTransaction(repo, userID, "Food", "20", testNow.AddDate(0, 0, -1))
	seedTransaction(repo, userID, "Rent", "50", testNow.AddDate(0, 0, -10))
	seedTransaction(repo, userID, "Old", "999", testNow.AddDate(0, 0, -40))
	seedTransaction(repo, uuid.New(), "Food", "1000", testNow.AddDate(0, 0, -1))

	t.Run("last 30 days by default", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), GetAnalyticsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Trends) != 2 {
			t.Fatalf("expected 2 days, got %d", len(output.Trends))
		}
		if output.Trends[0].Date != "2024-03-05" || output.Trends[1].Date != "2024-03-14" {
			t.Errorf("unexpected trend dates %s %s", output.Trends[0].Date, output.Trends[1].Date)
		}
		if !output.Trends[1].Amount.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected 50 on 2024-03-14, got %s", output.Trends[1].Amount)
		}
		if len(output.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(output.Categories))
		}
		for _, share := range output.Categories {
			if share.Percentage != 50 {
				t.Errorf("expected %s to be 50%%, got %d", share.Category, share.Percentage)
			}
		}
	})

	t.Run("last 7 days", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), GetAnalyticsInput{UserID: userID, DateRange: DateRangeLast7Days})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Categories) != 1 || output.Categories[0].Category != "Food" || output.Categories[0].Percentage != 100 {
			t.Errorf("expected only Food at 100%%, got %+v", output.Categories)
		}
	})

	t.Run("this month starts on the first", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), GetAnalyticsInput{UserID: userID, DateRange: DateRangeThisMonth})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Start.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected start %v", output.Start)
		}
	})

	t.Run("unknown range", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), GetAnalyticsInput{UserID: userID, DateRange: "lastDecade"})
		if !domainerror.IsKind(err, domainerror.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestGetRecurringBillsSummaryUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	repo := adaptertest.NewTransactionRepository()
	uc := NewGetRecurringBillsSummaryUseCase(repo, adaptertest.NewClock(testNow))

	dates := []time.Time{
		testNow.AddDate(0, 0, -3),
		testNow.AddDate(0, 0, 5),
		testNow.AddDate(0, 0, 2),
		testNow.AddDate(0, 0, 20),
	}
	for _, date := range dates {
		bill := seedTransaction(repo, userID, "Bills", "10", date)
		bill.Recurring = true
		repo.Seed(bill)
	}
	seedTransaction(repo, userID, "Bills", "10", testNow.AddDate(0, 0, 1))

	output, err := uc.Execute(context.Background(), GetRecurringBillsSummaryInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.TotalPaid != 1 || output.TotalUpcoming != 3 {
		t.Errorf("expected 1 paid and 3 upcoming, got %d and %d", output.TotalPaid, output.TotalUpcoming)
	}
	if len(output.DueSoon) != 2 {
		t.Fatalf("expected 2 due soon, got %d", len(output.DueSoon))
	}
	if !output.DueSoon[0].Date.Equal(dates[2]) {
		t.Errorf("expected earliest bill first, got %v", output.DueSoon[0].Date)
	}
}

func TestGetOverviewUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	repo := adaptertest.NewTransactionRepository()
	uc := NewGetOverviewUseCase(repo)

	for i := 0; i < 7; i++ {
		seedTransaction(repo, userID, "Misc", "1", testNow.Add(time.Duration(i)*time.Hour))
	}

	output, err := uc.Execute(context.Background(), GetOverviewInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Transactions) != 5 {
		t.Fatalf("expected default limit of 5, got %d", len(output.Transactions))
	}
	if !output.Transactions[0].UpdatedAt.Equal(testNow.Add(6 * time.Hour)) {
		t.Errorf("expected most recently updated first, got %v", output.Transactions[0].UpdatedAt)
	}

	output, err = uc.Execute(context.Background(), GetOverviewInput{UserID: userID, Limit: 2, Oldest: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Transactions) != 2 || !output.Transactions[0].UpdatedAt.Equal(testNow) {
		t.Errorf("expected oldest first")
	}
}
