package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/application/adapter/adaptertest"
	budgetuc "github.com/personal-finance/backend/internal/application/usecase/budget"
	categoryuc "github.com/personal-finance/backend/internal/application/usecase/category"
	notificationuc "github.com/personal-finance/backend/internal/application/usecase/notification"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type ledgerFixture struct {
	clock         *adaptertest.Clock
	transactions  *adaptertest.TransactionRepository
	budgets       *adaptertest.BudgetRepository
	pots          *adaptertest.PotRepository
	categories    *adaptertest.CategoryRepository
	notifications *adaptertest.NotificationRepository
	publisher     *adaptertest.NotificationPublisher
	create        *CreateTransactionUseCase
	update        *UpdateTransactionUseCase
	userID        uuid.UUID
	budget        *entity.Budget
}

func newLedgerFixture(budgetAmount int64) *ledgerFixture {
	f := &ledgerFixture{
		clock:         adaptertest.NewClock(testNow),
		transactions:  adaptertest.NewTransactionRepository(),
		budgets:       adaptertest.NewBudgetRepository(),
		pots:          adaptertest.NewPotRepository(),
		categories:    adaptertest.NewCategoryRepository(),
		notifications: adaptertest.NewNotificationRepository(),
		publisher:     &adaptertest.NotificationPublisher{},
		userID:        uuid.New(),
	}

	calculator := budgetuc.NewUtilizationCalculator(f.transactions, f.clock)
	guard := budgetuc.NewCheckBudgetLimitUseCase(f.budgets, calculator)
	notifier := notificationuc.NewNotifyUserUseCase(f.notifications, f.publisher, f.clock)
	alert := NewBudgetAlert(f.budgets, calculator, notifier, 80)
	ensure := categoryuc.NewEnsureCategoryUseCase(f.categories, f.clock)

	f.create = NewCreateTransactionUseCase(f.transactions, f.budgets, f.pots, ensure, guard, alert, f.clock)
	f.update = NewUpdateTransactionUseCase(f.transactions, f.budgets, f.pots, ensure, guard, alert, f.clock)

	f.budget = entity.NewBudget(
		f.userID,
		"Groceries",
		decimal.NewFromInt(budgetAmount),
		entity.DefaultBudgetTheme,
		entity.BudgetPeriodMonthly,
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		true,
		testNow,
	)
	f.budgets.Seed(f.budget)
	return f
}

func (f *ledgerFixture) expenseInput(amount string) CreateTransactionInput {
	budgetID := f.budget.ID
	return CreateTransactionInput{
		UserID:   f.userID,
		Name:     "Supermarket",
		Amount:   decimal.RequireFromString(amount),
		Type:     entity.TransactionTypeExpense,
		Category: "Groceries",
		BudgetID: &budgetID,
	}
}

func (f *ledgerFixture) mustCreate(t *testing.T, input CreateTransactionInput) *entity.Transaction {
	t.Helper()
	output, err := f.create.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return output.Transaction
}

func TestCreateTransactionUseCase_BudgetAlert(t *testing.T) {
	t.Run("notifies once utilization reaches 85 percent", func(t *testing.T) {
		f := newLedgerFixture(100)
		f.mustCreate(t, f.expenseInput("40"))
		f.mustCreate(t, f.expenseInput("30"))

		if n := len(f.notifications.All()); n != 0 {
			t.Fatalf("expected no notification at 70%%, got %d", n)
		}

		f.mustCreate(t, f.expenseInput("15"))

		notifications := f.notifications.All()
		if len(notifications) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(notifications))
		}
		n := notifications[0]
		if n.Message != "Budget Groceries is at 85.0% utilization" {
			t.Errorf("unexpected message %q", n.Message)
		}
		if n.Type != entity.NotificationTypeWarning || n.Category != entity.NotificationCategoryBudget {
			t.Errorf("unexpected type/category %s/%s", n.Type, n.Category)
		}
		if n.RelatedID == nil || *n.RelatedID != f.budget.ID {
			t.Errorf("expected related id %s", f.budget.ID)
		}
		if n.UserID != f.userID {
			t.Errorf("expected owner %s, got %s", f.userID, n.UserID)
		}
		if len(f.publisher.Published()) != 1 {
			t.Errorf("expected notification to be published")
		}
	})

	t.Run("stays quiet at 79 percent", func(t *testing.T) {
		f := newLedgerFixture(100)
		f.mustCreate(t, f.expenseInput("40"))
		f.mustCreate(t, f.expenseInput("30"))
		f.mustCreate(t, f.expenseInput("9"))

		if n := len(f.notifications.All()); n != 0 {
			t.Errorf("expected no notification at 79%%, got %d", n)
		}
	})

	t.Run("every qualifying write notifies again", func(t *testing.T) {
		f := newLedgerFixture(100)
		f.mustCreate(t, f.expenseInput("80"))
		f.mustCreate(t, f.expenseInput("5"))

		if n := len(f.notifications.All()); n != 2 {
			t.Errorf("expected 2 notifications, got %d", n)
		}
	})

	t.Run("income never notifies", func(t *testing.T) {
		f := newLedgerFixture(100)
		f.mustCreate(t, f.expenseInput("90"))
		input := f.expenseInput("500")
		input.Type = entity.TransactionTypeIncome
		f.mustCreate(t, input)

		if n := len(f.notifications.All()); n != 1 {
			t.Errorf("expected only the expense to notify, got %d", n)
		}
	})

	t.Run("publisher failure does not fail the write", func(t *testing.T) {
		f := newLedgerFixture(100)
		f.publisher.Err = errors.New("redis down")

		f.mustCreate(t, f.expenseInput("95"))

		if n := len(f.notifications.All()); n != 1 {
			t.Errorf("expected notification to be stored, got %d", n)
		}
	})

	t.Run("notification store failure does not fail the write", func(t *testing.T) {
		f := newLedgerFixture(100)
		f.notifications.Err = errors.New("store down")

		created := f.mustCreate(t, f.expenseInput("95"))
		if created == nil {
			t.Fatal("expected transaction to be created")
		}
	})
}

func TestCreateTransactionUseCase_LimitGuard(t *testing.T) {
	t.Run("rejects without writing", func(t *testing.T) {
		f := newLedgerFixture(100)
		f.mustCreate(t, f.expenseInput("90"))

		_, err := f.create.Execute(context.Background(), f.expenseInput("10.01"))

		var domainErr *domainerror.Error
		if !errors.As(err, &domainErr) || domainErr.Kind != domainerror.KindLimitExceeded {
			t.Fatalf("expected limit exceeded, got %v", err)
		}
		if domainErr.Details["current_spending"] != "90" || domainErr.Details["remaining_budget"] != "10" {
			t.Errorf("unexpected details %v", domainErr.Details)
		}
		if n := len(f.transactions.All()); n != 1 {
			t.Errorf("expected 1 stored transaction, got %d", n)
		}
	})

	t.Run("exactly reaching the limit is allowed", func(t *testing.T) {
		f := newLedgerFixture(100)
		f.mustCreate(t, f.expenseInput("90"))
		f.mustCreate(t, f.expenseInput("10"))
	})

	t.Run("income skips the guard", func(t *testing.T) {
		f := newLedgerFixture(100)
		input := f.expenseInput("1000")
		input.Type = entity.TransactionTypeIncome
		f.mustCreate(t, input)
	})

	t.Run("expense without a budget skips the guard", func(t *testing.T) {
		f := newLedgerFixture(100)
		input := f.expenseInput("1000")
		input.BudgetID = nil
		f.mustCreate(t, input)
	})
}

func TestCreateTransactionUseCase_Execute(t *testing.T) {
	t.Run("applies defaults and creates the category", func(t *testing.T) {
		f := newLedgerFixture(100)
		created := f.mustCreate(t, CreateTransactionInput{
			UserID:   f.userID,
			Name:     "  Coffee ",
			Amount:   decimal.RequireFromString("3.50"),
			Type:     entity.TransactionTypeExpense,
			Category: "Cafe",
			Tags:     []string{"morning", " ", "morning", "treat"},
		})

		if created.Name != "Coffee" {
			t.Errorf("expected trimmed name, got %q", created.Name)
		}
		if !created.Date.Equal(testNow) {
			t.Errorf("expected date to default to now, got %v", created.Date)
		}
		if created.RecurringFrequency != entity.RecurringFrequencyMonthly {
			t.Errorf("expected monthly frequency, got %s", created.RecurringFrequency)
		}
		if len(created.Tags) != 2 || created.Tags[0] != "morning" || created.Tags[1] != "treat" {
			t.Errorf("unexpected tags %v", created.Tags)
		}
		if names := f.categories.Names(); len(names) != 1 || names[0] != "Cafe" {
			t.Errorf("expected category Cafe to be created, got %v", names)
		}

		f.mustCreate(t, CreateTransactionInput{UserID: f.userID, Name: "Tea", Amount: decimal.NewFromInt(2), Type: entity.TransactionTypeExpense, Category: "Cafe"})
		if names := f.categories.Names(); len(names) != 1 {
			t.Errorf("expected category to be created once, got %v", names)
		}
	})

	t.Run("category store failure does not block the write", func(t *testing.T) {
		f := newLedgerFixture(100)
		f.categories.Err = errors.New("store down")
		f.mustCreate(t, CreateTransactionInput{UserID: f.userID, Name: "Tea", Amount: decimal.NewFromInt(2), Type: entity.TransactionTypeExpense, Category: "Cafe"})
	})

	t.Run("foreign budget is not found", func(t *testing.T) {
		f := newLedgerFixture(100)
		input := f.expenseInput("1")
		input.UserID = uuid.New()

		_, err := f.create.Execute(context.Background(), input)
		var domainErr *domainerror.Error
		if !errors.As(err, &domainErr) || domainErr.Code != domainerror.ErrCodeTxnBudgetNotFound {
			t.Errorf("expected budget not found, got %v", err)
		}
	})

	t.Run("unknown pot is not found", func(t *testing.T) {
		f := newLedgerFixture(100)
		potID := uuid.New()
		input := f.expenseInput("1")
		input.PotID = &potID

		_, err := f.create.Execute(context.Background(), input)
		if !domainerror.IsKind(err, domainerror.KindNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	invalid := []struct {
		name   string
		mutate func(*CreateTransactionInput)
		code   domainerror.ErrorCode
	}{
		{name: "missing name", mutate: func(i *CreateTransactionInput) { i.Name = " " }, code: domainerror.ErrCodeTransactionNameRequired},
		{name: "long name", mutate: func(i *CreateTransactionInput) { i.Name = strings.Repeat("a", 101) }, code: domainerror.ErrCodeTransactionNameTooLong},
		{name: "missing category", mutate: func(i *CreateTransactionInput) { i.Category = "" }, code: domainerror.ErrCodeMissingTransactionFields},
		{name: "negative amount", mutate: func(i *CreateTransactionInput) { i.Amount = decimal.NewFromInt(-5) }, code: domainerror.ErrCodeInvalidTransactionAmount},
		{name: "unknown type", mutate: func(i *CreateTransactionInput) { i.Type = "transfer" }, code: domainerror.ErrCodeInvalidTransactionType},
		{name: "unknown frequency", mutate: func(i *CreateTransactionInput) { i.RecurringFrequency = "hourly" }, code: domainerror.ErrCodeInvalidRecurringFrequency},
		{name: "avatar outside uploads", mutate: func(i *CreateTransactionInput) { i.Avatar = "http://evil/x.png" }, code: domainerror.ErrCodeInvalidAvatar},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture(100)
			input := f.expenseInput("1")
			tt.mutate(&input)

			_, err := f.create.Execute(context.Background(), input)

			var domainErr *domainerror.Error
			if !errors.As(err, &domainErr) {
				t.Fatalf("expected domain error, got %v", err)
			}
			if domainErr.Kind != domainerror.KindValidation || domainErr.Code != tt.code {
				t.Errorf("expected validation %s, got %s %s", tt.code, domainErr.Kind, domainErr.Code)
			}
			if n := len(f.transactions.All()); n != 0 {
				t.Errorf("expected nothing stored, got %d", n)
			}
		})
	}
}

func TestUpdateTransactionUseCase_Execute(t *testing.T) {
	t.Run("own amount is excluded from the guard", func(t *testing.T) {
		f := newLedgerFixture(100)
		existing := f.mustCreate(t, f.expenseInput("60"))
		f.mustCreate(t, f.expenseInput("20"))

		amount := decimal.NewFromInt(80)
		output, err := f.update.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        f.userID,
			Amount:        &amount,
		})
		if err != nil {
			t.Fatalf("expected 20 + 80 to fit a 100 budget, got %v", err)
		}
		if !output.Transaction.Amount.Equal(amount) {
			t.Errorf("expected amount 80, got %s", output.Transaction.Amount)
		}
	})

	t.Run("raising past the limit is rejected and leaves the row unchanged", func(t *testing.T) {
		f := newLedgerFixture(100)
		existing := f.mustCreate(t, f.expenseInput("60"))
		f.mustCreate(t, f.expenseInput("20"))

		amount := decimal.NewFromInt(81)
		_, err := f.update.Execute(context.Background(), UpdateTransactionInput{TransactionID: existing.ID, UserID: f.userID, Amount: &amount})
		if !domainerror.IsKind(err, domainerror.KindLimitExceeded) {
			t.Fatalf("expected limit exceeded, got %v", err)
		}

		stored, _ := f.transactions.FindByID(context.Background(), existing.ID)
		if !stored.Amount.Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected stored amount 60, got %s", stored.Amount)
		}
	})

	t.Run("rename of an overspent expense is allowed", func(t *testing.T) {
		f := newLedgerFixture(100)
		existing := f.mustCreate(t, f.expenseInput("90"))
		f.budget.Amount = decimal.NewFromInt(50)
		f.budgets.Seed(f.budget)

		name := "Renamed"
		if _, err := f.update.Execute(context.Background(), UpdateTransactionInput{TransactionID: existing.ID, UserID: f.userID, Name: &name}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("update crossing the threshold notifies", func(t *testing.T) {
		f := newLedgerFixture(100)
		existing := f.mustCreate(t, f.expenseInput("50"))

		amount := decimal.NewFromInt(90)
		if _, err := f.update.Execute(context.Background(), UpdateTransactionInput{TransactionID: existing.ID, UserID: f.userID, Amount: &amount}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n := len(f.notifications.All()); n != 1 {
			t.Errorf("expected 1 notification, got %d", n)
		}
	})

	t.Run("clear budget unlinks", func(t *testing.T) {
		f := newLedgerFixture(100)
		existing := f.mustCreate(t, f.expenseInput("50"))

		output, err := f.update.Execute(context.Background(), UpdateTransactionInput{TransactionID: existing.ID, UserID: f.userID, ClearBudget: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.BudgetID != nil {
			t.Errorf("expected budget link to be cleared")
		}
	})

	t.Run("unknown transaction", func(t *testing.T) {
		f := newLedgerFixture(100)
		_, err := f.update.Execute(context.Background(), UpdateTransactionInput{TransactionID: uuid.New(), UserID: f.userID})
		if !domainerror.IsKind(err, domainerror.KindNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestDeleteAndRestoreTransaction(t *testing.T) {
	f := newLedgerFixture(100)
	existing := f.mustCreate(t, f.expenseInput("50"))
	deleteUC := NewDeleteTransactionUseCase(f.transactions, f.clock)
	restoreUC := NewRestoreTransactionUseCase(f.transactions, f.clock)
	getUC := NewGetTransactionUseCase(f.transactions)
	calculator := budgetuc.NewUtilizationCalculator(f.transactions, f.clock)

	if err := deleteUC.Execute(context.Background(), DeleteTransactionInput{TransactionID: existing.ID, UserID: f.userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := getUC.Execute(context.Background(), GetTransactionInput{TransactionID: existing.ID, UserID: f.userID}); !domainerror.IsKind(err, domainerror.KindNotFound) {
		t.Errorf("deleted transaction should not be found, got %v", err)
	}

	utilization, err := calculator.Calculate(context.Background(), f.budget, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utilization.Spent.IsZero() {
		t.Errorf("deleted expense should not count, spent %s", utilization.Spent)
	}

	if err := deleteUC.Execute(context.Background(), DeleteTransactionInput{TransactionID: existing.ID, UserID: f.userID}); !domainerror.IsKind(err, domainerror.KindNotFound) {
		t.Errorf("second delete should be not found, got %v", err)
	}

	output, err := restoreUC.Execute(context.Background(), RestoreTransactionInput{TransactionID: existing.ID, UserID: f.userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Transaction.IsDeleted || output.Transaction.DeletedAt != nil {
		t.Errorf("expected transaction to be restored")
	}

	if _, err := restoreUC.Execute(context.Background(), RestoreTransactionInput{TransactionID: existing.ID, UserID: f.userID}); !domainerror.IsKind(err, domainerror.KindNotFound) {
		t.Errorf("restoring a live transaction should be not found, got %v", err)
	}
}

func TestListTransactionsUseCase_Execute(t *testing.T) {
	f := newLedgerFixture(1000)
	for i := 0; i < 3; i++ {
		input := f.expenseInput("10")
		date := testNow.AddDate(0, 0, -i)
		input.Date = &date
		f.mustCreate(t, input)
	}
	uc := NewListTransactionsUseCase(f.transactions)

	t.Run("newest date first", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: f.userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Transactions) != 3 || !output.Transactions[0].Date.Equal(testNow) {
			t.Errorf("expected newest first, got %d transactions", len(output.Transactions))
		}
	})

	t.Run("start after end", func(t *testing.T) {
		start := testNow
		end := testNow.AddDate(0, 0, -1)
		_, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: f.userID, StartDate: &start, EndDate: &end})
		if !domainerror.IsKind(err, domainerror.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown sort", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: f.userID, SortBy: "password"})
		if !domainerror.IsKind(err, domainerror.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}
