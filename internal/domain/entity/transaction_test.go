package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestTransactionCloneAt(t *testing.T) {
	now := date(2024, time.March, 1)
	budgetID := uuid.New()
	source := NewTransaction(uuid.New(), "Rent", decimal.NewFromInt(900), TransactionTypeExpense, "Housing", date(2024, time.January, 31), now)
	source.Recurring = true
	source.BudgetID = &budgetID
	source.Tags = []string{"home"}
	source.Description = "monthly rent"

	clone := source.CloneAt(date(2024, time.February, 29), now)

	if clone.ID == source.ID {
		t.Error("expected a fresh identity")
	}
	if clone.ParentTransactionID == nil || *clone.ParentTransactionID != source.ID {
		t.Errorf("expected parent %s, got %v", source.ID, clone.ParentTransactionID)
	}
	if !clone.Date.Equal(date(2024, time.February, 29)) {
		t.Errorf("expected clone date Feb 29, got %v", clone.Date)
	}
	if !clone.Recurring || clone.Name != "Rent" || clone.Description != "monthly rent" {
		t.Errorf("expected fields to be copied, got %+v", clone)
	}
	if !clone.Amount.Equal(source.Amount) {
		t.Errorf("expected amount %s, got %s", source.Amount, clone.Amount)
	}

	clone.Tags[0] = "changed"
	*clone.BudgetID = uuid.New()
	if source.Tags[0] != "home" || *source.BudgetID != budgetID {
		t.Error("expected clone not to share tags or budget pointer with source")
	}
}

func TestTransactionSoftDeleteAndRestore(t *testing.T) {
	now := date(2024, time.March, 1)
	budgetID := uuid.New()
	txn := NewTransaction(uuid.New(), "Groceries", decimal.NewFromInt(40), TransactionTypeExpense, "Food", now, now)
	txn.BudgetID = &budgetID

	if !txn.CountsAgainstBudget() {
		t.Fatal("expected linked expense to count against budget")
	}

	txn.SoftDelete(now.Add(time.Hour))
	if !txn.IsDeleted || txn.DeletedAt == nil {
		t.Fatal("expected transaction to be soft deleted")
	}
	if txn.CountsAgainstBudget() {
		t.Error("expected deleted transaction not to count against budget")
	}

	txn.Restore(now.Add(2 * time.Hour))
	if txn.IsDeleted || txn.DeletedAt != nil {
		t.Error("expected transaction to be restored")
	}
}
