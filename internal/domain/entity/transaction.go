package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the type is expense or income.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents a financial transaction.
type Transaction struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	Amount              decimal.Decimal // Always non-negative, direction comes from Type
	Type                TransactionType
	Category            string
	Description         string
	Date                time.Time
	Recurring           bool
	RecurringFrequency  RecurringFrequency // Ignored unless Recurring is set
	Avatar              string
	BudgetID            *uuid.UUID
	PotID               *uuid.UUID
	ParentTransactionID *uuid.UUID // Row this one was generated from
	Tags                []string
	IsDeleted           bool
	DeletedAt           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	name string,
	amount decimal.Decimal,
	transactionType TransactionType,
	category string,
	date time.Time,
	now time.Time,
) *Transaction {
	return &Transaction{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               name,
		Amount:             amount,
		Type:               transactionType,
		Category:           category,
		Date:               date,
		RecurringFrequency: RecurringFrequencyMonthly,
		Tags:               []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// IsExpense reports whether the transaction is an expense.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// CountsAgainstBudget reports whether the transaction consumes budget capacity.
func (t *Transaction) CountsAgainstBudget() bool {
	return t.IsExpense() && t.BudgetID != nil && !t.IsDeleted
}

// SoftDelete flags the transaction as deleted.
func (t *Transaction) SoftDelete(now time.Time) {
	t.IsDeleted = true
	t.DeletedAt = &now
	t.UpdatedAt = now
}

// Restore clears the deleted flag.
func (t *Transaction) Restore(now time.Time) {
	t.IsDeleted = false
	t.DeletedAt = nil
	t.UpdatedAt = now
}

// CloneAt returns a copy dated at date and linked to t as its parent.
// Identity and timestamps are fresh; everything else is copied.
func (t *Transaction) CloneAt(date, now time.Time) *Transaction {
	parentID := t.ID
	tags := make([]string, len(t.Tags))
	copy(tags, t.Tags)

	return &Transaction{
		ID:                  uuid.New(),
		UserID:              t.UserID,
		Name:                t.Name,
		Amount:              t.Amount,
		Type:                t.Type,
		Category:            t.Category,
		Description:         t.Description,
		Date:                date,
		Recurring:           t.Recurring,
		RecurringFrequency:  t.RecurringFrequency,
		Avatar:              t.Avatar,
		BudgetID:            copyUUID(t.BudgetID),
		PotID:               copyUUID(t.PotID),
		ParentTransactionID: &parentID,
		Tags:                tags,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

func copyUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
