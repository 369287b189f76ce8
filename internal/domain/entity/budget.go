// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the cycle a budget resets on.
type BudgetPeriod string

const (
	BudgetPeriodMonthly   BudgetPeriod = "monthly"
	BudgetPeriodQuarterly BudgetPeriod = "quarterly"
	BudgetPeriodYearly    BudgetPeriod = "yearly"
)

// DefaultBudgetTheme is the default colour for budgets.
const DefaultBudgetTheme = "#000000"

// IsValid reports whether the period is a known kind.
func (p BudgetPeriod) IsValid() bool {
	return p == BudgetPeriodMonthly || p == BudgetPeriodQuarterly || p == BudgetPeriodYearly
}

// Budget represents a spending limit for one category label of one owner.
type Budget struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  string
	Amount    decimal.Decimal
	Theme     string
	Period    BudgetPeriod
	StartDate time.Time // Anchor of the period cycle
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(
	userID uuid.UUID,
	category string,
	amount decimal.Decimal,
	theme string,
	period BudgetPeriod,
	startDate time.Time,
	isActive bool,
	now time.Time,
) *Budget {
	return &Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Category:  category,
		Amount:    amount,
		Theme:     theme,
		Period:    period,
		StartDate: startDate,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BudgetUtilization is the spending snapshot of a budget inside its current window.
type BudgetUtilization struct {
	Budget         *Budget
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed decimal.Decimal
	Window         PeriodWindow
}

var hundred = decimal.NewFromInt(100)

// NewBudgetUtilization derives remaining and percentage from the spent amount.
// Remaining never goes below zero; percentage is zero for a zero-amount budget.
func NewBudgetUtilization(budget *Budget, spent decimal.Decimal, window PeriodWindow) *BudgetUtilization {
	remaining := budget.Amount.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	percentage := decimal.Zero
	if budget.Amount.IsPositive() {
		percentage = spent.Div(budget.Amount).Mul(hundred)
	}

	return &BudgetUtilization{
		Budget:         budget,
		Spent:          spent,
		Remaining:      remaining,
		PercentageUsed: percentage,
		Window:         window,
	}
}
