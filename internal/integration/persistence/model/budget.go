package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category"`
	Category  string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_budgets_user_category"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Theme     string          `gorm:"type:varchar(7);default:'#000000'"`
	Period    string          `gorm:"type:varchar(10);not null;default:'monthly'"`
	StartDate time.Time       `gorm:"not null"`
	IsActive  bool            `gorm:"not null;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:        m.ID,
		UserID:    m.UserID,
		Category:  m.Category,
		Amount:    m.Amount,
		Theme:     m.Theme,
		Period:    entity.BudgetPeriod(m.Period),
		StartDate: m.StartDate,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:        budget.ID,
		UserID:    budget.UserID,
		Category:  budget.Category,
		Amount:    budget.Amount,
		Theme:     budget.Theme,
		Period:    string(budget.Period),
		StartDate: budget.StartDate.UTC(),
		IsActive:  budget.IsActive,
		CreatedAt: budget.CreatedAt.UTC(),
		UpdatedAt: budget.UpdatedAt.UTC(),
	}
}
