package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                string          `gorm:"type:varchar(100);not null"`
	Amount              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type                string          `gorm:"type:varchar(10);not null;index"`
	Category            string          `gorm:"type:varchar(50);not null;index"`
	Description         string          `gorm:"type:varchar(500)"`
	Date                time.Time       `gorm:"not null;index"`
	Recurring           bool            `gorm:"default:false;index"`
	RecurringFrequency  string          `gorm:"type:varchar(10);default:'monthly'"`
	Avatar              string          `gorm:"type:varchar(255)"`
	BudgetID            *uuid.UUID      `gorm:"type:uuid;index"`
	PotID               *uuid.UUID      `gorm:"type:uuid;index"`
	ParentTransactionID *uuid.UUID      `gorm:"type:uuid;index"`
	Tags                pq.StringArray  `gorm:"type:text"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null;index"`
	DeletedAt           gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		deletedAt = &t
	}

	tags := make([]string, len(m.Tags))
	copy(tags, m.Tags)

	return &entity.Transaction{
		ID:                  m.ID,
		UserID:              m.UserID,
		Name:                m.Name,
		Amount:              m.Amount,
		Type:                entity.TransactionType(m.Type),
		Category:            m.Category,
		Description:         m.Description,
		Date:                m.Date,
		Recurring:           m.Recurring,
		RecurringFrequency:  entity.RecurringFrequency(m.RecurringFrequency),
		Avatar:              m.Avatar,
		BudgetID:            m.BudgetID,
		PotID:               m.PotID,
		ParentTransactionID: m.ParentTransactionID,
		Tags:                tags,
		IsDeleted:           m.DeletedAt.Valid,
		DeletedAt:           deletedAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
// Times are stored in UTC.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.IsDeleted && transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: transaction.DeletedAt.UTC(), Valid: true}
	}

	tags := make(pq.StringArray, len(transaction.Tags))
	copy(tags, transaction.Tags)

	return &TransactionModel{
		ID:                  transaction.ID,
		UserID:              transaction.UserID,
		Name:                transaction.Name,
		Amount:              transaction.Amount,
		Type:                string(transaction.Type),
		Category:            transaction.Category,
		Description:         transaction.Description,
		Date:                transaction.Date.UTC(),
		Recurring:           transaction.Recurring,
		RecurringFrequency:  string(transaction.RecurringFrequency),
		Avatar:              transaction.Avatar,
		BudgetID:            transaction.BudgetID,
		PotID:               transaction.PotID,
		ParentTransactionID: transaction.ParentTransactionID,
		Tags:                tags,
		CreatedAt:           transaction.CreatedAt.UTC(),
		UpdatedAt:           transaction.UpdatedAt.UTC(),
		DeletedAt:           deletedAt,
	}
}
