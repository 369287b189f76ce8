package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// PotModel represents the pots table in the database.
type PotModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_pots_user_name"`
	Name          string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_pots_user_name"`
	GoalAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TargetDate    *time.Time
	Description   string    `gorm:"type:varchar(500)"`
	Category      string    `gorm:"type:varchar(50)"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the PotModel.
func (PotModel) TableName() string {
	return "pots"
}

// ToEntity converts a PotModel to a domain Pot entity.
func (m *PotModel) ToEntity() *entity.Pot {
	return &entity.Pot{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		GoalAmount:    m.GoalAmount,
		CurrentAmount: m.CurrentAmount,
		TargetDate:    m.TargetDate,
		Description:   m.Description,
		Category:      m.Category,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// PotFromEntity creates a PotModel from a domain Pot entity.
func PotFromEntity(pot *entity.Pot) *PotModel {
	var targetDate *time.Time
	if pot.TargetDate != nil {
		t := pot.TargetDate.UTC()
		targetDate = &t
	}

	return &PotModel{
		ID:            pot.ID,
		UserID:        pot.UserID,
		Name:          pot.Name,
		GoalAmount:    pot.GoalAmount,
		CurrentAmount: pot.CurrentAmount,
		TargetDate:    targetDate,
		Description:   pot.Description,
		Category:      pot.Category,
		CreatedAt:     pot.CreatedAt.UTC(),
		UpdatedAt:     pot.UpdatedAt.UTC(),
	}
}
