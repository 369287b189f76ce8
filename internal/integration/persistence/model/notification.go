package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// NotificationModel represents the notifications table in the database.
type NotificationModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Message   string     `gorm:"type:text;not null"`
	Type      string     `gorm:"type:varchar(10);not null;default:'info'"`
	IsRead    bool       `gorm:"default:false;index"`
	Category  string     `gorm:"type:varchar(50);default:'general'"`
	RelatedID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null;index"`
}

// TableName returns the table name for the NotificationModel.
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToEntity converts a NotificationModel to a domain Notification entity.
func (m *NotificationModel) ToEntity() *entity.Notification {
	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Message:   m.Message,
		Type:      entity.NotificationType(m.Type),
		IsRead:    m.IsRead,
		Category:  m.Category,
		RelatedID: m.RelatedID,
		CreatedAt: m.CreatedAt,
	}
}

// NotificationFromEntity creates a NotificationModel from a domain Notification entity.
func NotificationFromEntity(notification *entity.Notification) *NotificationModel {
	return &NotificationModel{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Message:   notification.Message,
		Type:      string(notification.Type),
		IsRead:    notification.IsRead,
		Category:  notification.Category,
		RelatedID: notification.RelatedID,
		CreatedAt: notification.CreatedAt.UTC(),
	}
}

// AllModels lists every model the schema is migrated from.
func AllModels() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&BudgetModel{},
		&PotModel{},
		&TransactionModel{},
		&NotificationModel{},
	}
}
