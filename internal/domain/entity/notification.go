package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType represents the severity of a notification.
type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

// IsValid reports whether the type is a known severity.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeWarning, NotificationTypeError:
		return true
	}
	return false
}

const (
	NotificationCategoryGeneral = "general"
	NotificationCategoryBudget  = "budget"
)

// Notification is a message addressed to one owner.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Message   string
	Type      NotificationType
	IsRead    bool
	Category  string
	RelatedID *uuid.UUID
	CreatedAt time.Time
}

// NewNotification creates a new unread Notification.
func NewNotification(userID uuid.UUID, message string, notificationType NotificationType, category string, relatedID *uuid.UUID, now time.Time) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		Type:      notificationType,
		Category:  category,
		RelatedID: relatedID,
		CreatedAt: now,
	}
}
