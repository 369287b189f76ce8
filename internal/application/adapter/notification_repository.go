package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// NotificationRepository defines the interface for notification persistence operations.
type NotificationRepository interface {
	// Create creates a new notification in the database.
	Create(ctx context.Context, notification *entity.Notification) error

	// FindByUser retrieves the owner's newest notifications.
	FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Notification, error)

	// CountUnread counts the owner's unread notifications.
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// MarkAsRead flags one notification as read and returns it.
	// Returns domainerror.ErrNotificationNotFound when no row matches.
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*entity.Notification, error)

	// MarkAllAsRead flags every unread notification of the owner as read.
	// Returns the number of updated rows.
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

// NotificationPublisher pushes a stored notification to real-time subscribers.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification *entity.Notification) error
}
