package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListNotificationsInput represents the input for listing notifications.
type ListNotificationsInput struct {
	UserID uuid.UUID
	Limit  int
}

// ListNotificationsOutput represents the output of listing notifications, newest first.
type ListNotificationsOutput struct {
	Notifications []*entity.Notification
	UnreadCount   int64
}

// ListNotificationsUseCase handles listing notifications logic.
type ListNotificationsUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewListNotificationsUseCase creates a new ListNotificationsUseCase instance.
func NewListNotificationsUseCase(notificationRepo adapter.NotificationRepository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		notificationRepo: notificationRepo,
	}
}

// Execute performs the notification listing.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, input ListNotificationsInput) (*ListNotificationsOutput, error) {
	limit := input.Limit
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	notifications, err := uc.notificationRepo.FindByUser(ctx, input.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	unread, err := uc.notificationRepo.CountUnread(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &ListNotificationsOutput{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkNotificationReadInput represents the input for marking one notification read.
type MarkNotificationReadInput struct {
	UserID         uuid.UUID
	NotificationID uuid.UUID
}

// MarkNotificationReadOutput represents the updated notification.
type MarkNotificationReadOutput struct {
	Notification *entity.Notification
}

// MarkNotificationReadUseCase marks one of the owner's notifications as read.
type MarkNotificationReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkNotificationReadUseCase creates a new MarkNotificationReadUseCase instance.
func NewMarkNotificationReadUseCase(notificationRepo adapter.NotificationRepository) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{
		notificationRepo: notificationRepo,
	}
}

// Execute performs the update.
func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, input MarkNotificationReadInput) (*MarkNotificationReadOutput, error) {
	notification, err := uc.notificationRepo.MarkAsRead(ctx, input.NotificationID, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotificationNotFound) {
			return nil, domainerror.NewNotFound(
				domainerror.ErrCodeNotificationNotFound,
				"notification not found",
				domainerror.ErrNotificationNotFound,
			)
		}
		return nil, fmt.Errorf("failed to mark notification as read: %w", err)
	}

	return &MarkNotificationReadOutput{
		Notification: notification,
	}, nil
}

// MarkAllNotificationsReadInput represents the input for marking every notification read.
type MarkAllNotificationsReadInput struct {
	UserID uuid.UUID
}

// MarkAllNotificationsReadOutput reports how many notifications changed.
type MarkAllNotificationsReadOutput struct {
	Updated int64
}

// MarkAllNotificationsReadUseCase marks all of the owner's notifications as read.
type MarkAllNotificationsReadUseCase struct {
	notificationRepo adapter.NotificationRepository
}

// NewMarkAllNotificationsReadUseCase creates a new MarkAllNotificationsReadUseCase instance.
func NewMarkAllNotificationsReadUseCase(notificationRepo adapter.NotificationRepository) *MarkAllNotificationsReadUseCase {
	return &MarkAllNotificationsReadUseCase{
		notificationRepo: notificationRepo,
	}
}

// Execute performs the update.
func (uc *MarkAllNotificationsReadUseCase) Execute(ctx context.Context, input MarkAllNotificationsReadInput) (*MarkAllNotificationsReadOutput, error) {
	updated, err := uc.notificationRepo.MarkAllAsRead(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return &MarkAllNotificationsReadOutput{
		Updated: updated,
	}, nil
}
