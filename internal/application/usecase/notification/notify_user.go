// Package notification contains notification-related use cases.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
)

// NotifyUserInput represents a notification to deliver.
type NotifyUserInput struct {
	UserID    uuid.UUID
	Message   string
	Type      entity.NotificationType // Optional, defaults to info
	Category  string                  // Optional, defaults to general
	RelatedID *uuid.UUID
}

// NotifyUserOutput represents the delivered notification.
type NotifyUserOutput struct {
	Notification *entity.Notification
}

// NotifyUserUseCase stores a notification and pushes it to the real-time channel.
type NotifyUserUseCase struct {
	notificationRepo adapter.NotificationRepository
	publisher        adapter.NotificationPublisher // Optional
	clock            adapter.Clock
}

// NewNotifyUserUseCase creates a new NotifyUserUseCase instance.
// publisher may be nil when no real-time channel is configured.
func NewNotifyUserUseCase(
	notificationRepo adapter.NotificationRepository,
	publisher adapter.NotificationPublisher,
	clock adapter.Clock,
) *NotifyUserUseCase {
	return &NotifyUserUseCase{
		notificationRepo: notificationRepo,
		publisher:        publisher,
		clock:            clock,
	}
}

// Execute persists the notification. Publish failures are logged only.
func (uc *NotifyUserUseCase) Execute(ctx context.Context, input NotifyUserInput) (*NotifyUserOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, domainerror.NewValidation(
			domainerror.ErrCodeNotificationMessageRequired,
			"message is required",
			nil,
		)
	}

	notificationType := input.Type
	if notificationType == "" {
		notificationType = entity.NotificationTypeInfo
	}
	if !notificationType.IsValid() {
		return nil, domainerror.NewValidation(
			domainerror.ErrCodeInvalidNotificationType,
			fmt.Sprintf("unknown notification type %q", notificationType),
			nil,
		)
	}

	category := input.Category
	if category == "" {
		category = entity.NotificationCategoryGeneral
	}

	notification := entity.NewNotification(input.UserID, message, notificationType, category, input.RelatedID, uc.clock.Now())

	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	if uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, notification); err != nil {
			slog.Warn("Failed to publish notification",
				"notification_id", notification.ID,
				"user_id", notification.UserID,
				"error", err)
		}
	}

	return &NotifyUserOutput{
		Notification: notification,
	}, nil
}
