package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
)

// NotificationMessage is the payload published for every stored notification.
type NotificationMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	RelatedID *string   `json:"related_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// redisNotificationPublisher fans notifications out over Redis pub/sub,
// one channel per user.
type redisNotificationPublisher struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisNotificationPublisher creates a publisher writing to "<channel>:<userID>".
func NewRedisNotificationPublisher(client redis.UniversalClient, channel string) adapter.NotificationPublisher {
	return &redisNotificationPublisher{
		client:  client,
		channel: channel,
	}
}

// UserChannel returns the channel a user's notifications are published on.
func UserChannel(channel, userID string) string {
	return channel + ":" + userID
}

// Publish sends the notification to the owner's channel.
func (p *redisNotificationPublisher) Publish(ctx context.Context, notification *entity.Notification) error {
	msg := NotificationMessage{
		ID:        notification.ID.String(),
		UserID:    notification.UserID.String(),
		Message:   notification.Message,
		Type:      string(notification.Type),
		Category:  notification.Category,
		IsRead:    notification.IsRead,
		CreatedAt: notification.CreatedAt,
	}
	if notification.RelatedID != nil {
		related := notification.RelatedID.String()
		msg.RelatedID = &related
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	channel := UserChannel(p.channel, msg.UserID)
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification to %s: %w", channel, err)
	}
	return nil
}
