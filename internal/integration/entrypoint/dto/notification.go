package dto

import (
	"time"

	"github.com/personal-finance/backend/internal/domain/entity"
)

// NotificationResponse represents a single notification in API responses.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	RelatedID *string   `json:"related_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse represents the inbox response.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// MarkAllReadResponse represents the response of marking every notification read.
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// ToNotificationResponse converts a domain Notification entity to its DTO.
func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	response := NotificationResponse{
		ID:        n.ID.String(),
		Message:   n.Message,
		Type:      string(n.Type),
		Category:  n.Category,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if n.RelatedID != nil {
		id := n.RelatedID.String()
		response.RelatedID = &id
	}
	return response
}

// ToNotificationListResponse converts notifications and the unread count to the inbox DTO.
func ToNotificationListResponse(notifications []*entity.Notification, unread int64) NotificationListResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = ToNotificationResponse(n)
	}
	return NotificationListResponse{
		Notifications: responses,
		UnreadCount:   unread,
	}
}
