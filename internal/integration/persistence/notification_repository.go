package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/domain/entity"
	domainerror "github.com/personal-finance/backend/internal/domain/error"
	"github.com/personal-finance/backend/internal/integration/persistence/model"
)

// notificationRepository implements the adapter.NotificationRepository interface.
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository instance.
func NewNotificationRepository(db *gorm.DB) adapter.NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// Create creates a new notification in the database.
func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return r.db.WithContext(ctx).Create(model.NotificationFromEntity(notification)).Error
}

// FindByUser retrieves the owner's newest notifications.
func (r *notificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Notification, error) {
	var notificationModels []model.NotificationModel
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, len(notificationModels))
	for i, nm := range notificationModels {
		notifications[i] = nm.ToEntity()
	}
	return notifications, nil
}

// CountUnread counts the owner's unread notifications.
func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// MarkAsRead flags one notification as read and returns it.
func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (*entity.Notification, error) {
	var notificationModel model.NotificationModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&notificationModel).Error; err != nil {
			return err
		}
		if notificationModel.IsRead {
			return nil
		}
		notificationModel.IsRead = true
		return tx.Model(&model.NotificationModel{}).
			Where("id = ?", id).
			Update("is_read", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrNotificationNotFound
		}
		return nil, err
	}
	return notificationModel.ToEntity(), nil
}

// MarkAllAsRead flags every unread notification of the owner as read.
func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
