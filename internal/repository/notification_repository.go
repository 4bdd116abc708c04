package repository

import (
	"context"
	"errors"
	"time"

	"msghub/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateOnce(ctx context.Context, notification *models.Notification) (bool, error)
	GetUnreadByUser(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, notificationID int64) error
	MarkAllAsRead(ctx context.Context, userID int64) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// CreateOnce inserts the notification unless a record for the same
// (event_id, user_id) pair already exists. It reports whether a new
// record was created; a duplicate is a silent no-op.
func (r *notificationRepository) CreateOnce(ctx context.Context, notification *models.Notification) (bool, error) {
	var existing models.Notification
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", notification.EventID, notification.UserID).
		First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	err = r.db.WithContext(ctx).Create(notification).Error
	if err != nil {
		// Lost a race against a concurrent dispatch of the same event;
		// the unique index makes the insert fail, which is still a no-op.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *notificationRepository) GetUnreadByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND read_at IS NULL", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("read_at", &now).Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", &now).Error
}
