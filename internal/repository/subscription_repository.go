package repository

import (
	"context"
	"errors"

	"msghub/internal/models"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Upsert(ctx context.Context, subscription *models.PushSubscription) error
	GetByUser(ctx context.Context, userID int64) ([]models.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
	DeleteByUserAndEndpoint(ctx context.Context, userID int64, endpoint string) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Upsert stores the subscription; re-subscribing the same endpoint
// refreshes the owner and keys instead of failing on the unique index.
func (r *subscriptionRepository) Upsert(ctx context.Context, subscription *models.PushSubscription) error {
	var existing models.PushSubscription
	err := r.db.WithContext(ctx).
		Where("endpoint = ?", subscription.Endpoint).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(subscription).Error
	}
	if err != nil {
		return err
	}

	existing.UserID = subscription.UserID
	existing.P256dh = subscription.P256dh
	existing.Auth = subscription.Auth
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *subscriptionRepository) GetByUser(ctx context.Context, userID int64) ([]models.PushSubscription, error) {
	var subscriptions []models.PushSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&subscriptions).Error
	return subscriptions, err
}

// DeleteByEndpoint removes an expired endpoint regardless of owner,
// used when the push service reports the subscription gone.
func (r *subscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	return r.db.WithContext(ctx).
		Where("endpoint = ?", endpoint).
		Delete(&models.PushSubscription{}).Error
}

func (r *subscriptionRepository) DeleteByUserAndEndpoint(ctx context.Context, userID int64, endpoint string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&models.PushSubscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("subscription not found")
	}
	return nil
}
