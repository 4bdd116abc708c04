package service

import (
	"context"

	"msghub/internal/models"
	"msghub/internal/repository"
	"msghub/internal/webpush"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, userID int64, endpoint, p256dh, auth string) error
	Unsubscribe(ctx context.Context, userID int64, endpoint string) error
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
}

func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepo: subscriptionRepo}
}

// Subscribe validates the endpoint against the trust policy before
// anything is stored. Validation errors surface to the caller verbatim;
// registration fails fast and visibly.
func (s *subscriptionService) Subscribe(ctx context.Context, userID int64, endpoint, p256dh, auth string) error {
	if err := webpush.ValidateEndpoint(endpoint); err != nil {
		return err
	}
	return s.subscriptionRepo.Upsert(ctx, &models.PushSubscription{
		UserID:   userID,
		Endpoint: endpoint,
		P256dh:   p256dh,
		Auth:     auth,
	})
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, userID int64, endpoint string) error {
	return s.subscriptionRepo.DeleteByUserAndEndpoint(ctx, userID, endpoint)
}
