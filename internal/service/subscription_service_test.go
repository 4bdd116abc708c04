package service

import (
	"context"
	"errors"
	"testing"

	"msghub/internal/models"
	"msghub/internal/webpush"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscriptionRepo is an in-memory SubscriptionRepository
type fakeSubscriptionRepo struct {
	subscriptions map[string]*models.PushSubscription // endpoint -> sub
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subscriptions: make(map[string]*models.PushSubscription)}
}

func (r *fakeSubscriptionRepo) Upsert(ctx context.Context, sub *models.PushSubscription) error {
	copied := *sub
	r.subscriptions[sub.Endpoint] = &copied
	return nil
}

func (r *fakeSubscriptionRepo) GetByUser(ctx context.Context, userID int64) ([]models.PushSubscription, error) {
	var out []models.PushSubscription
	for _, sub := range r.subscriptions {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	delete(r.subscriptions, endpoint)
	return nil
}

func (r *fakeSubscriptionRepo) DeleteByUserAndEndpoint(ctx context.Context, userID int64, endpoint string) error {
	sub, ok := r.subscriptions[endpoint]
	if !ok || sub.UserID != userID {
		return errors.New("subscription not found")
	}
	delete(r.subscriptions, endpoint)
	return nil
}

func TestSubscriptionServiceSubscribe(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	err := svc.Subscribe(ctx, 1, "https://fcm.googleapis.com/fcm/send/abc123", "key", "auth")
	require.NoError(t, err)

	subs, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubscriptionServiceRejectsUntrustedEndpoint(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	tests := []struct {
		endpoint string
		wantErr  error
	}{
		{"https://evilfcm.googleapis.com/fcm/send/abc123", webpush.ErrUntrustedDomain},
		{"http://fcm.googleapis.com/x", webpush.ErrInsecureScheme},
		{"https://fcm.googleapis.com/", webpush.ErrMissingPath},
		{"nonsense", webpush.ErrMalformedURL},
	}
	for _, tt := range tests {
		err := svc.Subscribe(ctx, 1, tt.endpoint, "key", "auth")
		assert.ErrorIs(t, err, tt.wantErr, "endpoint %q", tt.endpoint)
	}

	// Nothing was stored for any rejected endpoint.
	subs, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSubscriptionServiceUnsubscribe(t *testing.T) {
	repo := newFakeSubscriptionRepo()
	svc := NewSubscriptionService(repo)
	ctx := context.Background()

	endpoint := "https://updates.push.services.mozilla.com/wpush/v2/token"
	require.NoError(t, svc.Subscribe(ctx, 1, endpoint, "key", "auth"))

	// Another user cannot remove it.
	assert.Error(t, svc.Unsubscribe(ctx, 2, endpoint))

	require.NoError(t, svc.Unsubscribe(ctx, 1, endpoint))
	subs, err := repo.GetByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, subs)
}
