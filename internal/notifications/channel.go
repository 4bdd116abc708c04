package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"msghub/internal/mail"
	"msghub/internal/models"
	"msghub/internal/realtime"
	"msghub/internal/webpush"
)

// Channel is one delivery mechanism for a notification. Implementations
// must be independent: one channel failing never affects another.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, recipient models.User, n *Notification) error
}

// RecordStore persists notification records at most once per
// (event, recipient) pair. Implemented by repository.NotificationRepository.
type RecordStore interface {
	CreateOnce(ctx context.Context, notification *models.Notification) (bool, error)
}

// SubscriptionStore is the slice of the subscription repository the push
// channel needs.
type SubscriptionStore interface {
	GetByUser(ctx context.Context, userID int64) ([]models.PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}

// databaseChannel persists the authoritative notification record.
type databaseChannel struct {
	store RecordStore
}

func NewDatabaseChannel(store RecordStore) Channel {
	return &databaseChannel{store: store}
}

func (c *databaseChannel) Name() string { return "database" }

func (c *databaseChannel) Deliver(ctx context.Context, recipient models.User, n *Notification) error {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	// CreateOnce swallows duplicates, so a re-dispatched event is a no-op.
	_, err = c.store.CreateOnce(ctx, &models.Notification{
		UserID:  recipient.ID,
		EventID: n.EventID,
		Kind:    string(n.Kind),
		Payload: string(payload),
	})
	return err
}

// broadcastChannel pushes the event onto the shared realtime channel.
type broadcastChannel struct {
	publisher realtime.Publisher
}

func NewBroadcastChannel(publisher realtime.Publisher) Channel {
	return &broadcastChannel{publisher: publisher}
}

func (c *broadcastChannel) Name() string { return "broadcast" }

func (c *broadcastChannel) Deliver(ctx context.Context, recipient models.User, n *Notification) error {
	return c.publisher.Publish(ctx, realtime.MessageEventsChannel, n.Event, n.Payload)
}

// mailChannel sends the templated mail for kinds that carry one.
type mailChannel struct {
	sender mail.Sender
}

func NewMailChannel(sender mail.Sender) Channel {
	return &mailChannel{sender: sender}
}

func (c *mailChannel) Name() string { return "mail" }

func (c *mailChannel) Deliver(ctx context.Context, recipient models.User, n *Notification) error {
	if n.MailTemplate == "" {
		return nil
	}
	return c.sender.Send(ctx, n.MailTemplate, recipient.Email, n.MailVars)
}

// pushChannel delivers to every push subscription the recipient holds.
// Endpoints the push service reports as gone are deleted on the spot.
type pushChannel struct {
	store  SubscriptionStore
	sender webpush.Sender
}

func NewPushChannel(store SubscriptionStore, sender webpush.Sender) Channel {
	return &pushChannel{store: store, sender: sender}
}

func (c *pushChannel) Name() string { return "push" }

func (c *pushChannel) Deliver(ctx context.Context, recipient models.User, n *Notification) error {
	subscriptions, err := c.store.GetByUser(ctx, recipient.ID)
	if err != nil {
		return fmt.Errorf("failed to load push subscriptions: %w", err)
	}
	if len(subscriptions) == 0 {
		return nil
	}

	payload, err := json.Marshal(realtime.Envelope{Event: n.Event, Data: n.Payload})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	var failures []error
	for i := range subscriptions {
		sub := &subscriptions[i]
		err := c.sender.Send(ctx, sub, payload)
		if errors.Is(err, webpush.ErrSubscriptionExpired) {
			if delErr := c.store.DeleteByEndpoint(ctx, sub.Endpoint); delErr != nil {
				log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, delErr)
			}
			continue
		}
		if err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}
