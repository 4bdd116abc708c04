package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// MessageEventsChannel is the single shared pub/sub channel for all
// message events (comments, tags, reaction updates).
const MessageEventsChannel = "msghub:messages"

// Publisher pushes an event onto a realtime channel.
type Publisher interface {
	Publish(ctx context.Context, channel, event string, payload any) error
}

// redisPublisherClient is the slice of *redis.Client the publisher needs,
// split out so tests can fake it.
type redisPublisherClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Envelope wraps every published event with its name so subscribers can
// route without inspecting the payload shape.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type redisPublisher struct {
	client redisPublisherClient
	// enabled is consulted on every publish, never cached, so flipping
	// the messaging flag takes effect immediately.
	enabled func() bool
}

func NewRedisPublisher(client redisPublisherClient, enabled func() bool) Publisher {
	return &redisPublisher{client: client, enabled: enabled}
}

func (p *redisPublisher) Publish(ctx context.Context, channel, event string, payload any) error {
	if p.enabled != nil && !p.enabled() {
		// Messaging disabled: dropping the event is the expected outcome,
		// not a failure.
		return nil
	}

	data, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event, err)
	}
	return p.client.Publish(ctx, channel, data).Err()
}
