package webpush

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"msghub/internal/models"
)

// ErrSubscriptionExpired signals that the push service no longer knows
// the endpoint. The caller is expected to delete the stored subscription.
var ErrSubscriptionExpired = errors.New("push subscription expired")

const defaultTTLSeconds = 86400

// Sender delivers a payload to a subscription's push endpoint.
type Sender interface {
	Send(ctx context.Context, subscription *models.PushSubscription, payload []byte) error
}

type httpSender struct {
	client *http.Client
	ttl    int
}

func NewSender(timeout time.Duration, ttlSeconds int) Sender {
	if ttlSeconds <= 0 {
		ttlSeconds = defaultTTLSeconds
	}
	return &httpSender{
		client: &http.Client{Timeout: timeout},
		ttl:    ttlSeconds,
	}
}

// Send POSTs the payload to the endpoint. HTTP 404 and 410 mean the
// push service dropped the subscription and map to ErrSubscriptionExpired.
func (s *httpSender) Send(ctx context.Context, subscription *models.PushSubscription, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, subscription.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("TTL", strconv.Itoa(s.ttl))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach push service: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return ErrSubscriptionExpired
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}
	return nil
}
