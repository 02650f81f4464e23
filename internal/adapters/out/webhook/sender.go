// Package webhook delivers event notifications to subscriber endpoints
// over HTTP.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shipping/internal/core/domain/model/delivery"
	"shipping/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// envelope is the wire format of a webhook notification.
type envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

var _ ports.WebhookSender = &Sender{}

// Sender posts webhook notifications with a bounded per-request timeout.
// Subscriber-provided headers are merged in as-is on top of the defaults,
// so a subscriber may override anything, Content-Type included.
type Sender struct {
	client *http.Client
}

// NewSender creates a Sender with the default request timeout.
func NewSender() *Sender {
	return NewSenderWithClient(&http.Client{Timeout: defaultTimeout})
}

// NewSenderWithClient creates a Sender using the provided HTTP client.
// Used by tests and callers that need custom transport settings.
func NewSenderWithClient(client *http.Client) *Sender {
	return &Sender{client: client}
}

// Send performs one delivery attempt for the task.
// Any 2xx response counts as acknowledged; everything else, including
// transport errors, is returned as a failure reason.
func (s *Sender) Send(ctx context.Context, task *delivery.Delivery) error {
	if err := task.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(envelope{
		Event:   task.EventKind().String(),
		Payload: task.Payload(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, task.URL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for name, value := range task.Headers() {
		req.Header.Set(name, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("endpoint responded with status %d", resp.StatusCode)
	}

	return nil
}
