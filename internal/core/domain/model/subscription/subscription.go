package subscription

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// DefaultMaxRetry is the retry budget applied when a subscriber does not
// specify one.
const DefaultMaxRetry = 1

var (
	// ErrSubscriptionIsNotConstructed is returned when a Subscription instance
	// was not created through NewSubscription or RestoreSubscription.
	ErrSubscriptionIsNotConstructed = errors.New(
		"Subscription must be created via NewSubscription or RestoreSubscription")
)

// Subscription registers a webhook endpoint for one event kind.
//
// A user holds at most one subscription per event kind; subscribing again
// replaces the endpoint, headers, and retry budget. Headers are parsed
// strictly at write time so delivery never deals with malformed header text.
type Subscription struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	eventKind EventKind
	url       string
	headers   map[string]string
	maxRetry  int

	isConstructed bool
}

// NewSubscription creates a Subscription after validating the webhook URL,
// headers, and retry budget.
func NewSubscription(
	id kernel.UUID,
	ownerID kernel.UUID,
	eventKind EventKind,
	webhookURL string,
	headers map[string]string,
	maxRetry int,
) (*Subscription, error) {
	subscription := &Subscription{
		isConstructed: true,
	}

	if err := errors.Join(
		subscription.setID(id),
		subscription.setOwnerID(ownerID),
		subscription.setEventKind(eventKind),
		subscription.setURL(webhookURL),
		subscription.setHeaders(headers),
		subscription.setMaxRetry(maxRetry),
	); err != nil {
		return nil, err
	}

	return subscription, nil
}

// RestoreSubscription reconstructs a Subscription from persistence.
// Used by repository adapters only.
func RestoreSubscription(
	id kernel.UUID,
	ownerID kernel.UUID,
	eventKind EventKind,
	webhookURL string,
	headers map[string]string,
	maxRetry int,
) (*Subscription, error) {
	return NewSubscription(id, ownerID, eventKind, webhookURL, headers, maxRetry)
}

// ParseHeaders decodes the raw header text a subscriber supplied.
//
// The text must be a JSON object mapping header names to string values;
// anything else (arrays, nested objects, non-string values, trailing data)
// is rejected. Empty input yields no headers.
func ParseHeaders(raw string) (map[string]string, error) {
	if raw == "" {
		return map[string]string{}, nil
	}

	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	headers := make(map[string]string)
	if err := decoder.Decode(&headers); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("headers", err)
	}
	if decoder.More() {
		return nil, errs.NewValueIsInvalidErrorWithCause("headers",
			errors.New("trailing data after JSON object"))
	}

	return headers, nil
}

// Validate ensures the Subscription instance was properly constructed.
func (s *Subscription) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSubscriptionIsNotConstructed
	}

	return nil
}

// UpdateTarget replaces the webhook endpoint, headers, and retry budget.
// Called when a user subscribes again for the same event kind.
func (s *Subscription) UpdateTarget(webhookURL string, headers map[string]string, maxRetry int) error {
	return errors.Join(
		s.setURL(webhookURL),
		s.setHeaders(headers),
		s.setMaxRetry(maxRetry),
	)
}

// IsEqual compares two subscriptions by their unique identifiers.
func (s *Subscription) IsEqual(other *Subscription) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() kernel.UUID {
	return s.id
}

// OwnerID returns the identifier of the subscribing user.
func (s *Subscription) OwnerID() kernel.UUID {
	return s.ownerID
}

// EventKind returns the subscribed event kind.
func (s *Subscription) EventKind() EventKind {
	return s.eventKind
}

// URL returns the webhook endpoint.
func (s *Subscription) URL() string {
	return s.url
}

// Headers returns a copy of the custom headers sent with every delivery.
func (s *Subscription) Headers() map[string]string {
	headers := make(map[string]string, len(s.headers))
	for name, value := range s.headers {
		headers[name] = value
	}
	return headers
}

// MaxRetry returns the retry budget: the number of additional attempts after
// the first failed one.
func (s *Subscription) MaxRetry() int {
	return s.maxRetry
}

func (s *Subscription) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Subscription) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	s.ownerID = ownerID
	return nil
}

func (s *Subscription) setEventKind(eventKind EventKind) error {
	if err := eventKind.Validate(); err != nil {
		return err
	}
	s.eventKind = eventKind
	return nil
}

func (s *Subscription) setURL(webhookURL string) error {
	if webhookURL == "" {
		return errs.NewValueIsRequiredError("url")
	}

	parsed, err := url.Parse(webhookURL)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("url", err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("url",
			fmt.Errorf("%s is not an absolute http(s) URL", webhookURL))
	}

	s.url = webhookURL
	return nil
}

func (s *Subscription) setHeaders(headers map[string]string) error {
	if headers == nil {
		headers = map[string]string{}
	}
	s.headers = headers
	return nil
}

func (s *Subscription) setMaxRetry(maxRetry int) error {
	if maxRetry < 0 {
		return errs.NewValueIsInvalidErrorWithCause("max_retry",
			fmt.Errorf("%d is negative", maxRetry))
	}
	s.maxRetry = maxRetry
	return nil
}
