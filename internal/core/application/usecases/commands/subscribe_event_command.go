package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrSubscribeEventCommandIsNotConstructed = errors.New(
	"SubscribeEventCommand must be created via NewSubscribeEventCommand constructor",
)

// SubscribeEventCommand represents a request to register (or replace) a
// webhook subscription for one event kind.
//
// Example:
//
//	headers, err := subscription.ParseHeaders(`{"Authorization": "Bearer abc"}`)
//	if err != nil {
//	    return err
//	}
//	cmd, err := NewSubscribeEventCommand(ownerID, subscription.ShipmentStateChanged,
//	    "https://hooks.example.com/shipping", headers, 3)
type SubscribeEventCommand struct { //nolint:recvcheck //using for validation
	ownerID   kernel.UUID
	eventKind subscription.EventKind
	url       string
	headers   map[string]string
	maxRetry  int

	guard guard.ConstructorGuard
}

// NewSubscribeEventCommand creates a command to subscribe the given owner to
// the given event kind. The webhook URL must be present; full URL and header
// validation happens in the subscription aggregate.
func NewSubscribeEventCommand(
	ownerID kernel.UUID,
	eventKind subscription.EventKind,
	url string,
	headers map[string]string,
	maxRetry int,
) (SubscribeEventCommand, error) {
	command := SubscribeEventCommand{
		headers: headers,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOwnerID(ownerID),
		command.setEventKind(eventKind),
		command.setURL(url),
		command.setMaxRetry(maxRetry),
	); err != nil {
		return SubscribeEventCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubscribeEventCommand) Validate() error {
	return c.guard.Validate(ErrSubscribeEventCommandIsNotConstructed)
}

// OwnerID returns the identifier of the subscribing user.
func (c SubscribeEventCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// EventKind returns the event kind to subscribe to.
func (c SubscribeEventCommand) EventKind() subscription.EventKind {
	return c.eventKind
}

// URL returns the webhook endpoint.
func (c SubscribeEventCommand) URL() string {
	return c.url
}

// Headers returns the custom headers to send with every delivery.
func (c SubscribeEventCommand) Headers() map[string]string {
	return c.headers
}

// MaxRetry returns the retry budget for failed deliveries.
func (c SubscribeEventCommand) MaxRetry() int {
	return c.maxRetry
}

func (c *SubscribeEventCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	c.ownerID = ownerID
	return nil
}

func (c *SubscribeEventCommand) setEventKind(eventKind subscription.EventKind) error {
	if err := eventKind.Validate(); err != nil {
		return err
	}
	c.eventKind = eventKind
	return nil
}

func (c *SubscribeEventCommand) setURL(url string) error {
	if url == "" {
		return errs.NewValueIsRequiredError("url")
	}
	c.url = url
	return nil
}

func (c *SubscribeEventCommand) setMaxRetry(maxRetry int) error {
	if maxRetry < 0 {
		return errs.NewValueIsInvalidError("max_retry")
	}
	c.maxRetry = maxRetry
	return nil
}
