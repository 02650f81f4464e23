package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
	"shipping/internal/pkg/guard"
)

var ErrUnsubscribeEventCommandIsNotConstructed = errors.New(
	"UnsubscribeEventCommand must be created via NewUnsubscribeEventCommand constructor",
)

// UnsubscribeEventCommand represents a request to drop a webhook
// subscription. Tasks already in the delivery queue are unaffected.
type UnsubscribeEventCommand struct { //nolint:recvcheck //using for validation
	ownerID   kernel.UUID
	eventKind subscription.EventKind

	guard guard.ConstructorGuard
}

// NewUnsubscribeEventCommand creates a command to drop the owner's
// subscription for the given event kind.
func NewUnsubscribeEventCommand(ownerID kernel.UUID, eventKind subscription.EventKind) (UnsubscribeEventCommand, error) {
	command := UnsubscribeEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOwnerID(ownerID),
		command.setEventKind(eventKind),
	); err != nil {
		return UnsubscribeEventCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UnsubscribeEventCommand) Validate() error {
	return c.guard.Validate(ErrUnsubscribeEventCommandIsNotConstructed)
}

// OwnerID returns the identifier of the unsubscribing user.
func (c UnsubscribeEventCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// EventKind returns the event kind to unsubscribe from.
func (c UnsubscribeEventCommand) EventKind() subscription.EventKind {
	return c.eventKind
}

func (c *UnsubscribeEventCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	c.ownerID = ownerID
	return nil
}

func (c *UnsubscribeEventCommand) setEventKind(eventKind subscription.EventKind) error {
	if err := eventKind.Validate(); err != nil {
		return err
	}
	c.eventKind = eventKind
	return nil
}
