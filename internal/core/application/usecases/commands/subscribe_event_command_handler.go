package commands

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
)

// SubscribeEventCommandHandler registers a webhook subscription.
// A user holds at most one subscription per event kind; subscribing again
// replaces the endpoint, headers, and retry budget in place. Tasks already
// queued keep the values frozen at enqueue time.
type SubscribeEventCommandHandler struct {
	uowFactory SubscriptionUoWFactory
}

// NewSubscribeEventCommandHandler creates a handler for subscription
// registration.
func NewSubscribeEventCommandHandler(uowFactory SubscriptionUoWFactory) SubscribeEventCommandHandler {
	return SubscribeEventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the subscription command.
func (h SubscribeEventCommandHandler) Handle(ctx context.Context, cmd SubscribeEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := subscription.NewSubscription(
		kernel.NewUUID(),
		cmd.OwnerID(),
		cmd.EventKind(),
		cmd.URL(),
		cmd.Headers(),
		cmd.MaxRetry(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SubscriptionRepository().Upsert(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
