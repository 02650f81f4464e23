package commands

import (
	"context"
)

// UnsubscribeEventCommandHandler drops a webhook subscription.
type UnsubscribeEventCommandHandler struct {
	uowFactory SubscriptionUoWFactory
}

// NewUnsubscribeEventCommandHandler creates a handler for subscription
// removal.
func NewUnsubscribeEventCommandHandler(uowFactory SubscriptionUoWFactory) UnsubscribeEventCommandHandler {
	return UnsubscribeEventCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the unsubscribe command.
// Returns errs.ObjectNotFoundError when the owner holds no subscription for
// the given event kind.
func (h UnsubscribeEventCommandHandler) Handle(ctx context.Context, cmd UnsubscribeEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.SubscriptionRepository().Delete(ctx, cmd.OwnerID(), cmd.EventKind()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
