package commands

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shipping/internal/core/domain/model/delivery"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
	"shipping/internal/pkg/errs"
)

// UpdateShipmentStateCommandHandler orchestrates a shipment state transition
// together with webhook notification enqueueing.
//
// The transition and the notification task are committed in one transaction:
// either the shipment changes state and the task is queued, or neither
// happens. The task carries a snapshot of the shipment taken right after the
// transition, so later mutations never leak into the notification.
//
// When the shipment owner has no subscription for the state-changed event the
// transition commits without a task; a missing subscription is not an error.
type UpdateShipmentStateCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewUpdateShipmentStateCommandHandler creates a handler for state transition
// operations. Requires a UoWFactory spanning shipments, subscriptions, and
// the delivery queue.
func NewUpdateShipmentStateCommandHandler(uowFactory UoWFactory) UpdateShipmentStateCommandHandler {
	return NewUpdateShipmentStateCommandHandlerWithClock(uowFactory, func() time.Time {
		return time.Now().UTC()
	})
}

// NewUpdateShipmentStateCommandHandlerWithClock creates a handler with an
// explicit clock. Used in tests to pin the enqueue time.
func NewUpdateShipmentStateCommandHandlerWithClock(
	uowFactory UoWFactory,
	now func() time.Time,
) UpdateShipmentStateCommandHandler {
	return UpdateShipmentStateCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the state transition command.
// Returns the shipment's transition error unchanged when the requested edge
// is not in the transition graph; nothing is persisted in that case.
func (h UpdateShipmentStateCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentStateCommand) error {
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

	shipmentRepo := uow.ShipmentRepository()
	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateState(cmd.Target()); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = h.enqueueNotification(ctx, uow, aggregate.OwnerID(), aggregate.Snapshot()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h UpdateShipmentStateCommandHandler) enqueueNotification(
	ctx context.Context,
	uow UoW,
	ownerID kernel.UUID,
	snapshot any,
) error {
	sub, err := uow.SubscriptionRepository().GetByOwnerAndKind(
		ctx, ownerID, subscription.ShipmentStateChanged)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	task, err := delivery.NewDelivery(kernel.NewUUID(), sub, payload, h.now())
	if err != nil {
		return err
	}

	return uow.DeliveryRepository().Add(ctx, task)
}
