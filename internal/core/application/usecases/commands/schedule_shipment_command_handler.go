package commands

import (
	"context"
	"time"

	"shipping/internal/core/ports"
)

// ScheduleShipmentCommandHandler moves a pending shipment to SCHEDULED.
//
// Scheduling asks the delivery estimator for a predicted duration based on
// the destination, then stamps the shipment with the scheduling time and the
// resulting estimated shipping date. Only shipments in PENDING state can be
// scheduled; scheduling emits no notification event.
type ScheduleShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	estimator  ports.DeliveryEstimator
	now        func() time.Time
}

// NewScheduleShipmentCommandHandler creates a handler for shipment
// scheduling. Requires a ShipmentUoWFactory for transactional persistence and
// a DeliveryEstimator for duration prediction.
func NewScheduleShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	estimator ports.DeliveryEstimator,
) ScheduleShipmentCommandHandler {
	return NewScheduleShipmentCommandHandlerWithClock(uowFactory, estimator, func() time.Time {
		return time.Now().UTC()
	})
}

// NewScheduleShipmentCommandHandlerWithClock creates a handler with an
// explicit clock. Used in tests to pin the scheduling time.
func NewScheduleShipmentCommandHandlerWithClock(
	uowFactory ShipmentUoWFactory,
	estimator ports.DeliveryEstimator,
	now func() time.Time,
) ScheduleShipmentCommandHandler {
	return ScheduleShipmentCommandHandler{
		uowFactory: uowFactory,
		estimator:  estimator,
		now:        now,
	}
}

// Handle processes the scheduling command.
// Returns the shipment's transition error unchanged when it is not in
// PENDING state; the shipment is left unmodified in that case.
func (h ScheduleShipmentCommandHandler) Handle(ctx context.Context, cmd ScheduleShipmentCommand) error {
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

	estimatedDays, err := h.estimator.EstimateDays(ctx, aggregate.Location())
	if err != nil {
		return err
	}

	if err = aggregate.Schedule(h.now(), estimatedDays); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
