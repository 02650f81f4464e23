package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrScheduleShipmentCommandIsNotConstructed = errors.New(
	"ScheduleShipmentCommand must be created via NewScheduleShipmentCommand constructor",
)

// ScheduleShipmentCommand represents a request to schedule a pending shipment
// for delivery.
type ScheduleShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewScheduleShipmentCommand creates a command to schedule the given shipment.
func NewScheduleShipmentCommand(shipmentID kernel.UUID) (ScheduleShipmentCommand, error) {
	command := ScheduleShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setShipmentID(shipmentID); err != nil {
		return ScheduleShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ScheduleShipmentCommand) Validate() error {
	return c.guard.Validate(ErrScheduleShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to schedule.
func (c ScheduleShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *ScheduleShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}
