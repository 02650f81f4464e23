package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrUpdateShipmentStateCommandIsNotConstructed = errors.New(
	"UpdateShipmentStateCommand must be created via NewUpdateShipmentStateCommand constructor",
)

// UpdateShipmentStateCommand represents a request to move a shipment to the
// given target state.
type UpdateShipmentStateCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	target     shipment.State

	guard guard.ConstructorGuard
}

// NewUpdateShipmentStateCommand creates a command to transition the given
// shipment. The target must be a known state; whether the transition itself
// is legal is decided by the aggregate.
func NewUpdateShipmentStateCommand(shipmentID kernel.UUID, target shipment.State) (UpdateShipmentStateCommand, error) {
	command := UpdateShipmentStateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setTarget(target),
	); err != nil {
		return UpdateShipmentStateCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateShipmentStateCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentStateCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to transition.
func (c UpdateShipmentStateCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Target returns the requested target state.
func (c UpdateShipmentStateCommand) Target() shipment.State {
	return c.target
}

func (c *UpdateShipmentStateCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *UpdateShipmentStateCommand) setTarget(target shipment.State) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}
