package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand represents a request to register a new shipment.
// Encapsulates the shipment details including receiver data, weight, and the
// delivery destination.
//
// Example:
//
//	shipmentID := kernel.NewUUID()
//	destination, _ := kernel.NewGeoPoint(30.0444, 31.2357)
//	cmd, err := NewCreateShipmentCommand(shipmentID, ownerID, "laptop",
//	    "John Smith", "Egypt", "12 Tahrir Square, Cairo", 2.5, destination)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	handler := NewCreateShipmentCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create shipment: %w", err)
//	}
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID      kernel.UUID
	ownerID         kernel.UUID
	title           string
	receiverName    string
	receiverCountry string
	receiverAddress string
	weight          float64
	location        kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to register a new shipment.
// Validates identifiers, required receiver fields, a positive weight, and
// the destination coordinates. Returns an error if any validation fails.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	ownerID kernel.UUID,
	title string,
	receiverName string,
	receiverCountry string,
	receiverAddress string,
	weight float64,
	location kernel.GeoPoint,
) (CreateShipmentCommand, error) {
	command := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setOwnerID(ownerID),
		command.setTitle(title),
		command.setReceiverName(receiverName),
		command.setReceiverCountry(receiverCountry),
		command.setReceiverAddress(receiverAddress),
		command.setWeight(weight),
		command.setLocation(location),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OwnerID returns the identifier of the user creating the shipment.
func (c CreateShipmentCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Title returns the shipment title.
func (c CreateShipmentCommand) Title() string {
	return c.title
}

// ReceiverName returns the receiver's name.
func (c CreateShipmentCommand) ReceiverName() string {
	return c.receiverName
}

// ReceiverCountry returns the receiver's country.
func (c CreateShipmentCommand) ReceiverCountry() string {
	return c.receiverCountry
}

// ReceiverAddress returns the receiver's street address.
func (c CreateShipmentCommand) ReceiverAddress() string {
	return c.receiverAddress
}

// Weight returns the shipment weight.
func (c CreateShipmentCommand) Weight() float64 {
	return c.weight
}

// Location returns the delivery destination coordinates.
func (c CreateShipmentCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	c.ownerID = ownerID
	return nil
}

func (c *CreateShipmentCommand) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	c.title = title
	return nil
}

func (c *CreateShipmentCommand) setReceiverName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("receiver_name")
	}
	c.receiverName = name
	return nil
}

func (c *CreateShipmentCommand) setReceiverCountry(country string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("receiver_country")
	}
	c.receiverCountry = country
	return nil
}

func (c *CreateShipmentCommand) setReceiverAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("receiver_address")
	}
	c.receiverAddress = address
	return nil
}

func (c *CreateShipmentCommand) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidError("weight")
	}
	c.weight = weight
	return nil
}

func (c *CreateShipmentCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
