// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. This package implements the repository pattern
// for the shipment domain aggregate, handling the conversion between domain
// entities and database representations.
package shipmentrepo

import (
	"time"

	"github.com/google/uuid"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The tracking token carries a unique index: it is the public
// lookup key for the tracking endpoint.
type ShipmentDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID string     `gorm:"type:varchar(32);uniqueIndex"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;index"`
	DriverID   *uuid.UUID `gorm:"type:uuid;index"`

	Title           string
	ReceiverName    string
	ReceiverCountry string
	ReceiverAddress string
	Weight          float64
	Lat             float64
	Lon             float64

	State                 string `gorm:"type:varchar(16);index"`
	ScheduledAt           *time.Time
	EstimatedShippingDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain aggregate to its database
// representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return ShipmentDTO{
		ID:                    aggregate.ID().Bytes(),
		TrackingID:            aggregate.TrackingID().String(),
		OwnerID:               aggregate.OwnerID().Bytes(),
		DriverID:              driverID,
		Title:                 aggregate.Title(),
		ReceiverName:          aggregate.ReceiverName(),
		ReceiverCountry:       aggregate.ReceiverCountry(),
		ReceiverAddress:       aggregate.ReceiverAddress(),
		Weight:                aggregate.Weight(),
		Lat:                   aggregate.Location().Lat(),
		Lon:                   aggregate.Location().Lon(),
		State:                 aggregate.State().String(),
		ScheduledAt:           aggregate.ScheduledAt(),
		EstimatedShippingDate: aggregate.EstimatedShippingDate(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate using
// RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := kernel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lon)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(
		id,
		trackingID,
		ownerID,
		driverID,
		dto.Title,
		dto.ReceiverName,
		dto.ReceiverCountry,
		dto.ReceiverAddress,
		dto.Weight,
		location,
		shipment.State(dto.State),
		dto.ScheduledAt,
		dto.EstimatedShippingDate,
	)
}
