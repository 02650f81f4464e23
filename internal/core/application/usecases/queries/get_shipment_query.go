package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one shipment by its public tracking token.
// Possession of the token grants read access, so the query carries no
// caller identity.
type GetShipmentQuery struct {
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query for the shipment with the given
// tracking token.
func NewGetShipmentQuery(trackingID kernel.TrackingID) (GetShipmentQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		trackingID: trackingID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// TrackingID returns the tracking token to look up.
func (q GetShipmentQuery) TrackingID() kernel.TrackingID {
	return q.trackingID
}

// ShipmentQueryResponse represents one shipment row as exposed to readers.
type ShipmentQueryResponse struct {
	ID                    kernel.UUID
	TrackingID            string
	OwnerID               kernel.UUID
	DriverID              *kernel.UUID
	Title                 string
	ReceiverName          string
	ReceiverCountry       string
	ReceiverAddress       string
	Weight                float64
	State                 string
	ScheduledAt           *time.Time
	EstimatedShippingDate *time.Time
	Lat                   float64
	Lon                   float64
}
