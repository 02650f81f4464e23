package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

const shipmentColumns = `
	id,
	tracking_id,
	owner_id,
	driver_id,
	title,
	receiver_name,
	receiver_country,
	receiver_address,
	weight,
	state,
	scheduled_at,
	estimated_shipping_date,
	lat,
	lon
`

// GetShipmentQueryHandler retrieves a single shipment row by tracking token.
//
// Example:
//
//	handler := NewGetShipmentQueryHandler(db)
//	trackingID, _ := kernel.TrackingIDFromString(token)
//	query, _ := NewGetShipmentQuery(trackingID)
//
//	shipmentRow, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown tracking token
//	}
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for tracking lookups.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the tracking lookup.
// Returns errs.ObjectNotFoundError when no shipment carries the token.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (ShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ShipmentQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+shipmentColumns+`
		FROM shipments
		WHERE tracking_id = ?
	`, query.TrackingID().String()).Rows()
	if err != nil {
		return ShipmentQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ShipmentQueryResponse{}, err
		}
		return ShipmentQueryResponse{}, errs.NewObjectNotFoundError(
			"tracking_id", query.TrackingID().String())
	}

	return scanShipmentRow(rows)
}

func scanShipmentRow(rows *sql.Rows) (ShipmentQueryResponse, error) {
	var (
		resp     ShipmentQueryResponse
		id       uuid.UUID
		ownerID  uuid.UUID
		driverID uuid.NullUUID

		scheduledAt           sql.NullTime
		estimatedShippingDate sql.NullTime
	)

	err := rows.Scan(
		&id,
		&resp.TrackingID,
		&ownerID,
		&driverID,
		&resp.Title,
		&resp.ReceiverName,
		&resp.ReceiverCountry,
		&resp.ReceiverAddress,
		&resp.Weight,
		&resp.State,
		&scheduledAt,
		&estimatedShippingDate,
		&resp.Lat,
		&resp.Lon,
	)
	if err != nil {
		return ShipmentQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ShipmentQueryResponse{}, err
	}
	if resp.OwnerID, err = kernel.UUIDFromBytes(ownerID[:]); err != nil {
		return ShipmentQueryResponse{}, err
	}
	if driverID.Valid {
		driver, idErr := kernel.UUIDFromBytes(driverID.UUID[:])
		if idErr != nil {
			return ShipmentQueryResponse{}, idErr
		}
		resp.DriverID = &driver
	}
	if scheduledAt.Valid {
		t := scheduledAt.Time
		resp.ScheduledAt = &t
	}
	if estimatedShippingDate.Valid {
		t := estimatedShippingDate.Time
		resp.EstimatedShippingDate = &t
	}

	return resp, nil
}
