package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetShipmentsQueryHandler lists shipment rows visible to the caller.
type GetShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentsQueryHandler creates a handler for shipment listings.
// Requires a GORM database connection for query execution.
func NewGetShipmentsQueryHandler(db *gorm.DB) GetShipmentsQueryHandler {
	return GetShipmentsQueryHandler{db: db}
}

// Handle executes the listing query with the role-based visibility filter.
// Results are sorted by creation time, newest first.
func (h GetShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentsQuery,
) ([]ShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	baseSQL := `
		SELECT ` + shipmentColumns + `
		FROM shipments
	`

	tx := h.db.WithContext(ctx)
	var rowsQuery *gorm.DB
	switch query.Role() {
	case RoleAdmin:
		rowsQuery = tx.Raw(baseSQL + ` ORDER BY created_at DESC`)
	case RoleOwner:
		rowsQuery = tx.Raw(baseSQL+` WHERE owner_id = ? ORDER BY created_at DESC`,
			query.UserID().Bytes())
	case RoleDriver:
		rowsQuery = tx.Raw(baseSQL+` WHERE driver_id = ? ORDER BY created_at DESC`,
			query.UserID().Bytes())
	}

	rows, err := rowsQuery.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]ShipmentQueryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanShipmentRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		shipments = append(shipments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
