package http

import (
	"encoding/json"
	"time"

	"shipping/internal/core/application/usecases/queries"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateShipmentRequest is the body of POST /api/v1/shipments.
type CreateShipmentRequest struct {
	Title           string  `json:"title"`
	ReceiverName    string  `json:"receiver_name"`
	ReceiverCountry string  `json:"receiver_country"`
	ReceiverAddress string  `json:"receiver_address"`
	Weight          float64 `json:"weight"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lon"`
}

// CreateShipmentResponse returns the identifier of a freshly registered
// shipment. The tracking token is generated inside the aggregate; owners
// read it back through the shipment listing.
type CreateShipmentResponse struct {
	ID string `json:"id"`
}

// UpdateShipmentStateRequest is the body of the update_state endpoint.
type UpdateShipmentStateRequest struct {
	State string `json:"state"`
}

// SubscribeEventRequest is the body of PUT /api/v1/events.
// Headers arrive as a raw JSON object and are validated strictly before the
// subscription is stored. MaxRetry falls back to the subscription default
// when absent.
type SubscribeEventRequest struct {
	EventKind string          `json:"event_kind"`
	URL       string          `json:"url"`
	Headers   json.RawMessage `json:"headers"`
	MaxRetry  *int            `json:"max_retry"`
}

// ShipmentResponse is one shipment row as returned by the read endpoints.
type ShipmentResponse struct {
	ID                    string  `json:"id"`
	TrackingID            string  `json:"tracking_id"`
	OwnerID               string  `json:"owner_id"`
	DriverID              *string `json:"driver_id"`
	Title                 string  `json:"title"`
	ReceiverName          string  `json:"receiver_name"`
	ReceiverCountry       string  `json:"receiver_country"`
	ReceiverAddress       string  `json:"receiver_address"`
	Weight                float64 `json:"weight"`
	State                 string  `json:"state"`
	ScheduledAt           *string `json:"scheduled_at"`
	EstimatedShippingDate *string `json:"estimated_shipping_date"`
	Lat                   float64 `json:"lat"`
	Lon                   float64 `json:"lon"`
}

// SubscriptionResponse is one subscription row as returned by GET /api/v1/events.
type SubscriptionResponse struct {
	ID        string            `json:"id"`
	EventKind string            `json:"event_kind"`
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers"`
	MaxRetry  int               `json:"max_retry"`
}

func toShipmentResponse(row queries.ShipmentQueryResponse) ShipmentResponse {
	resp := ShipmentResponse{
		ID:              row.ID.String(),
		TrackingID:      row.TrackingID,
		OwnerID:         row.OwnerID.String(),
		Title:           row.Title,
		ReceiverName:    row.ReceiverName,
		ReceiverCountry: row.ReceiverCountry,
		ReceiverAddress: row.ReceiverAddress,
		Weight:          row.Weight,
		State:           row.State,
		Lat:             row.Lat,
		Lon:             row.Lon,
	}

	if row.DriverID != nil {
		driverID := row.DriverID.String()
		resp.DriverID = &driverID
	}
	if row.ScheduledAt != nil {
		scheduledAt := row.ScheduledAt.UTC().Format(time.RFC3339)
		resp.ScheduledAt = &scheduledAt
	}
	if row.EstimatedShippingDate != nil {
		estimated := row.EstimatedShippingDate.UTC().Format("2006-01-02")
		resp.EstimatedShippingDate = &estimated
	}

	return resp
}

func toSubscriptionResponse(row queries.SubscriptionQueryResponse) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        row.ID.String(),
		EventKind: row.EventKind,
		URL:       row.URL,
		Headers:   row.Headers,
		MaxRetry:  row.MaxRetry,
	}
}
