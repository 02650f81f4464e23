package shipment

import "time"

// dateLayout is the wire format for the snapshot's date fields.
const dateLayout = "2006-01-02"

// Snapshot is the flat payload captured from a shipment at the moment of a
// state transition and delivered to subscribers. Field names and presence are
// part of the external contract; date fields are serialized as YYYY-MM-DD and
// null when unset.
//
// A snapshot is taken once, at transition time, and never updated: later
// mutations to the shipment do not alter an already-dispatched payload.
type Snapshot struct {
	Title                 string  `json:"title"`
	ReceiverName          string  `json:"receiver_name"`
	ReceiverCountry       string  `json:"receiver_country"`
	ReceiverAddress       string  `json:"receiver_address"`
	Weight                float64 `json:"weight"`
	State                 string  `json:"state"`
	TrackingID            string  `json:"tracking_id"`
	EstimatedShippingDate *string `json:"estimated_shipping_date"`
	ScheduledAt           *string `json:"scheduled_at"`
	Lat                   float64 `json:"lat"`
	Lon                   float64 `json:"lon"`
}

// formatDate renders an optional timestamp as a wire date, or nil when unset.
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
