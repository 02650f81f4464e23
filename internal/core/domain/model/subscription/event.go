package subscription

import (
	"strings"

	"shipping/internal/pkg/errs"
)

// EventKind identifies a notification event a subscriber can register for.
type EventKind string

const (
	// ShipmentStateChanged fires every time a shipment completes a state
	// transition through the update-state operation.
	ShipmentStateChanged EventKind = "SHIPMENT_STATE_CHANGED"
)

func eventKinds() []EventKind {
	return []EventKind{ShipmentStateChanged}
}

// ParseEventKind converts a raw string into a known EventKind.
// Matching is case-insensitive.
func ParseEventKind(raw string) (EventKind, error) {
	kind := EventKind(strings.ToUpper(raw))
	if err := kind.Validate(); err != nil {
		return "", err
	}

	return kind, nil
}

// Validate checks that the EventKind is one of the known kinds.
func (k EventKind) Validate() error {
	for _, known := range eventKinds() {
		if k == known {
			return nil
		}
	}

	return errs.NewValueIsInvalidError("event_kind")
}

// String returns the wire representation of the EventKind.
func (k EventKind) String() string {
	return string(k)
}
