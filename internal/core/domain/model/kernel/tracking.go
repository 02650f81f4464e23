package kernel

import (
	"strings"

	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
)

// trackingIDLength is the length of a tracking token: a version 4 UUID with
// the dashes stripped, 32 hexadecimal characters.
const trackingIDLength = 32

// ErrTrackingIDIsNotConstructed indicates a TrackingID that was not created
// through NewTrackingID or TrackingIDFromString.
var ErrTrackingIDIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking ID must be created via NewTrackingID or TrackingIDFromString")

// TrackingID is the opaque tracking token assigned to a shipment at creation.
// It is the shipment's external lookup key: subscribers and API callers
// reference shipments by tracking token, never by internal UUID. The token is
// immutable for the lifetime of the shipment.
//
// Example:
//
//	id := kernel.NewTrackingID()
//	fmt.Println(id.String()) // e.g. "550e8400e29b41d4a716446655440000"
type TrackingID struct {
	value string
}

// NewTrackingID generates a fresh tracking token.
func NewTrackingID() TrackingID {
	return TrackingID{
		value: strings.ReplaceAll(uuid.NewString(), "-", ""),
	}
}

// TrackingIDFromString reconstructs a TrackingID from its stored form.
// Returns a validation error for anything that is not 32 lowercase hex
// characters.
func TrackingIDFromString(s string) (TrackingID, error) {
	if len(s) != trackingIDLength {
		return TrackingID{}, errs.NewValueIsInvalidError("tracking ID")
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return TrackingID{}, errs.NewValueIsInvalidError("tracking ID")
		}
	}

	return TrackingID{value: s}, nil
}

// String returns the token's string form. Implements fmt.Stringer.
func (t TrackingID) String() string {
	return t.value
}

// IsEqual compares two tracking tokens for equality.
func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

// Validate checks if the TrackingID was properly constructed.
// The zero value fails this validation.
func (t TrackingID) Validate() error {
	if t.value == "" {
		return ErrTrackingIDIsNotConstructed
	}
	return nil
}
