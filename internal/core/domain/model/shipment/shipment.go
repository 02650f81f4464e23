package shipment

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through NewShipment or RestoreShipment. This ensures all
	// shipments are properly validated.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")
)

// Shipment is the aggregate root for a physical shipment moving through the
// delivery lifecycle. It owns the shipment data and enforces the legal
// transition graph.
//
// Shipment follows these invariants:
//   - state is always one of the fixed State enumeration
//   - state is mutated only through Schedule and UpdateState, which walk the
//     one-directional transition chain
//   - the tracking token is assigned at creation and immutable
//   - estimatedShippingDate is set once, at the Pending→Scheduled transition
//   - weight is positive; title and receiver fields are non-empty
//
// Private fields keep the aggregate encapsulated; invalid transitions leave
// it unmodified.
type Shipment struct {
	id         kernel.UUID
	trackingID kernel.TrackingID
	ownerID    kernel.UUID
	driverID   *kernel.UUID

	title           string
	receiverName    string
	receiverCountry string
	receiverAddress string
	weight          float64
	location        kernel.GeoPoint

	state                 State
	scheduledAt           *time.Time
	estimatedShippingDate *time.Time

	isConstructed bool
}

// NewShipment creates a new Shipment in Pending state with a freshly
// generated tracking token. All invariants are validated; on any violation a
// joined validation error is returned and no shipment is created.
func NewShipment(
	id kernel.UUID,
	ownerID kernel.UUID,
	title string,
	receiverName string,
	receiverCountry string,
	receiverAddress string,
	weight float64,
	location kernel.GeoPoint,
) (*Shipment, error) {
	shipment := &Shipment{
		trackingID:    kernel.NewTrackingID(),
		state:         Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setOwnerID(ownerID),
		shipment.setTitle(title),
		shipment.setReceiverName(receiverName),
		shipment.setReceiverCountry(receiverCountry),
		shipment.setReceiverAddress(receiverAddress),
		shipment.setWeight(weight),
		shipment.setLocation(location),
	); err != nil {
		return nil, err
	}

	return shipment, nil
}

// RestoreShipment reconstructs a Shipment from persistence, including its
// current state, schedule timestamps, and optional driver assignment.
// Used by repository adapters only.
func RestoreShipment(
	id kernel.UUID,
	trackingID kernel.TrackingID,
	ownerID kernel.UUID,
	driverID *kernel.UUID,
	title string,
	receiverName string,
	receiverCountry string,
	receiverAddress string,
	weight float64,
	location kernel.GeoPoint,
	state State,
	scheduledAt *time.Time,
	estimatedShippingDate *time.Time,
) (*Shipment, error) {
	shipment := &Shipment{
		isConstructed: true,
	}

	if err := errors.Join(
		shipment.setID(id),
		shipment.setTrackingID(trackingID),
		shipment.setOwnerID(ownerID),
		shipment.setTitle(title),
		shipment.setReceiverName(receiverName),
		shipment.setReceiverCountry(receiverCountry),
		shipment.setReceiverAddress(receiverAddress),
		shipment.setWeight(weight),
		shipment.setLocation(location),
		shipment.setState(state),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := shipment.AssignDriver(*driverID); err != nil {
			return nil, err
		}
	}

	shipment.scheduledAt = scheduledAt
	shipment.estimatedShippingDate = estimatedShippingDate

	return shipment, nil
}

// Validate ensures the Shipment instance was properly constructed.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}

	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's internal unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// TrackingID returns the shipment's immutable tracking token.
func (s *Shipment) TrackingID() kernel.TrackingID {
	return s.trackingID
}

// OwnerID returns the identifier of the user that created the shipment.
func (s *Shipment) OwnerID() kernel.UUID {
	return s.ownerID
}

// Driver returns the assigned driver's ID, or nil when unassigned.
func (s *Shipment) Driver() *kernel.UUID {
	return s.driverID
}

// Title returns the shipment title.
func (s *Shipment) Title() string {
	return s.title
}

// ReceiverName returns the receiver's name.
func (s *Shipment) ReceiverName() string {
	return s.receiverName
}

// ReceiverCountry returns the receiver's country.
func (s *Shipment) ReceiverCountry() string {
	return s.receiverCountry
}

// ReceiverAddress returns the receiver's street address.
func (s *Shipment) ReceiverAddress() string {
	return s.receiverAddress
}

// Weight returns the shipment weight.
func (s *Shipment) Weight() float64 {
	return s.weight
}

// Location returns the delivery destination coordinates.
func (s *Shipment) Location() kernel.GeoPoint {
	return s.location
}

// State returns the current lifecycle state.
func (s *Shipment) State() State {
	return s.state
}

// ScheduledAt returns the time the shipment was scheduled, or nil before the
// Pending→Scheduled transition.
func (s *Shipment) ScheduledAt() *time.Time {
	return s.scheduledAt
}

// EstimatedShippingDate returns the estimated delivery date computed at
// scheduling time, or nil before the Pending→Scheduled transition.
func (s *Shipment) EstimatedShippingDate() *time.Time {
	return s.estimatedShippingDate
}

// Schedule transitions the shipment from Pending to Scheduled.
//
// On success it records the scheduling time and computes the estimated
// shipping date from the estimator's predicted days: the estimate is
// now + estimatedDays, carried at full precision so the resulting calendar
// date reflects fractional days.
//
// Returns InvalidTransitionError when the shipment is not in Pending;
// the shipment is left unmodified in that case.
//
// Schedule deliberately emits no notification event; only UpdateState is
// wired to dispatch.
func (s *Shipment) Schedule(now time.Time, estimatedDays float64) error {
	newState, err := s.state.TransitionTo(Scheduled)
	if err != nil {
		return err
	}

	estimated := now.Add(time.Duration(estimatedDays * 24 * float64(time.Hour)))

	s.state = newState
	s.scheduledAt = &now
	s.estimatedShippingDate = &estimated
	return nil
}

// UpdateState transitions the shipment to target.
//
// The transition must be an immediate successor edge in the fixed graph;
// anything else fails with InvalidTransitionError and leaves the shipment
// unmodified. Dispatching the SHIPMENT_STATE_CHANGED notification is the
// caller's concern (see the update-state command handler).
func (s *Shipment) UpdateState(target State) error {
	newState, err := s.state.TransitionTo(target)
	if err != nil {
		return err
	}

	s.state = newState
	return nil
}

// AssignDriver attaches a driver reference to the shipment.
// Drivers may be assigned or replaced at any lifecycle stage.
func (s *Shipment) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	s.driverID = &driverID
	return nil
}

// Snapshot captures the flat notification payload at the current moment.
// The returned value is independent of the aggregate: later mutations do not
// affect snapshots already taken.
func (s *Shipment) Snapshot() Snapshot {
	return Snapshot{
		Title:                 s.title,
		ReceiverName:          s.receiverName,
		ReceiverCountry:       s.receiverCountry,
		ReceiverAddress:       s.receiverAddress,
		Weight:                s.weight,
		State:                 s.state.String(),
		TrackingID:            s.trackingID.String(),
		EstimatedShippingDate: formatDate(s.estimatedShippingDate),
		ScheduledAt:           formatDate(s.scheduledAt),
		Lat:                   s.location.Lat(),
		Lon:                   s.location.Lon(),
	}
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setTrackingID(trackingID kernel.TrackingID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	s.trackingID = trackingID
	return nil
}

func (s *Shipment) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	s.ownerID = ownerID
	return nil
}

func (s *Shipment) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	s.title = title
	return nil
}

func (s *Shipment) setReceiverName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("receiver_name")
	}
	s.receiverName = name
	return nil
}

func (s *Shipment) setReceiverCountry(country string) error {
	if country == "" {
		return errs.NewValueIsRequiredError("receiver_country")
	}
	s.receiverCountry = country
	return nil
}

func (s *Shipment) setReceiverAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("receiver_address")
	}
	s.receiverAddress = address
	return nil
}

func (s *Shipment) setWeight(weight float64) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%f is not greater than 0", weight))
	}
	s.weight = weight
	return nil
}

func (s *Shipment) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}

func (s *Shipment) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	s.state = state
	return nil
}
