package shipment

import (
	"errors"
	"fmt"
	"strings"
)

// State represents the lifecycle state of a shipment.
// It implements a state machine with a fixed, one-directional transition
// chain; every edge moves the shipment one step closer to delivery and
// Delivered is terminal.
//
// State transitions:
//
//	PENDING ──> SCHEDULED ──> PREPARED ──> DELIVERED
//
// No self-transitions, no skipped stages, no backward edges.
// State names are part of the external payload contract subscribers depend
// on, so State is string-typed and stored verbatim.
type State string

const (
	// Pending is the initial state of every shipment at creation.
	Pending State = "PENDING"

	// Scheduled indicates the shipment delivery has been scheduled and an
	// estimated shipping date computed.
	Scheduled State = "SCHEDULED"

	// Prepared indicates the shipment has been prepared for handover to a
	// driver.
	Prepared State = "PREPARED"

	// Delivered is the terminal state with no outgoing transitions.
	Delivered State = "DELIVERED"
)

// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid state transition")

// InvalidTransitionError reports a requested state change that violates the
// transition graph. It is surfaced synchronously to the caller; the shipment
// is left unmodified.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change state from %s to %s", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// state pair.
func NewInvalidTransitionError(from State, to State) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// transitionGraph maps each state to its legal successors.
// Delivered has none: it is terminal.
func transitionGraph() map[State][]State {
	return map[State][]State{
		Pending:   {Scheduled},
		Scheduled: {Prepared},
		Prepared:  {Delivered},
		Delivered: {},
	}
}

// ParseState normalizes caller-supplied input into a State.
// Input is upper-cased before matching, mirroring the tolerance the external
// API has always had. Returns an InvalidTransitionError-unrelated validation
// error for unknown names.
func ParseState(s string) (State, error) {
	state := State(strings.ToUpper(s))
	if err := state.Validate(); err != nil {
		return "", err
	}
	return state, nil
}

// Validate checks that the State value is one of the fixed enumeration.
func (s State) Validate() error {
	switch s {
	case Pending, Scheduled, Prepared, Delivered:
		return nil
	default:
		return fmt.Errorf("%q is not a valid shipment state", string(s))
	}
}

// String returns the state name. Implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// CanTransitionTo checks whether target is an immediate successor of s in the
// fixed transition graph. Any other pair (self-transitions, transitions out
// of Delivered, skipped stages, backward edges) fails with
// InvalidTransitionError(s, target).
func (s State) CanTransitionTo(target State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	for _, next := range transitionGraph()[s] {
		if next == target {
			return nil
		}
	}

	return NewInvalidTransitionError(s, target)
}

// TransitionTo returns the target state after validating the transition.
// Returns ("", error) when the transition is not allowed.
func (s State) TransitionTo(target State) (State, error) {
	if err := s.CanTransitionTo(target); err != nil {
		return "", err
	}

	return target, nil
}
