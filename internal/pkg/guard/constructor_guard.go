// Package guard provides the constructor-guard pattern used by value objects,
// commands, and queries across the application.
//
// Embedding a ConstructorGuard in a struct makes zero-value instances
// distinguishable from properly constructed ones: only the designated
// constructor sets the guard, so Validate fails on anything created by direct
// struct initialization. This keeps domain invariants enforceable even when a
// struct leaks through a package boundary.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// The zero value is "not constructed" and fails validation.
//
// Example:
//
//	type TrackingID struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTrackingID() TrackingID {
//	    return TrackingID{value: generate(), guard: guard.NewConstructorGuard()}
//	}
//
//	func (t TrackingID) Validate() error {
//	    return t.guard.Validate(ErrTrackingIDIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed. Call it from the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
