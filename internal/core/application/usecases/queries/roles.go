// Package queries contains read operations of the CQRS architecture.
// Query handlers bypass the domain model and read projection rows straight
// from the database.
package queries

import (
	"strings"

	"shipping/internal/pkg/errs"
)

// Role is the caller's role as asserted by the upstream identity layer.
// It controls which shipments a listing query may return.
type Role string

const (
	// RoleAdmin sees every shipment.
	RoleAdmin Role = "ADMIN"
	// RoleOwner sees shipments they created.
	RoleOwner Role = "OWNER"
	// RoleDriver sees shipments assigned to them.
	RoleDriver Role = "DRIVER"
)

// ParseRole converts a raw string into a known Role.
// Matching is case-insensitive.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(raw))
	if err := role.Validate(); err != nil {
		return "", err
	}

	return role, nil
}

// Validate checks that the Role is one of the known roles.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleOwner, RoleDriver:
		return nil
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

// String returns the wire representation of the Role.
func (r Role) String() string {
	return string(r)
}
