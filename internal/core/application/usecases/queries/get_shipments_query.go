package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentsQueryIsNotConstructed = errors.New(
	"GetShipmentsQuery must be created via NewGetShipmentsQuery constructor",
)

// GetShipmentsQuery lists shipments visible to the caller.
//
// Visibility follows the caller's role: admins see every shipment, owners
// see shipments they created, drivers see shipments assigned to them.
type GetShipmentsQuery struct {
	userID kernel.UUID
	role   Role

	guard guard.ConstructorGuard
}

// NewGetShipmentsQuery creates a listing query for the given caller.
func NewGetShipmentsQuery(userID kernel.UUID, role Role) (GetShipmentsQuery, error) {
	query := GetShipmentsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		userID.Validate(),
		role.Validate(),
	); err != nil {
		return GetShipmentsQuery{}, err
	}

	query.userID = userID
	query.role = role
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentsQueryIsNotConstructed)
}

// UserID returns the caller's identifier.
func (q GetShipmentsQuery) UserID() kernel.UUID {
	return q.userID
}

// Role returns the caller's role.
func (q GetShipmentsQuery) Role() Role {
	return q.role
}
