package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetSubscriptionsQueryIsNotConstructed = errors.New(
	"GetSubscriptionsQuery must be created via NewGetSubscriptionsQuery constructor",
)

// GetSubscriptionsQuery lists the webhook subscriptions of one owner.
type GetSubscriptionsQuery struct {
	ownerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSubscriptionsQuery creates a listing query for the given owner.
func NewGetSubscriptionsQuery(ownerID kernel.UUID) (GetSubscriptionsQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetSubscriptionsQuery{}, err
	}

	return GetSubscriptionsQuery{
		ownerID: ownerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSubscriptionsQuery) Validate() error {
	return q.guard.Validate(ErrGetSubscriptionsQueryIsNotConstructed)
}

// OwnerID returns the owner whose subscriptions are listed.
func (q GetSubscriptionsQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// SubscriptionQueryResponse represents one subscription row.
type SubscriptionQueryResponse struct {
	ID        kernel.UUID
	EventKind string
	URL       string
	Headers   map[string]string
	MaxRetry  int
}
