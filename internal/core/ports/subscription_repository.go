package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/subscription"
)

// SubscriptionRepository defines the persistence contract for webhook
// subscription aggregates. A user holds at most one subscription per event
// kind, so Upsert replaces an existing registration in place.
type SubscriptionRepository interface {
	// Upsert stores the subscription, replacing an existing one for the same
	// owner and event kind.
	Upsert(ctx context.Context, aggregate *subscription.Subscription) error

	// Delete removes the subscription of the given owner for the given event
	// kind. Returns errs.ObjectNotFoundError when none exists.
	Delete(ctx context.Context, ownerID kernel.UUID, eventKind subscription.EventKind) error

	// GetByOwnerAndKind retrieves the subscription of the given owner for the
	// given event kind. Returns errs.ObjectNotFoundError when none exists.
	GetByOwnerAndKind(ctx context.Context, ownerID kernel.UUID, eventKind subscription.EventKind) (*subscription.Subscription, error)
}
