package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/delivery"
)

// DeliveryRepository defines the persistence contract for queued webhook
// delivery tasks.
type DeliveryRepository interface {
	// Add enqueues a new delivery task. Called inside the same transaction as
	// the state change that produced the task.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists the result of a delivery attempt.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// ClaimDue retrieves up to limit pending tasks due at the given time and
	// locks them against concurrent dispatchers for the duration of the
	// transaction. Rows already claimed by another dispatcher are skipped.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*delivery.Delivery, error)
}
