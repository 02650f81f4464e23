package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
)

// DeliveryEstimator predicts how many days a shipment will take to deliver
// to the given destination. Implementations may call an external model or
// compute the estimate locally.
type DeliveryEstimator interface {
	// EstimateDays returns the predicted delivery duration in days. The value
	// may be fractional.
	EstimateDays(ctx context.Context, destination kernel.GeoPoint) (float64, error)
}
