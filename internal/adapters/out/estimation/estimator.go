// Package estimation predicts delivery durations for shipments.
//
// The estimator replaces an externally trained regression model with its
// linear form: days = intercept + distanceCoef*distance_km + loadCoef*load.
// Distance is the great-circle distance from the dispatching store to the
// shipment destination; load is a 0..1 utilization factor supplied by
// configuration.
package estimation

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

const (
	defaultIntercept    = 1.0
	defaultDistanceCoef = 0.016
	defaultLoadCoef     = 3.0
)

var _ ports.DeliveryEstimator = &LinearEstimator{}

// LinearEstimator computes delivery duration with a linear model over the
// store-to-destination distance and the current system load.
type LinearEstimator struct {
	store        kernel.GeoPoint
	systemLoad   float64
	intercept    float64
	distanceCoef float64
	loadCoef     float64
}

// NewLinearEstimator creates an estimator anchored at the given store
// location. systemLoad must be within [0..1].
func NewLinearEstimator(store kernel.GeoPoint, systemLoad float64) (*LinearEstimator, error) {
	if err := store.Validate(); err != nil {
		return nil, err
	}
	if systemLoad < 0 || systemLoad > 1 {
		return nil, errs.NewValueIsOutOfRangeError("systemLoad", systemLoad, 0, 1)
	}

	return &LinearEstimator{
		store:        store,
		systemLoad:   systemLoad,
		intercept:    defaultIntercept,
		distanceCoef: defaultDistanceCoef,
		loadCoef:     defaultLoadCoef,
	}, nil
}

// EstimateDays predicts the delivery duration in days for the destination.
// The result is fractional and never less than the model intercept.
func (e *LinearEstimator) EstimateDays(
	_ context.Context,
	destination kernel.GeoPoint,
) (float64, error) {
	distanceKm, err := e.store.DistanceKm(destination)
	if err != nil {
		return 0, err
	}

	return e.intercept + e.distanceCoef*distanceKm + e.loadCoef*e.systemLoad, nil
}
