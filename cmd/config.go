package cmd

import (
	"fmt"
	"strconv"

	"shipping/internal/core/domain/model/kernel"
)

// Defaults for the numeric knobs when the environment leaves them unset.
const (
	defaultSystemLoad        = 0.5
	defaultDispatchBatchSize = 20
	defaultDispatchWorkers   = 4
)

// Config carries the raw environment configuration of the service.
// Values are kept as strings the way they arrive from the environment;
// numeric knobs are parsed on demand through the accessor methods.
type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	StoreLat          string
	StoreLon          string
	SystemLoad        string
	DispatchBatchSize string
	DispatchWorkers   string
}

// DSN assembles the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// StoreLocation parses the dispatching store coordinates.
func (c Config) StoreLocation() (kernel.GeoPoint, error) {
	lat, err := strconv.ParseFloat(c.StoreLat, 64)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("parse STORE_LAT: %w", err)
	}
	lon, err := strconv.ParseFloat(c.StoreLon, 64)
	if err != nil {
		return kernel.GeoPoint{}, fmt.Errorf("parse STORE_LON: %w", err)
	}

	return kernel.NewGeoPoint(lat, lon)
}

// SystemLoadValue parses the 0..1 utilization factor fed to the delivery
// date estimator.
func (c Config) SystemLoadValue() (float64, error) {
	if c.SystemLoad == "" {
		return defaultSystemLoad, nil
	}

	load, err := strconv.ParseFloat(c.SystemLoad, 64)
	if err != nil {
		return 0, fmt.Errorf("parse SYSTEM_LOAD: %w", err)
	}
	return load, nil
}

// DispatchBatchSizeValue parses how many delivery tasks one dispatch pass
// may claim.
func (c Config) DispatchBatchSizeValue() (int, error) {
	if c.DispatchBatchSize == "" {
		return defaultDispatchBatchSize, nil
	}

	size, err := strconv.Atoi(c.DispatchBatchSize)
	if err != nil {
		return 0, fmt.Errorf("parse DISPATCH_BATCH_SIZE: %w", err)
	}
	return size, nil
}

// DispatchWorkersValue parses the webhook worker pool size.
func (c Config) DispatchWorkersValue() (int, error) {
	if c.DispatchWorkers == "" {
		return defaultDispatchWorkers, nil
	}

	workers, err := strconv.Atoi(c.DispatchWorkers)
	if err != nil {
		return 0, fmt.Errorf("parse DISPATCH_WORKERS: %w", err)
	}
	return workers, nil
}
