package repository

import (
	"context"

	"rideshare/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetAll retrieves all drivers.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// ApplyRating folds a new rating value into the driver's running
	// average using the smoothing formula
	// (avg*priorWeight + value) / (priorWeight + 1) and returns the new
	// average. The read-modify-write is serialized per driver by the
	// implementation.
	ApplyRating(ctx context.Context, id string, value, priorWeight float64) (float64, error)

	// UpdateLocation records the driver's last known position.
	UpdateLocation(ctx context.Context, id string, lat, lng float64) error

	// SetAvailability marks a driver as available for matching or not.
	SetAvailability(ctx context.Context, id string, available bool) error
}
