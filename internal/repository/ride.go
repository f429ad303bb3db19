package repository

import (
	"context"

	"rideshare/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride. Returns ErrDuplicateID if the ride ID
	// is already taken.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetByUser retrieves all rides belonging to a user, in insertion order.
	GetByUser(ctx context.Context, userID string) ([]*domain.Ride, error)

	// Update replaces an existing ride. Returns ErrNotFound if the ride
	// does not exist.
	Update(ctx context.Context, ride *domain.Ride) error
}
