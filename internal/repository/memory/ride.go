// Package memory provides in-memory repository implementations used in
// development mode, where the service runs without PostgreSQL.
package memory

import (
	"context"
	"sync"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// RideRepository is an in-memory implementation of repository.RideRepository.
type RideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride
	order []string // insertion order of ride IDs
}

// NewRideRepository creates an empty in-memory ride repository.
func NewRideRepository() *RideRepository {
	return &RideRepository{rides: make(map[string]*domain.Ride)}
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rides[ride.ID]; ok {
		return repository.ErrDuplicateID
	}

	stored := cloneRide(ride)
	r.rides[ride.ID] = stored
	r.order = append(r.order, ride.ID)
	return nil
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ride, ok := r.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneRide(ride), nil
}

// GetByUser retrieves all rides belonging to a user, in insertion order.
func (r *RideRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Ride, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var rides []*domain.Ride
	for _, id := range r.order {
		if ride := r.rides[id]; ride.UserID == userID {
			rides = append(rides, cloneRide(ride))
		}
	}
	return rides, nil
}

// Update replaces an existing ride.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rides[ride.ID]; !ok {
		return repository.ErrNotFound
	}
	r.rides[ride.ID] = cloneRide(ride)
	return nil
}

// cloneRide deep-copies a ride so callers never share memory with the store.
func cloneRide(ride *domain.Ride) *domain.Ride {
	clone := *ride
	if ride.Payment != nil {
		payment := *ride.Payment
		clone.Payment = &payment
	}
	if ride.Rating != nil {
		rating := *ride.Rating
		clone.Rating = &rating
	}
	return &clone
}
