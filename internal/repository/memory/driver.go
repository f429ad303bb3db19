package memory

import (
	"context"
	"sync"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// DriverRepository is an in-memory implementation of repository.DriverRepository.
type DriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver
	order   []string
}

// NewDriverRepository creates an empty in-memory driver repository.
func NewDriverRepository() *DriverRepository {
	return &DriverRepository{drivers: make(map[string]*domain.Driver)}
}

// Create adds a new driver.
func (r *DriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[driver.ID]; ok {
		return repository.ErrDuplicateID
	}

	clone := *driver
	r.drivers[driver.ID] = &clone
	r.order = append(r.order, driver.ID)
	return nil
}

// GetByID retrieves a driver by ID.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	driver, ok := r.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *driver
	return &clone, nil
}

// GetAll retrieves all drivers in insertion order.
func (r *DriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]*domain.Driver, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.drivers[id]
		drivers = append(drivers, &clone)
	}
	return drivers, nil
}

// ApplyRating folds a rating into the driver's running average. The mutex
// serializes concurrent submissions for the same driver.
func (r *DriverRepository) ApplyRating(ctx context.Context, id string, value, priorWeight float64) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return 0, repository.ErrNotFound
	}

	driver.Rating = (driver.Rating*priorWeight + value) / (priorWeight + 1)
	driver.UpdatedAt = time.Now()
	return driver.Rating, nil
}

// UpdateLocation records the driver's last known position.
func (r *DriverRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Location = domain.Coordinates{Latitude: lat, Longitude: lng}
	driver.UpdatedAt = time.Now()
	return nil
}

// SetAvailability marks a driver as available for matching or not.
func (r *DriverRepository) SetAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Available = available
	driver.UpdatedAt = time.Now()
	return nil
}
