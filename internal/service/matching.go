package service

import (
	"context"
	"errors"
	"math/rand"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

// DriverMatcher selects a driver for a ride. Implementations encapsulate the
// selection policy so the ride lifecycle does not care how drivers are chosen.
type DriverMatcher interface {
	Match(ctx context.Context, ride *domain.Ride) (*domain.Driver, error)
}

// RandomMatcher selects uniformly at random among available drivers. It is a
// placeholder policy, not a dispatch algorithm.
type RandomMatcher struct {
	driverRepo repository.DriverRepository
}

// NewRandomMatcher creates a new RandomMatcher.
func NewRandomMatcher(driverRepo repository.DriverRepository) *RandomMatcher {
	return &RandomMatcher{driverRepo: driverRepo}
}

// Match picks a random available driver.
func (m *RandomMatcher) Match(ctx context.Context, ride *domain.Ride) (*domain.Driver, error) {
	drivers, err := m.driverRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	available := drivers[:0]
	for _, d := range drivers {
		if d.Available {
			available = append(available, d)
		}
	}

	if len(available) == 0 {
		return nil, ErrNoDriverAvailable
	}

	return available[rand.Intn(len(available))], nil
}

const defaultSearchRadiusKm = 5.0

// NearestMatcher selects the closest available driver to the ride's origin
// using the Redis geo index.
type NearestMatcher struct {
	locationStore redis.LocationStoreInterface
	driverRepo    repository.DriverRepository
	radiusKm      float64
}

// NewNearestMatcher creates a new NearestMatcher. A non-positive radius uses
// the default search radius.
func NewNearestMatcher(
	locationStore redis.LocationStoreInterface,
	driverRepo repository.DriverRepository,
	radiusKm float64,
) *NearestMatcher {
	if radiusKm <= 0 {
		radiusKm = defaultSearchRadiusKm
	}
	return &NearestMatcher{
		locationStore: locationStore,
		driverRepo:    driverRepo,
		radiusKm:      radiusKm,
	}
}

// Match returns the nearest available driver within the search radius.
func (m *NearestMatcher) Match(ctx context.Context, ride *domain.Ride) (*domain.Driver, error) {
	nearby, err := m.locationStore.NearestDrivers(ctx,
		ride.Origin.Latitude, ride.Origin.Longitude, m.radiusKm)
	if err != nil {
		return nil, err
	}

	for _, loc := range nearby {
		driver, err := m.driverRepo.GetByID(ctx, loc.DriverID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if !driver.Available {
			continue
		}
		return driver, nil
	}

	return nil, ErrNoDriverAvailable
}
