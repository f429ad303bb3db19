package service

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

// DriverService manages driver availability and positions.
type DriverService struct {
	driverRepo    repository.DriverRepository
	locationStore redis.LocationStoreInterface // optional
	cacheStore    *redis.CacheStore            // optional
}

// NewDriverService creates a new DriverService. locationStore and
// cacheStore may be nil.
func NewDriverService(
	driverRepo repository.DriverRepository,
	locationStore redis.LocationStoreInterface,
	cacheStore *redis.CacheStore,
) *DriverService {
	return &DriverService{
		driverRepo:    driverRepo,
		locationStore: locationStore,
		cacheStore:    cacheStore,
	}
}

// ListDrivers returns all registered drivers.
func (s *DriverService) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.driverRepo.GetAll(ctx)
}

// GetDriver retrieves a driver by ID.
func (s *DriverService) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}
	return s.driverRepo.GetByID(ctx, driverID)
}

// UpdateLocation records a driver's position and marks them available.
func (s *DriverService) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return ErrInvalidLocation
	}

	if err := s.driverRepo.UpdateLocation(ctx, driverID, lat, lng); err != nil {
		return err
	}
	if err := s.driverRepo.SetAvailability(ctx, driverID, true); err != nil {
		return err
	}

	if s.locationStore != nil {
		if err := s.locationStore.UpdateLocation(ctx, driverID, lat, lng); err != nil {
			return err
		}
	}
	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateDriver(ctx, driverID)
	}
	return nil
}

// SetDriverOffline removes the driver from matching.
func (s *DriverService) SetDriverOffline(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}

	if err := s.driverRepo.SetAvailability(ctx, driverID, false); err != nil {
		return err
	}
	if s.locationStore != nil {
		if err := s.locationStore.RemoveLocation(ctx, driverID); err != nil {
			return err
		}
	}
	return nil
}
