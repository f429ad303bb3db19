package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

const (
	rideLockTTL = 10 * time.Second

	// defaultRatingPriorWeight smooths driver rating updates:
	// newAvg = (oldAvg*weight + value) / (weight + 1).
	defaultRatingPriorWeight = 10.0
)

// RideService enforces the ride state machine and ownership rules.
type RideService struct {
	rideRepo          repository.RideRepository
	driverRepo        repository.DriverRepository
	matcher           DriverMatcher
	lockStore         redis.LockStoreInterface // optional
	cacheStore        *redis.CacheStore        // optional
	notifier          *NotificationService     // optional
	ratingPriorWeight float64
}

// NewRideService creates a new RideService. lockStore, cacheStore, and
// notifier may be nil; a non-positive ratingPriorWeight uses the default.
func NewRideService(
	rideRepo repository.RideRepository,
	driverRepo repository.DriverRepository,
	matcher DriverMatcher,
	lockStore redis.LockStoreInterface,
	cacheStore *redis.CacheStore,
	notifier *NotificationService,
	ratingPriorWeight float64,
) *RideService {
	if ratingPriorWeight <= 0 {
		ratingPriorWeight = defaultRatingPriorWeight
	}
	return &RideService{
		rideRepo:          rideRepo,
		driverRepo:        driverRepo,
		matcher:           matcher,
		lockStore:         lockStore,
		cacheStore:        cacheStore,
		notifier:          notifier,
		ratingPriorWeight: ratingPriorWeight,
	}
}

// RequestRideRequest contains the parameters for requesting a ride.
type RequestRideRequest struct {
	UserID         string
	Origin         domain.GeoPoint
	Destination    domain.GeoPoint
	RideType       domain.RideType
	EstimatedPrice float64 // optional: 0 computes from the estimator
	EstimatedTime  int     // optional: 0 computes from the estimator
}

// RequestRide validates the request and creates a ride in pending state.
func (s *RideService) RequestRide(ctx context.Context, req RequestRideRequest) (*domain.Ride, error) {
	if req.UserID == "" {
		return nil, ErrInvalidUserID
	}
	if !isValidPoint(req.Origin) {
		return nil, ErrInvalidOrigin
	}
	if !isValidPoint(req.Destination) {
		return nil, ErrInvalidDestination
	}
	if !req.RideType.IsValid() {
		return nil, ErrInvalidRideType
	}
	if req.EstimatedTime < 0 {
		return nil, ErrInvalidEstimatedTime
	}

	estimate := EstimateTrip(req.Origin, req.Destination)

	estimatedTime := req.EstimatedTime
	if estimatedTime == 0 {
		estimatedTime = estimate.DurationMin
	}
	estimatedPrice := req.EstimatedPrice
	if estimatedPrice <= 0 {
		estimatedPrice = estimate.Fares.TierFare(req.RideType)
	}

	now := time.Now()
	ride := &domain.Ride{
		ID:             uuid.New().String(),
		UserID:         req.UserID,
		Origin:         req.Origin,
		Destination:    req.Destination,
		RideType:       req.RideType,
		EstimatedPrice: estimatedPrice,
		EstimatedTime:  estimatedTime,
		DistanceKm:     estimate.DistanceKm,
		Status:         domain.RideStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	return ride, nil
}

// AssignDriver selects a driver for the ride and moves it to
// driver_assigned. Re-assignment of an already assigned ride is permitted;
// rides past assignment are rejected.
func (s *RideService) AssignDriver(ctx context.Context, rideID, userID string) (*domain.Driver, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	var driver *domain.Driver
	err := s.withRideLock(ctx, rideID, func() error {
		ride, err := s.getOwnedRide(ctx, rideID, userID)
		if err != nil {
			return err
		}

		if ride.Status != domain.RideStatusPending && ride.Status != domain.RideStatusDriverAssigned {
			return ErrRideNotAssignable
		}

		driver, err = s.matcher.Match(ctx, ride)
		if err != nil {
			return err
		}

		ride.DriverID = driver.ID
		ride.Status = domain.RideStatusDriverAssigned
		ride.UpdatedAt = time.Now()

		if err := s.rideRepo.Update(ctx, ride); err != nil {
			return err
		}

		s.cacheDriver(ctx, driver)
		if s.notifier != nil {
			_ = s.notifier.NotifyDriverAssigned(ctx, ride, driver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return driver, nil
}

// UpdateStatus moves the ride to newStatus, enforcing the transition table.
func (s *RideService) UpdateStatus(ctx context.Context, rideID, userID string, newStatus domain.RideStatus) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	if !newStatus.IsValid() {
		return nil, ErrInvalidRideStatus
	}

	var updated *domain.Ride
	err := s.withRideLock(ctx, rideID, func() error {
		ride, err := s.getOwnedRide(ctx, rideID, userID)
		if err != nil {
			return err
		}

		if !ride.Status.CanTransitionTo(newStatus) {
			return ErrInvalidStatusTransition
		}

		ride.Status = newStatus
		ride.UpdatedAt = time.Now()

		if err := s.rideRepo.Update(ctx, ride); err != nil {
			return err
		}

		if s.notifier != nil {
			_ = s.notifier.NotifyStatusChanged(ctx, ride)
		}
		updated = ride
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CancelRide cancels the ride unless it has already completed.
func (s *RideService) CancelRide(ctx context.Context, rideID, userID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	var cancelled *domain.Ride
	err := s.withRideLock(ctx, rideID, func() error {
		ride, err := s.getOwnedRide(ctx, rideID, userID)
		if err != nil {
			return err
		}

		if ride.Status == domain.RideStatusCompleted {
			return ErrRideCompleted
		}

		ride.Status = domain.RideStatusCancelled
		ride.UpdatedAt = time.Now()

		if err := s.rideRepo.Update(ctx, ride); err != nil {
			return err
		}

		if s.notifier != nil {
			_ = s.notifier.NotifyRideCancelled(ctx, ride)
		}
		cancelled = ride
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// GetRideStatus returns the ride's current status, ownership-checked.
func (s *RideService) GetRideStatus(ctx context.Context, rideID, userID string) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}
	return s.getOwnedRide(ctx, rideID, userID)
}

// RideDetails is a ride merged with its computed fare breakdown.
type RideDetails struct {
	Ride          *domain.Ride
	Fare          FareBreakdown
	TipAmount     float64
	PaymentMethod string
}

// GetRideDetails returns the ride with an itemized fare breakdown.
func (s *RideService) GetRideDetails(ctx context.Context, rideID, userID string) (*RideDetails, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	ride, err := s.getOwnedRide(ctx, rideID, userID)
	if err != nil {
		return nil, err
	}
	if ride.EstimatedTime < 0 {
		return nil, ErrInvalidEstimatedTime
	}

	paymentMethod := "card"
	if ride.Payment != nil {
		paymentMethod = ride.Payment.Method
	}

	return &RideDetails{
		Ride:          ride,
		Fare:          FareForRide(ride.RideType, ride.EstimatedTime),
		TipAmount:     0,
		PaymentMethod: paymentMethod,
	}, nil
}

// SubmitRatingRequest contains the parameters for rating a completed ride.
type SubmitRatingRequest struct {
	RideID   string
	UserID   string
	DriverID string
	Value    float64
	Comment  string
}

// SubmitRating attaches the rating to the ride and folds it into the
// driver's running average.
func (s *RideService) SubmitRating(ctx context.Context, req SubmitRatingRequest) error {
	if req.RideID == "" {
		return ErrInvalidRideID
	}
	if req.DriverID == "" {
		return ErrInvalidDriverID
	}
	if req.Value < 1 || req.Value > 5 {
		return ErrInvalidRating
	}

	return s.withRideLock(ctx, req.RideID, func() error {
		ride, err := s.getOwnedRide(ctx, req.RideID, req.UserID)
		if err != nil {
			return err
		}

		now := time.Now()
		ride.Rating = &domain.RideRating{
			Value:     req.Value,
			Comment:   req.Comment,
			CreatedAt: now,
		}
		ride.UpdatedAt = now

		if err := s.rideRepo.Update(ctx, ride); err != nil {
			return err
		}

		// Unknown driver IDs are tolerated: the rating stays on the ride
		// even if the driver record has gone away.
		_, err = s.driverRepo.ApplyRating(ctx, req.DriverID, req.Value, s.ratingPriorWeight)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if s.cacheStore != nil {
			_ = s.cacheStore.InvalidateDriver(ctx, req.DriverID)
		}
		return nil
	})
}

// DriverSummary is the driver's public view attached to history entries.
type DriverSummary struct {
	ID     string
	Name   string
	Rating float64
	Photo  string
	Car    domain.Vehicle
}

// HistoryEntry is a ride summary augmented with fare and driver info.
type HistoryEntry struct {
	Ride   *domain.Ride
	Fare   FareBreakdown
	Driver *DriverSummary // nil when no driver was assigned
}

// GetRideHistory returns the user's rides, newest first, each augmented
// with a computed fare and the assigned driver's public fields.
func (s *RideService) GetRideHistory(ctx context.Context, userID string) ([]HistoryEntry, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	rides, err := s.rideRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.Slice(rides, func(i, j int) bool {
		return rides[i].CreatedAt.After(rides[j].CreatedAt)
	})

	drivers := s.resolveDrivers(ctx, rides)

	entries := make([]HistoryEntry, 0, len(rides))
	for _, ride := range rides {
		entries = append(entries, HistoryEntry{
			Ride:   ride,
			Fare:   FareForRide(ride.RideType, ride.EstimatedTime),
			Driver: drivers[ride.DriverID],
		})
	}
	return entries, nil
}

// resolveDrivers looks up the public fields of every driver referenced by
// the rides, consulting the cache first when one is configured.
func (s *RideService) resolveDrivers(ctx context.Context, rides []*domain.Ride) map[string]*DriverSummary {
	ids := make([]string, 0, len(rides))
	seen := make(map[string]bool)
	for _, ride := range rides {
		if ride.DriverID != "" && !seen[ride.DriverID] {
			seen[ride.DriverID] = true
			ids = append(ids, ride.DriverID)
		}
	}

	result := make(map[string]*DriverSummary, len(ids))
	missing := ids

	if s.cacheStore != nil {
		cached, miss, err := s.cacheStore.GetDriversBatch(ctx, ids)
		if err == nil {
			for id, c := range cached {
				result[id] = &DriverSummary{
					ID:     c.ID,
					Name:   c.Name,
					Rating: c.Rating,
					Photo:  c.Photo,
					Car:    domain.Vehicle{Model: c.CarModel, Color: c.CarColor, Plate: c.CarPlate},
				}
			}
			missing = miss
		}
	}

	for _, id := range missing {
		driver, err := s.driverRepo.GetByID(ctx, id)
		if err != nil {
			continue
		}
		result[id] = &DriverSummary{
			ID:     driver.ID,
			Name:   driver.Name,
			Rating: driver.Rating,
			Photo:  driver.Photo,
			Car:    driver.Car,
		}
		s.cacheDriver(ctx, driver)
	}

	return result
}

// getOwnedRide resolves a ride and verifies the requesting user owns it.
func (s *RideService) getOwnedRide(ctx context.Context, rideID, userID string) (*domain.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.UserID != userID {
		return nil, ErrNotRideOwner
	}
	return ride, nil
}

// withRideLock serializes mutations of a single ride when a lock store is
// configured.
func (s *RideService) withRideLock(ctx context.Context, rideID string, fn func() error) error {
	if s.lockStore == nil {
		return fn()
	}

	locked, err := s.lockStore.AcquireRideLock(ctx, rideID, rideLockTTL)
	if err != nil {
		return err
	}
	if !locked {
		return ErrRideBusy
	}
	defer s.lockStore.ReleaseRideLock(ctx, rideID)

	return fn()
}

func (s *RideService) cacheDriver(ctx context.Context, driver *domain.Driver) {
	if s.cacheStore == nil {
		return
	}
	_ = s.cacheStore.SetDriver(ctx, &redis.CachedDriver{
		ID:       driver.ID,
		Name:     driver.Name,
		Rating:   driver.Rating,
		Photo:    driver.Photo,
		CarModel: driver.Car.Model,
		CarColor: driver.Car.Color,
		CarPlate: driver.Car.Plate,
	})
}

func isValidPoint(p domain.GeoPoint) bool {
	return isValidLatitude(p.Latitude) && isValidLongitude(p.Longitude)
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
