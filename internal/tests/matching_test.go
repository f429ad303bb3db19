package tests

import (
	"context"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

func availableDriver(id string) *domain.Driver {
	return &domain.Driver{ID: id, Name: "Driver " + id, Available: true}
}

func TestRandomMatcher_PicksAvailableDriver(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(availableDriver("driver_1"))
	busy := availableDriver("driver_2")
	busy.Available = false
	driverRepo.AddDriver(busy)

	matcher := service.NewRandomMatcher(driverRepo)
	ride := testRide("ride-1", "user-1", domain.RideStatusPending)

	for i := 0; i < 20; i++ {
		driver, err := matcher.Match(context.Background(), ride)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if driver.ID != "driver_1" {
			t.Fatalf("matched unavailable driver %s", driver.ID)
		}
	}
}

func TestRandomMatcher_NoDrivers(t *testing.T) {
	matcher := service.NewRandomMatcher(NewMockDriverRepository())
	ride := testRide("ride-1", "user-1", domain.RideStatusPending)

	_, err := matcher.Match(context.Background(), ride)
	if err != service.ErrNoDriverAvailable {
		t.Errorf("expected ErrNoDriverAvailable, got %v", err)
	}
}

func TestRandomMatcher_NoAvailableDrivers(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	offline := availableDriver("driver_1")
	offline.Available = false
	driverRepo.AddDriver(offline)

	matcher := service.NewRandomMatcher(driverRepo)
	ride := testRide("ride-1", "user-1", domain.RideStatusPending)

	_, err := matcher.Match(context.Background(), ride)
	if err != service.ErrNoDriverAvailable {
		t.Errorf("expected ErrNoDriverAvailable, got %v", err)
	}
}

func TestNearestMatcher_PicksFirstAvailable(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	nearestButOffline := availableDriver("driver_near")
	nearestButOffline.Available = false
	driverRepo.AddDriver(nearestButOffline)
	driverRepo.AddDriver(availableDriver("driver_far"))

	locationStore := NewMockLocationStore()
	_ = locationStore.UpdateLocation(context.Background(), "driver_near", 40.7581, -73.9856)
	_ = locationStore.UpdateLocation(context.Background(), "driver_far", 40.7600, -73.9900)

	matcher := service.NewNearestMatcher(locationStore, driverRepo, 5)
	ride := testRide("ride-1", "user-1", domain.RideStatusPending)

	driver, err := matcher.Match(context.Background(), ride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.ID != "driver_far" {
		t.Errorf("expected driver_far (nearest available), got %s", driver.ID)
	}
}

func TestNearestMatcher_OrdersByDistance(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(availableDriver("driver_far"))
	driverRepo.AddDriver(availableDriver("driver_near"))

	locationStore := NewMockLocationStore()
	// Farther driver registered first; distance, not insertion order, wins.
	_ = locationStore.UpdateLocation(context.Background(), "driver_far", 40.7600, -73.9900)
	_ = locationStore.UpdateLocation(context.Background(), "driver_near", 40.7581, -73.9856)

	matcher := service.NewNearestMatcher(locationStore, driverRepo, 5)
	ride := testRide("ride-1", "user-1", domain.RideStatusPending)

	driver, err := matcher.Match(context.Background(), ride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.ID != "driver_near" {
		t.Errorf("expected driver_near, got %s", driver.ID)
	}
}

func TestNearestMatcher_RespectsRadius(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(availableDriver("driver_remote"))

	locationStore := NewMockLocationStore()
	// Roughly 110 km north of the pickup point.
	_ = locationStore.UpdateLocation(context.Background(), "driver_remote", 41.7580, -73.9855)

	matcher := service.NewNearestMatcher(locationStore, driverRepo, 5)
	ride := testRide("ride-1", "user-1", domain.RideStatusPending)

	_, err := matcher.Match(context.Background(), ride)
	if err != service.ErrNoDriverAvailable {
		t.Errorf("expected ErrNoDriverAvailable, got %v", err)
	}
}

func TestNearestMatcher_SkipsUnknownDrivers(t *testing.T) {
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(availableDriver("driver_known"))

	locationStore := NewMockLocationStore()
	// Stale location entry for a driver that no longer exists.
	_ = locationStore.UpdateLocation(context.Background(), "driver_deleted", 40.7581, -73.9856)
	_ = locationStore.UpdateLocation(context.Background(), "driver_known", 40.7600, -73.9900)

	matcher := service.NewNearestMatcher(locationStore, driverRepo, 5)
	ride := testRide("ride-1", "user-1", domain.RideStatusPending)

	driver, err := matcher.Match(context.Background(), ride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.ID != "driver_known" {
		t.Errorf("expected driver_known, got %s", driver.ID)
	}
}

func TestNearestMatcher_EmptyRadius(t *testing.T) {
	matcher := service.NewNearestMatcher(NewMockLocationStore(), NewMockDriverRepository(), 5)
	ride := testRide("ride-1", "user-1", domain.RideStatusPending)

	_, err := matcher.Match(context.Background(), ride)
	if err != service.ErrNoDriverAvailable {
		t.Errorf("expected ErrNoDriverAvailable, got %v", err)
	}
}
