package tests

import (
	"context"
	"testing"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

func newTestRideService(rideRepo *MockRideRepository, driverRepo *MockDriverRepository, matcher service.DriverMatcher) *service.RideService {
	return service.NewRideService(rideRepo, driverRepo, matcher, nil, nil, nil, 0)
}

func testDriver() *domain.Driver {
	return &domain.Driver{
		ID:        "driver_1",
		Name:      "John Smith",
		Rating:    4.8,
		Car:       domain.Vehicle{Model: "Toyota Camry", Color: "Silver", Plate: "ABC 123"},
		Available: true,
	}
}

func testRide(id, userID string, status domain.RideStatus) *domain.Ride {
	now := time.Now()
	return &domain.Ride{
		ID:            id,
		UserID:        userID,
		Origin:        domain.GeoPoint{Latitude: 40.7580, Longitude: -73.9855},
		Destination:   domain.GeoPoint{Latitude: 40.7830, Longitude: -73.9650},
		RideType:      domain.RideTypeStandard,
		EstimatedTime: 7,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestRequestRide_ValidatesUserID(t *testing.T) {
	svc := newTestRideService(NewMockRideRepository(), NewMockDriverRepository(), NewMockMatcher(testDriver()))

	_, err := svc.RequestRide(context.Background(), service.RequestRideRequest{
		UserID:      "",
		Origin:      domain.GeoPoint{Latitude: 12.0, Longitude: 77.0},
		Destination: domain.GeoPoint{Latitude: 12.5, Longitude: 77.5},
		RideType:    domain.RideTypeEconomy,
	})

	if err != service.ErrInvalidUserID {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestRequestRide_ValidatesOrigin(t *testing.T) {
	svc := newTestRideService(NewMockRideRepository(), NewMockDriverRepository(), NewMockMatcher(testDriver()))

	testCases := []struct {
		name string
		lat  float64
		lng  float64
	}{
		{"latitude too low", -91.0, 77.0},
		{"latitude too high", 91.0, 77.0},
		{"longitude too low", 12.0, -181.0},
		{"longitude too high", 12.0, 181.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RequestRide(context.Background(), service.RequestRideRequest{
				UserID:      "user-1",
				Origin:      domain.GeoPoint{Latitude: tc.lat, Longitude: tc.lng},
				Destination: domain.GeoPoint{Latitude: 12.5, Longitude: 77.5},
				RideType:    domain.RideTypeEconomy,
			})

			if err != service.ErrInvalidOrigin {
				t.Errorf("expected ErrInvalidOrigin, got %v", err)
			}
		})
	}
}

func TestRequestRide_ValidatesRideType(t *testing.T) {
	svc := newTestRideService(NewMockRideRepository(), NewMockDriverRepository(), NewMockMatcher(testDriver()))

	_, err := svc.RequestRide(context.Background(), service.RequestRideRequest{
		UserID:      "user-1",
		Origin:      domain.GeoPoint{Latitude: 12.0, Longitude: 77.0},
		Destination: domain.GeoPoint{Latitude: 12.5, Longitude: 77.5},
		RideType:    domain.RideType("luxury"),
	})

	if err != service.ErrInvalidRideType {
		t.Errorf("expected ErrInvalidRideType, got %v", err)
	}
}

func TestRequestRide_CreatesPendingRideWithEstimates(t *testing.T) {
	rideRepo := NewMockRideRepository()
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	ride, err := svc.RequestRide(context.Background(), service.RequestRideRequest{
		UserID:      "user-1",
		Origin:      domain.GeoPoint{Latitude: 40.7580, Longitude: -73.9855},
		Destination: domain.GeoPoint{Latitude: 40.7830, Longitude: -73.9650},
		RideType:    domain.RideTypeStandard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.ID == "" {
		t.Error("expected generated ride ID")
	}
	if ride.Status != domain.RideStatusPending {
		t.Errorf("expected pending status, got %s", ride.Status)
	}
	if ride.EstimatedTime != 7 {
		t.Errorf("expected estimated time 7, got %d", ride.EstimatedTime)
	}
	if !almostEqual(ride.EstimatedPrice, 16.47, 0.01) {
		t.Errorf("expected estimated price ~16.47, got %f", ride.EstimatedPrice)
	}
	if !almostEqual(ride.DistanceKm, 3.59, 0.01) {
		t.Errorf("expected distance ~3.59, got %f", ride.DistanceKm)
	}
	if rideRepo.GetRide(ride.ID) == nil {
		t.Error("expected ride to be persisted")
	}
}

func TestRequestRide_KeepsClientEstimates(t *testing.T) {
	svc := newTestRideService(NewMockRideRepository(), NewMockDriverRepository(), NewMockMatcher(testDriver()))

	ride, err := svc.RequestRide(context.Background(), service.RequestRideRequest{
		UserID:         "user-1",
		Origin:         domain.GeoPoint{Latitude: 12.0, Longitude: 77.0},
		Destination:    domain.GeoPoint{Latitude: 12.5, Longitude: 77.5},
		RideType:       domain.RideTypePremium,
		EstimatedPrice: 42.00,
		EstimatedTime:  15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.EstimatedPrice != 42.00 {
		t.Errorf("expected client estimate 42.00 preserved, got %f", ride.EstimatedPrice)
	}
	if ride.EstimatedTime != 15 {
		t.Errorf("expected client estimate 15 preserved, got %d", ride.EstimatedTime)
	}
}

func TestAssignDriver_AssignsPendingRide(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusPending))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	driver, err := svc.AssignDriver(context.Background(), "ride-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if driver.ID != "driver_1" {
		t.Errorf("expected driver_1, got %s", driver.ID)
	}
	stored := rideRepo.GetRide("ride-1")
	if stored.Status != domain.RideStatusDriverAssigned {
		t.Errorf("expected driver_assigned status, got %s", stored.Status)
	}
	if stored.DriverID != "driver_1" {
		t.Errorf("expected driver ID recorded, got %q", stored.DriverID)
	}
}

func TestAssignDriver_AllowsReassignment(t *testing.T) {
	rideRepo := NewMockRideRepository()
	ride := testRide("ride-1", "user-1", domain.RideStatusDriverAssigned)
	ride.DriverID = "driver_0"
	rideRepo.AddRide(ride)
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	driver, err := svc.AssignDriver(context.Background(), "ride-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.ID != "driver_1" {
		t.Errorf("expected replacement driver_1, got %s", driver.ID)
	}
}

func TestAssignDriver_RejectsRideInProgress(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusInProgress))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	_, err := svc.AssignDriver(context.Background(), "ride-1", "user-1")
	if err != service.ErrRideNotAssignable {
		t.Errorf("expected ErrRideNotAssignable, got %v", err)
	}
}

func TestAssignDriver_NoDriverAvailable(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusPending))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(nil))

	_, err := svc.AssignDriver(context.Background(), "ride-1", "user-1")
	if err != service.ErrNoDriverAvailable {
		t.Errorf("expected ErrNoDriverAvailable, got %v", err)
	}

	// The ride must stay pending when matching fails.
	if got := rideRepo.GetRide("ride-1").Status; got != domain.RideStatusPending {
		t.Errorf("expected pending status after failed match, got %s", got)
	}
}

func TestAssignDriver_ChecksOwnership(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusPending))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	_, err := svc.AssignDriver(context.Background(), "ride-1", "someone-else")
	if err != service.ErrNotRideOwner {
		t.Errorf("expected ErrNotRideOwner, got %v", err)
	}
}

func TestUpdateStatus_FollowsLifecycle(t *testing.T) {
	rideRepo := NewMockRideRepository()
	ride := testRide("ride-1", "user-1", domain.RideStatusDriverAssigned)
	ride.DriverID = "driver_1"
	rideRepo.AddRide(ride)
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	sequence := []domain.RideStatus{
		domain.RideStatusPickingUp,
		domain.RideStatusArrived,
		domain.RideStatusInProgress,
		domain.RideStatusCompleted,
	}

	for _, next := range sequence {
		updated, err := svc.UpdateStatus(context.Background(), "ride-1", "user-1", next)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
		if updated.Status != next {
			t.Errorf("expected status %s, got %s", next, updated.Status)
		}
	}
}

func TestUpdateStatus_RejectsSkippedStep(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusPending))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	_, err := svc.UpdateStatus(context.Background(), "ride-1", "user-1", domain.RideStatusInProgress)
	if err != service.ErrInvalidStatusTransition {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusPending))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	_, err := svc.UpdateStatus(context.Background(), "ride-1", "user-1", domain.RideStatus("teleporting"))
	if err != service.ErrInvalidRideStatus {
		t.Errorf("expected ErrInvalidRideStatus, got %v", err)
	}
}

func TestUpdateStatus_RejectsLeavingTerminalState(t *testing.T) {
	testCases := []struct {
		name   string
		status domain.RideStatus
	}{
		{"completed", domain.RideStatusCompleted},
		{"cancelled", domain.RideStatusCancelled},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rideRepo := NewMockRideRepository()
			rideRepo.AddRide(testRide("ride-1", "user-1", tc.status))
			svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

			_, err := svc.UpdateStatus(context.Background(), "ride-1", "user-1", domain.RideStatusPickingUp)
			if err != service.ErrInvalidStatusTransition {
				t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
			}
		})
	}
}

func TestCancelRide_CancelsActiveRide(t *testing.T) {
	statuses := []domain.RideStatus{
		domain.RideStatusPending,
		domain.RideStatusDriverAssigned,
		domain.RideStatusPickingUp,
		domain.RideStatusArrived,
		domain.RideStatusInProgress,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			rideRepo := NewMockRideRepository()
			rideRepo.AddRide(testRide("ride-1", "user-1", status))
			svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

			ride, err := svc.CancelRide(context.Background(), "ride-1", "user-1")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ride.Status != domain.RideStatusCancelled {
				t.Errorf("expected cancelled status, got %s", ride.Status)
			}
		})
	}
}

func TestCancelRide_RejectsCompletedRide(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusCompleted))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	_, err := svc.CancelRide(context.Background(), "ride-1", "user-1")
	if err != service.ErrRideCompleted {
		t.Errorf("expected ErrRideCompleted, got %v", err)
	}
}

func TestCancelRide_UnknownRide(t *testing.T) {
	svc := newTestRideService(NewMockRideRepository(), NewMockDriverRepository(), NewMockMatcher(testDriver()))

	_, err := svc.CancelRide(context.Background(), "missing", "user-1")
	if err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRideMutations_RejectedWhileLocked(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusPending))
	lockStore := NewMockLockStore()
	lockStore.HoldRideLock("ride-1")
	svc := service.NewRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()), lockStore, nil, nil, 0)

	if _, err := svc.CancelRide(context.Background(), "ride-1", "user-1"); err != service.ErrRideBusy {
		t.Errorf("expected ErrRideBusy from cancel, got %v", err)
	}
	if _, err := svc.AssignDriver(context.Background(), "ride-1", "user-1"); err != service.ErrRideBusy {
		t.Errorf("expected ErrRideBusy from assign, got %v", err)
	}
}

func TestRideMutations_ReleaseLockAfterUse(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusPending))
	lockStore := NewMockLockStore()
	svc := service.NewRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()), lockStore, nil, nil, 0)

	if _, err := svc.AssignDriver(context.Background(), "ride-1", "user-1"); err != nil {
		t.Fatalf("first mutation failed: %v", err)
	}
	if _, err := svc.CancelRide(context.Background(), "ride-1", "user-1"); err != nil {
		t.Fatalf("second mutation failed, lock not released: %v", err)
	}
}

func TestGetRideDetails_ComputesFare(t *testing.T) {
	rideRepo := NewMockRideRepository()
	ride := testRide("ride-1", "user-1", domain.RideStatusCompleted)
	ride.EstimatedTime = 12
	rideRepo.AddRide(ride)
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	details, err := svc.GetRideDetails(context.Background(), "ride-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if details.Fare.BaseFare != 7.50 {
		t.Errorf("expected base fare 7.50, got %f", details.Fare.BaseFare)
	}
	if details.Fare.Total != 20.50 {
		t.Errorf("expected total 20.50, got %f", details.Fare.Total)
	}
	if details.PaymentMethod != "card" {
		t.Errorf("expected default payment method card, got %s", details.PaymentMethod)
	}
	if details.TipAmount != 0 {
		t.Errorf("expected zero tip, got %f", details.TipAmount)
	}
}

func TestGetRideDetails_ChecksOwnership(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusPending))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	_, err := svc.GetRideDetails(context.Background(), "ride-1", "intruder")
	if err != service.ErrNotRideOwner {
		t.Errorf("expected ErrNotRideOwner, got %v", err)
	}
}
