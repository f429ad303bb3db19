package tests

import (
	"context"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

func TestSubmitRating_ValidatesValue(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusCompleted))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	testCases := []struct {
		name  string
		value float64
	}{
		{"below minimum", 0.5},
		{"zero", 0},
		{"above maximum", 5.5},
		{"negative", -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
				RideID:   "ride-1",
				UserID:   "user-1",
				DriverID: "driver_1",
				Value:    tc.value,
			})
			if err != service.ErrInvalidRating {
				t.Errorf("expected ErrInvalidRating for %f, got %v", tc.value, err)
			}
		})
	}
}

func TestSubmitRating_RequiresDriverID(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusCompleted))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(testDriver()))

	err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RideID: "ride-1",
		UserID: "user-1",
		Value:  5,
	})
	if err != service.ErrInvalidDriverID {
		t.Errorf("expected ErrInvalidDriverID, got %v", err)
	}
}

func TestSubmitRating_AttachesRatingAndSmoothsAverage(t *testing.T) {
	rideRepo := NewMockRideRepository()
	ride := testRide("ride-1", "user-1", domain.RideStatusCompleted)
	ride.DriverID = "driver_1"
	rideRepo.AddRide(ride)

	driverRepo := NewMockDriverRepository()
	driver := testDriver()
	driver.Rating = 5.0
	driverRepo.AddDriver(driver)

	svc := newTestRideService(rideRepo, driverRepo, NewMockMatcher(nil))

	err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RideID:   "ride-1",
		UserID:   "user-1",
		DriverID: "driver_1",
		Value:    1,
		Comment:  "left me at the wrong corner",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := rideRepo.GetRide("ride-1")
	if stored.Rating == nil {
		t.Fatal("expected rating attached to ride")
	}
	if stored.Rating.Value != 1 {
		t.Errorf("expected rating value 1, got %f", stored.Rating.Value)
	}
	if stored.Rating.Comment != "left me at the wrong corner" {
		t.Errorf("unexpected comment %q", stored.Rating.Comment)
	}

	// A single 1-star rating against a 5.0 average with prior weight 10
	// lands at (5*10 + 1) / 11.
	want := (5.0*10 + 1) / 11
	if got := driverRepo.GetDriver("driver_1").Rating; !almostEqual(got, want, 0.0001) {
		t.Errorf("expected smoothed rating %f, got %f", want, got)
	}
}

func TestSubmitRating_CustomPriorWeight(t *testing.T) {
	rideRepo := NewMockRideRepository()
	ride := testRide("ride-1", "user-1", domain.RideStatusCompleted)
	ride.DriverID = "driver_1"
	rideRepo.AddRide(ride)

	driverRepo := NewMockDriverRepository()
	driver := testDriver()
	driver.Rating = 4.0
	driverRepo.AddDriver(driver)

	svc := service.NewRideService(rideRepo, driverRepo, NewMockMatcher(nil), nil, nil, nil, 2)

	err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RideID:   "ride-1",
		UserID:   "user-1",
		DriverID: "driver_1",
		Value:    5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// (4*2 + 5) / 3
	want := 13.0 / 3
	if got := driverRepo.GetDriver("driver_1").Rating; !almostEqual(got, want, 0.0001) {
		t.Errorf("expected smoothed rating %f, got %f", want, got)
	}
}

func TestSubmitRating_ToleratesUnknownDriver(t *testing.T) {
	rideRepo := NewMockRideRepository()
	ride := testRide("ride-1", "user-1", domain.RideStatusCompleted)
	ride.DriverID = "driver_gone"
	rideRepo.AddRide(ride)

	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(nil))

	err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RideID:   "ride-1",
		UserID:   "user-1",
		DriverID: "driver_gone",
		Value:    4,
	})
	if err != nil {
		t.Fatalf("rating should survive a missing driver record: %v", err)
	}

	if rideRepo.GetRide("ride-1").Rating == nil {
		t.Error("expected rating attached to ride despite missing driver")
	}
}

func TestSubmitRating_ChecksOwnership(t *testing.T) {
	rideRepo := NewMockRideRepository()
	rideRepo.AddRide(testRide("ride-1", "user-1", domain.RideStatusCompleted))
	svc := newTestRideService(rideRepo, NewMockDriverRepository(), NewMockMatcher(nil))

	err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
		RideID:   "ride-1",
		UserID:   "intruder",
		DriverID: "driver_1",
		Value:    5,
	})
	if err != service.ErrNotRideOwner {
		t.Errorf("expected ErrNotRideOwner, got %v", err)
	}
}

func TestSubmitRating_BoundaryValuesAccepted(t *testing.T) {
	for _, value := range []float64{1, 5} {
		rideRepo := NewMockRideRepository()
		ride := testRide("ride-1", "user-1", domain.RideStatusCompleted)
		ride.DriverID = "driver_1"
		rideRepo.AddRide(ride)
		driverRepo := NewMockDriverRepository()
		driverRepo.AddDriver(testDriver())
		svc := newTestRideService(rideRepo, driverRepo, NewMockMatcher(nil))

		err := svc.SubmitRating(context.Background(), service.SubmitRatingRequest{
			RideID:   "ride-1",
			UserID:   "user-1",
			DriverID: "driver_1",
			Value:    value,
		})
		if err != nil {
			t.Errorf("expected boundary value %f accepted, got %v", value, err)
		}
	}
}
