package tests

import (
	"context"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
	"rideshare/internal/repository/memory"
)

func TestMemoryRideStore_CreateRejectsDuplicateID(t *testing.T) {
	store := memory.NewRideRepository()
	ride := testRide("ride-1", "user-1", domain.RideStatusPending)

	if err := store.Create(context.Background(), ride); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Create(context.Background(), ride); err != repository.ErrDuplicateID {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestMemoryRideStore_GetByUserKeepsInsertionOrder(t *testing.T) {
	store := memory.NewRideRepository()
	ids := []string{"ride-a", "ride-b", "ride-c"}
	for _, id := range ids {
		if err := store.Create(context.Background(), testRide(id, "user-1", domain.RideStatusPending)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := store.Create(context.Background(), testRide("ride-other", "user-2", domain.RideStatusPending)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rides, err := store.GetByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rides) != 3 {
		t.Fatalf("expected 3 rides, got %d", len(rides))
	}
	for i, id := range ids {
		if rides[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, rides[i].ID)
		}
	}
}

func TestMemoryRideStore_ReadsAreIsolatedCopies(t *testing.T) {
	store := memory.NewRideRepository()
	if err := store.Create(context.Background(), testRide("ride-1", "user-1", domain.RideStatusPending)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := store.GetByID(context.Background(), "ride-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first.Status = domain.RideStatusCancelled // mutate the copy

	second, err := store.GetByID(context.Background(), "ride-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Status != domain.RideStatusPending {
		t.Error("mutating a returned ride must not affect the store")
	}
}

func TestMemoryRideStore_UpdateUnknownRide(t *testing.T) {
	store := memory.NewRideRepository()

	err := store.Update(context.Background(), testRide("ghost", "user-1", domain.RideStatusPending))
	if err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryDriverStore_ApplyRatingSmoothing(t *testing.T) {
	store := memory.NewDriverRepository()
	driver := testDriver()
	driver.Rating = 4.8
	if err := store.Create(context.Background(), driver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newAvg, err := store.ApplyRating(context.Background(), "driver_1", 3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := (4.8*10 + 3) / 11
	if !almostEqual(newAvg, want, 0.0001) {
		t.Errorf("expected %f, got %f", want, newAvg)
	}

	stored, err := store.GetByID(context.Background(), "driver_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(stored.Rating, want, 0.0001) {
		t.Errorf("expected persisted rating %f, got %f", want, stored.Rating)
	}
}

func TestMemoryDriverStore_ApplyRatingUnknownDriver(t *testing.T) {
	store := memory.NewDriverRepository()

	_, err := store.ApplyRating(context.Background(), "ghost", 5, 10)
	if err != repository.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSeedDrivers_LoadsFleet(t *testing.T) {
	store := memory.NewDriverRepository()
	if err := memory.SeedDrivers(context.Background(), store); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drivers, err := store.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drivers) != 3 {
		t.Fatalf("expected 3 seeded drivers, got %d", len(drivers))
	}
	for _, d := range drivers {
		if !d.Available {
			t.Errorf("seeded driver %s should be available", d.ID)
		}
		if d.Rating < 1 || d.Rating > 5 {
			t.Errorf("seeded driver %s has out-of-range rating %f", d.ID, d.Rating)
		}
	}
}
