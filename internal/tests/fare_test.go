package tests

import (
	"math"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestEstimateTrip_MidtownToCentralPark(t *testing.T) {
	origin := domain.GeoPoint{Latitude: 40.7580, Longitude: -73.9855}
	destination := domain.GeoPoint{Latitude: 40.7830, Longitude: -73.9650}

	estimate := service.EstimateTrip(origin, destination)

	if !almostEqual(estimate.DistanceKm, 3.59, 0.01) {
		t.Errorf("expected distance ~3.59 km, got %f", estimate.DistanceKm)
	}
	if estimate.DurationMin != 7 {
		t.Errorf("expected duration 7 min, got %d", estimate.DurationMin)
	}
	if !almostEqual(estimate.Fares.Economy, 10.38, 0.01) {
		t.Errorf("expected economy fare ~10.38, got %f", estimate.Fares.Economy)
	}
	if !almostEqual(estimate.Fares.Standard, 16.47, 0.01) {
		t.Errorf("expected standard fare ~16.47, got %f", estimate.Fares.Standard)
	}
	if !almostEqual(estimate.Fares.Premium, 22.56, 0.01) {
		t.Errorf("expected premium fare ~22.56, got %f", estimate.Fares.Premium)
	}
}

func TestEstimateTrip_ZeroDistance(t *testing.T) {
	point := domain.GeoPoint{Latitude: 40.7580, Longitude: -73.9855}

	estimate := service.EstimateTrip(point, point)

	if estimate.DistanceKm != 0 {
		t.Errorf("expected zero distance, got %f", estimate.DistanceKm)
	}
	if estimate.DurationMin != 0 {
		t.Errorf("expected zero duration, got %d", estimate.DurationMin)
	}
	// Base fares still apply at zero distance.
	if estimate.Fares.Economy != 5.00 {
		t.Errorf("expected economy base fare 5.00, got %f", estimate.Fares.Economy)
	}
	if estimate.Fares.Standard != 7.50 {
		t.Errorf("expected standard base fare 7.50, got %f", estimate.Fares.Standard)
	}
	if estimate.Fares.Premium != 10.00 {
		t.Errorf("expected premium base fare 10.00, got %f", estimate.Fares.Premium)
	}
}

func TestEstimateTrip_SymmetricInDirection(t *testing.T) {
	a := domain.GeoPoint{Latitude: 12.0, Longitude: 77.0}
	b := domain.GeoPoint{Latitude: 12.5, Longitude: 77.5}

	forward := service.EstimateTrip(a, b)
	backward := service.EstimateTrip(b, a)

	if forward.DistanceKm != backward.DistanceKm {
		t.Errorf("distance should not depend on direction: %f vs %f",
			forward.DistanceKm, backward.DistanceKm)
	}
}

func TestTierFare_SelectsTier(t *testing.T) {
	fares := service.TierFares{Economy: 10, Standard: 20, Premium: 30}

	testCases := []struct {
		rideType domain.RideType
		want     float64
	}{
		{domain.RideTypeEconomy, 10},
		{domain.RideTypeStandard, 20},
		{domain.RideTypePremium, 30},
	}

	for _, tc := range testCases {
		if got := fares.TierFare(tc.rideType); got != tc.want {
			t.Errorf("TierFare(%s) = %f, want %f", tc.rideType, got, tc.want)
		}
	}
}

func TestFareForRide_StandardTwelveMinutes(t *testing.T) {
	fare := service.FareForRide(domain.RideTypeStandard, 12)

	if fare.BaseFare != 7.50 {
		t.Errorf("expected base fare 7.50, got %f", fare.BaseFare)
	}
	if fare.DistanceKm != 4.0 {
		t.Errorf("expected distance 4.0, got %f", fare.DistanceKm)
	}
	if fare.DistanceFare != 10.00 {
		t.Errorf("expected distance fare 10.00, got %f", fare.DistanceFare)
	}
	if fare.TimeFare != 3.00 {
		t.Errorf("expected time fare 3.00, got %f", fare.TimeFare)
	}
	if fare.Total != 20.50 {
		t.Errorf("expected total 20.50, got %f", fare.Total)
	}
}

func TestFareForRide_ZeroDuration(t *testing.T) {
	fare := service.FareForRide(domain.RideTypeEconomy, 0)

	if fare.BaseFare != 5.00 {
		t.Errorf("expected base fare 5.00, got %f", fare.BaseFare)
	}
	if fare.DistanceFare != 0 || fare.TimeFare != 0 {
		t.Errorf("expected zero variable fares, got distance=%f time=%f",
			fare.DistanceFare, fare.TimeFare)
	}
	if fare.Total != 5.00 {
		t.Errorf("expected total 5.00, got %f", fare.Total)
	}
}

func TestFareForRide_RoundsToCents(t *testing.T) {
	// 7 minutes: distance 2.333..., distanceFare 5.83, timeFare 1.75.
	fare := service.FareForRide(domain.RideTypeEconomy, 7)

	if fare.DistanceFare != 5.83 {
		t.Errorf("expected distance fare 5.83, got %f", fare.DistanceFare)
	}
	if fare.TimeFare != 1.75 {
		t.Errorf("expected time fare 1.75, got %f", fare.TimeFare)
	}
	if fare.Total != 12.58 {
		t.Errorf("expected total 12.58, got %f", fare.Total)
	}
}
