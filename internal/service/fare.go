package service

import (
	"math"

	"rideshare/internal/domain"
)

// Fare constants. Distances use a flat-earth approximation of 111 km per
// degree, which is adequate for display estimates but not for billing.
const (
	kmPerDegree   = 111.0
	kmPerMinute   = 0.5 // assumed average speed, 30 km/h
	minutesPerKm  = 3.0 // inverse approximation used by the breakdown path
	perKmRate     = 2.5
	perMinuteRate = 0.25
)

// Per-tier pricing.
const (
	economyBaseFare  = 5.00
	standardBaseFare = 7.50
	premiumBaseFare  = 10.00

	economyPerKm  = 1.5
	standardPerKm = 2.5
	premiumPerKm  = 3.5
)

// TierFares holds the estimated total fare for each ride tier.
type TierFares struct {
	Economy  float64
	Standard float64
	Premium  float64
}

// TripEstimate is the result of estimating a trip between two points.
type TripEstimate struct {
	DistanceKm  float64
	DurationMin int
	Fares       TierFares
}

// FareBreakdown itemizes the fare for a stored ride.
type FareBreakdown struct {
	BaseFare     float64
	DistanceKm   float64
	DistanceFare float64
	TimeFare     float64
	Total        float64
}

// PlanarDistanceKm computes the straight-line distance between two points
// using the flat-earth approximation.
func PlanarDistanceKm(origin, destination domain.GeoPoint) float64 {
	latDiff := destination.Latitude - origin.Latitude
	lngDiff := destination.Longitude - origin.Longitude
	return math.Sqrt(latDiff*latDiff+lngDiff*lngDiff) * kmPerDegree
}

// EstimateTrip computes a distance, duration, and per-tier fare estimate
// between two points. Pure and deterministic.
func EstimateTrip(origin, destination domain.GeoPoint) TripEstimate {
	distanceKm := PlanarDistanceKm(origin, destination)
	durationMin := int(math.Round(distanceKm / kmPerMinute))

	return TripEstimate{
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Fares: TierFares{
			Economy:  round2(economyBaseFare + distanceKm*economyPerKm),
			Standard: round2(standardBaseFare + distanceKm*standardPerKm),
			Premium:  round2(premiumBaseFare + distanceKm*premiumPerKm),
		},
	}
}

// TierFare returns the estimated fare for a single tier.
func (f TierFares) TierFare(rideType domain.RideType) float64 {
	switch rideType {
	case domain.RideTypePremium:
		return f.Premium
	case domain.RideTypeStandard:
		return f.Standard
	default:
		return f.Economy
	}
}

// BaseFare returns the fixed base fare for a ride tier.
func BaseFare(rideType domain.RideType) float64 {
	switch rideType {
	case domain.RideTypePremium:
		return premiumBaseFare
	case domain.RideTypeStandard:
		return standardBaseFare
	default:
		return economyBaseFare
	}
}

// FareForRide itemizes the fare for a ride given its tier and estimated
// duration in minutes. The distance here is derived back from the duration
// (durationMin / 3), matching the wire behavior clients already render.
func FareForRide(rideType domain.RideType, estimatedTime int) FareBreakdown {
	baseFare := BaseFare(rideType)
	distanceKm := float64(estimatedTime) / minutesPerKm
	distanceFare := round2(distanceKm * perKmRate)
	timeFare := round2(float64(estimatedTime) * perMinuteRate)

	return FareBreakdown{
		BaseFare:     baseFare,
		DistanceKm:   distanceKm,
		DistanceFare: distanceFare,
		TimeFare:     timeFare,
		Total:        round2(baseFare + distanceFare + timeFare),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
