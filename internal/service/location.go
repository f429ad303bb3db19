package service

import (
	"context"
	"fmt"

	"rideshare/internal/domain"
)

// Route is a straight-line path between two points with travel estimates.
type Route struct {
	Points      []domain.Coordinates
	DistanceKm  float64
	DurationMin int
}

// LocationService provides trip estimates, directions, and geocoding.
// Routing is straight-line; a mapping provider would slot in here.
type LocationService struct{}

// NewLocationService creates a new LocationService.
func NewLocationService() *LocationService {
	return &LocationService{}
}

// EstimateTrip returns the distance, duration, and per-tier fares between
// two points.
func (s *LocationService) EstimateTrip(ctx context.Context, origin, destination domain.GeoPoint) (*TripEstimate, error) {
	if !isValidPoint(origin) || !isValidPoint(destination) {
		return nil, ErrInvalidLocation
	}
	estimate := EstimateTrip(origin, destination)
	return &estimate, nil
}

// GetDirections returns a straight-line route between two points.
func (s *LocationService) GetDirections(ctx context.Context, origin, destination domain.GeoPoint) (*Route, error) {
	if !isValidPoint(origin) || !isValidPoint(destination) {
		return nil, ErrInvalidLocation
	}

	estimate := EstimateTrip(origin, destination)
	return &Route{
		Points: []domain.Coordinates{
			{Latitude: origin.Latitude, Longitude: origin.Longitude},
			{Latitude: destination.Latitude, Longitude: destination.Longitude},
		},
		DistanceKm:  estimate.DistanceKm,
		DurationMin: estimate.DurationMin,
	}, nil
}

// ReverseGeocode formats coordinates as a display address.
func (s *LocationService) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return "", ErrInvalidLocation
	}
	return fmt.Sprintf("Location (%.4f, %.4f)", lat, lng), nil
}
