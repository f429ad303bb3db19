package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rideshare/internal/service"
)

// LocationHandler handles HTTP requests for estimates and geocoding.
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// EstimateTripRequest is the HTTP request body for a trip estimate.
type EstimateTripRequest struct {
	Origin      GeoPointDTO `json:"origin"`
	Destination GeoPointDTO `json:"destination"`
}

// EstimateTripResponse is the HTTP response body for a trip estimate.
type EstimateTripResponse struct {
	Distance string            `json:"distance"`
	Duration int               `json:"duration"`
	Fare     map[string]string `json:"fare"`
}

// EstimateTrip handles POST /v1/location/estimate
func (h *LocationHandler) EstimateTrip(c *gin.Context) {
	var req EstimateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	estimate, err := h.locationService.EstimateTrip(c.Request.Context(), toGeoPoint(req.Origin), toGeoPoint(req.Destination))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, EstimateTripResponse{
		Distance: fmt.Sprintf("%.1f", estimate.DistanceKm),
		Duration: estimate.DurationMin,
		Fare: map[string]string{
			"economy":  money(estimate.Fares.Economy),
			"standard": money(estimate.Fares.Standard),
			"premium":  money(estimate.Fares.Premium),
		},
	})
}

// DirectionsRequest is the HTTP request body for directions.
type DirectionsRequest struct {
	Origin      GeoPointDTO `json:"origin"`
	Destination GeoPointDTO `json:"destination"`
}

// DirectionsResponse is the HTTP response body for directions.
type DirectionsResponse struct {
	Route    []LatLngDTO `json:"route"`
	Distance string      `json:"distance"`
	Duration int         `json:"duration"`
}

// GetDirections handles POST /v1/location/directions
func (h *LocationHandler) GetDirections(c *gin.Context) {
	var req DirectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	route, err := h.locationService.GetDirections(c.Request.Context(), toGeoPoint(req.Origin), toGeoPoint(req.Destination))
	if err != nil {
		respondError(c, err)
		return
	}

	points := make([]LatLngDTO, 0, len(route.Points))
	for _, p := range route.Points {
		points = append(points, LatLngDTO{Latitude: p.Latitude, Longitude: p.Longitude})
	}

	respondJSON(c, http.StatusOK, DirectionsResponse{
		Route:    points,
		Distance: fmt.Sprintf("%.1f", route.DistanceKm),
		Duration: route.DurationMin,
	})
}

// ReverseGeocode handles GET /v1/location/geocode?latitude=..&longitude=..
func (h *LocationHandler) ReverseGeocode(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("latitude"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("longitude"), 64)
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "latitude and longitude are required"})
		return
	}

	address, err := h.locationService.ReverseGeocode(c.Request.Context(), lat, lng)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"address": address})
}
