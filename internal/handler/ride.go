package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/middleware"
	"rideshare/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// GeoPointDTO is the wire form of a geographic point.
type GeoPointDTO struct {
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RequestRideRequest is the HTTP request body for requesting a ride.
type RequestRideRequest struct {
	Origin         GeoPointDTO `json:"origin"`
	Destination    GeoPointDTO `json:"destination"`
	RideType       string      `json:"ride_type"`
	EstimatedPrice float64     `json:"estimated_price,omitempty"`
	EstimatedTime  int         `json:"estimated_time,omitempty"`
}

// RideResponse is the HTTP response body for a ride.
type RideResponse struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	DriverID       string      `json:"driver_id,omitempty"`
	Origin         GeoPointDTO `json:"origin"`
	Destination    GeoPointDTO `json:"destination"`
	RideType       string      `json:"ride_type"`
	EstimatedPrice string      `json:"estimated_price"`
	EstimatedTime  int         `json:"estimated_time"`
	DistanceKm     string      `json:"distance_km"`
	Status         string      `json:"status"`
	Rating         *RatingDTO  `json:"rating,omitempty"`
	CreatedAt      string      `json:"created_at"`
	UpdatedAt      string      `json:"updated_at"`
}

// RatingDTO is the wire form of a ride rating.
type RatingDTO struct {
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}

// RequestRide handles POST /v1/rides
func (h *RideHandler) RequestRide(c *gin.Context) {
	var req RequestRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.RequestRide(c.Request.Context(), service.RequestRideRequest{
		UserID:         middleware.CurrentUserID(c),
		Origin:         toGeoPoint(req.Origin),
		Destination:    toGeoPoint(req.Destination),
		RideType:       domain.RideType(req.RideType),
		EstimatedPrice: req.EstimatedPrice,
		EstimatedTime:  req.EstimatedTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// DriverResponse is the public view of a driver.
type DriverResponse struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Rating   float64    `json:"rating"`
	Photo    string     `json:"photo,omitempty"`
	Car      VehicleDTO `json:"car"`
	Location *LatLngDTO `json:"location,omitempty"`
}

// VehicleDTO is the wire form of a driver's vehicle.
type VehicleDTO struct {
	Model string `json:"model"`
	Color string `json:"color"`
	Plate string `json:"plate"`
}

// LatLngDTO is a bare coordinate pair.
type LatLngDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AssignDriver handles POST /v1/rides/:id/driver
func (h *RideHandler) AssignDriver(c *gin.Context) {
	driver, err := h.rideService.AssignDriver(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// UpdateStatusRequest is the HTTP request body for a status update.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /v1/rides/:id/status
func (h *RideHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ride, err := h.rideService.UpdateStatus(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c), domain.RideStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	ride, err := h.rideService.CancelRide(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// GetRideStatus handles GET /v1/rides/:id/status
func (h *RideHandler) GetRideStatus(c *gin.Context) {
	ride, err := h.rideService.GetRideStatus(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"ride_id": ride.ID,
		"status":  string(ride.Status),
	})
}

// FareBreakdownDTO is the wire form of an itemized fare.
type FareBreakdownDTO struct {
	BaseFare     string `json:"base_fare"`
	DistanceKm   string `json:"distance_km"`
	DistanceFare string `json:"distance_fare"`
	TimeFare     string `json:"time_fare"`
	Total        string `json:"total"`
}

// RideDetailsResponse is the HTTP response for ride details.
type RideDetailsResponse struct {
	Ride          RideResponse     `json:"ride"`
	Fare          FareBreakdownDTO `json:"fare"`
	TipAmount     string           `json:"tip_amount"`
	PaymentMethod string           `json:"payment_method"`
}

// GetRideDetails handles GET /v1/rides/:id
func (h *RideHandler) GetRideDetails(c *gin.Context) {
	details, err := h.rideService.GetRideDetails(c.Request.Context(), c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, RideDetailsResponse{
		Ride:          toRideResponse(details.Ride),
		Fare:          toFareDTO(details.Fare),
		TipAmount:     money(details.TipAmount),
		PaymentMethod: details.PaymentMethod,
	})
}

// SubmitRatingRequest is the HTTP request body for rating a ride.
type SubmitRatingRequest struct {
	DriverID string  `json:"driver_id"`
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment,omitempty"`
}

// SubmitRating handles POST /v1/rides/:id/rating
func (h *RideHandler) SubmitRating(c *gin.Context) {
	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.rideService.SubmitRating(c.Request.Context(), service.SubmitRatingRequest{
		RideID:   c.Param("id"),
		UserID:   middleware.CurrentUserID(c),
		DriverID: req.DriverID,
		Value:    req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"message": "rating submitted"})
}

// HistoryEntryResponse is one ride in the history listing.
type HistoryEntryResponse struct {
	Ride   RideResponse          `json:"ride"`
	Fare   FareBreakdownDTO      `json:"fare"`
	Driver *HistoryDriverSummary `json:"driver,omitempty"`
}

// HistoryDriverSummary is the assigned driver's public fields.
type HistoryDriverSummary struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Rating float64    `json:"rating"`
	Photo  string     `json:"photo,omitempty"`
	Car    VehicleDTO `json:"car"`
}

// GetRideHistory handles GET /v1/rides/history
func (h *RideHandler) GetRideHistory(c *gin.Context) {
	entries, err := h.rideService.GetRideHistory(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		item := HistoryEntryResponse{
			Ride: toRideResponse(entry.Ride),
			Fare: toFareDTO(entry.Fare),
		}
		if entry.Driver != nil {
			item.Driver = &HistoryDriverSummary{
				ID:     entry.Driver.ID,
				Name:   entry.Driver.Name,
				Rating: entry.Driver.Rating,
				Photo:  entry.Driver.Photo,
				Car:    VehicleDTO(entry.Driver.Car),
			}
		}
		resp = append(resp, item)
	}

	respondJSON(c, http.StatusOK, gin.H{"rides": resp})
}

func toGeoPoint(dto GeoPointDTO) domain.GeoPoint {
	return domain.GeoPoint{
		Address:   dto.Address,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	}
}

func toGeoPointDTO(p domain.GeoPoint) GeoPointDTO {
	return GeoPointDTO{
		Address:   p.Address,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
	}
}

func toRideResponse(ride *domain.Ride) RideResponse {
	resp := RideResponse{
		ID:             ride.ID,
		UserID:         ride.UserID,
		DriverID:       ride.DriverID,
		Origin:         toGeoPointDTO(ride.Origin),
		Destination:    toGeoPointDTO(ride.Destination),
		RideType:       string(ride.RideType),
		EstimatedPrice: money(ride.EstimatedPrice),
		EstimatedTime:  ride.EstimatedTime,
		DistanceKm:     fmt.Sprintf("%.1f", ride.DistanceKm),
		Status:         string(ride.Status),
		CreatedAt:      ride.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:      ride.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if ride.Rating != nil {
		resp.Rating = &RatingDTO{Value: ride.Rating.Value, Comment: ride.Rating.Comment}
	}
	return resp
}

func toDriverResponse(driver *domain.Driver) DriverResponse {
	resp := DriverResponse{
		ID:     driver.ID,
		Name:   driver.Name,
		Rating: driver.Rating,
		Photo:  driver.Photo,
		Car:    VehicleDTO(driver.Car),
	}
	if driver.Location.Latitude != 0 || driver.Location.Longitude != 0 {
		resp.Location = &LatLngDTO{
			Latitude:  driver.Location.Latitude,
			Longitude: driver.Location.Longitude,
		}
	}
	return resp
}

func toFareDTO(fare service.FareBreakdown) FareBreakdownDTO {
	return FareBreakdownDTO{
		BaseFare:     money(fare.BaseFare),
		DistanceKm:   fmt.Sprintf("%.1f", fare.DistanceKm),
		DistanceFare: money(fare.DistanceFare),
		TimeFare:     money(fare.TimeFare),
		Total:        money(fare.Total),
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
