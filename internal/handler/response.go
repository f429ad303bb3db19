package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/repository"
	"rideshare/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidOrigin),
		errors.Is(err, service.ErrInvalidDestination),
		errors.Is(err, service.ErrInvalidRideType),
		errors.Is(err, service.ErrInvalidEstimatedTime),
		errors.Is(err, service.ErrInvalidRideStatus),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidLocation),
		errors.Is(err, service.ErrInvalidPaymentID),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidPaymentDetails),
		errors.Is(err, service.ErrMissingCredentials):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotRideOwner),
		errors.Is(err, service.ErrNotPaymentOwner):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, service.ErrRideCompleted),
		errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrRideNotAssignable),
		errors.Is(err, service.ErrRideNotPayable),
		errors.Is(err, service.ErrRideBusy),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, repository.ErrDuplicateID):
		return http.StatusConflict

	// Service unavailable
	case errors.Is(err, service.ErrNoDriverAvailable):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
