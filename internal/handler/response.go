package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelplan/internal/repository"
	"travelplan/internal/service"
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
	case errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidTitle),
		errors.Is(err, service.ErrInvalidDateFormat),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidBudget),
		errors.Is(err, service.ErrInvalidTier),
		errors.Is(err, service.ErrCityNotFound),
		errors.Is(err, service.ErrHomeCityNotSet),
		errors.Is(err, service.ErrUnknownSelection):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrTripNotPending),
		errors.Is(err, service.ErrTripCancelled),
		errors.Is(err, service.ErrItineraryNotReady):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
