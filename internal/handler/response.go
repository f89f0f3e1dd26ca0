package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lhycamae2002/ManageRide/internal/repository"
	"github.com/lhycamae2002/ManageRide/internal/service"
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

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidOrdering),
		errors.Is(err, service.ErrMissingCoordinates),
		errors.Is(err, service.ErrInvalidCoordinates),
		errors.Is(err, service.ErrInvalidRideID),
		errors.Is(err, service.ErrInvalidPage),
		errors.Is(err, service.ErrInvalidPageSize):
		return http.StatusBadRequest

	// Anything else is a store or internal failure.
	default:
		return http.StatusInternalServerError
	}
}
