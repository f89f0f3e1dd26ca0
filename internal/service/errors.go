package service

import "errors"

var (
	// ErrInvalidOrdering is returned when the ordering parameter is not
	// one of the recognized sort keys.
	ErrInvalidOrdering = errors.New("invalid ordering, must be one of: pickup_time, -pickup_time, distance, -distance")

	// ErrMissingCoordinates is returned when distance ordering is
	// requested without both lat and lng.
	ErrMissingCoordinates = errors.New(`sorting by distance requires both "lat" and "lng" query parameters`)

	// ErrInvalidCoordinates is returned when lat or lng is not a finite
	// numeric value.
	ErrInvalidCoordinates = errors.New(`"lat" and "lng" must be valid numeric values`)

	// ErrInvalidRideID is returned when a ride identifier is not a
	// valid integer.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidPage is returned when the page parameter is not a
	// positive integer.
	ErrInvalidPage = errors.New("page must be a positive integer")

	// ErrInvalidPageSize is returned when the page_size parameter is
	// not a positive integer.
	ErrInvalidPageSize = errors.New("page_size must be a positive integer")
)
