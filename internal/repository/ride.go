package repository

import (
	"context"

	"github.com/lhycamae2002/ManageRide/internal/domain"
)

// RideOrder selects the primary sort key for a ride listing.
type RideOrder int

const (
	// OrderNone sorts by ride ID only.
	OrderNone RideOrder = iota

	// OrderPickupTime sorts by the ride's pickup time.
	OrderPickupTime

	// OrderDistance sorts by planar squared distance from Near.
	// Requires RideQuery.Near to be set.
	OrderDistance
)

// Coordinates is a geographic point used for distance ordering.
type Coordinates struct {
	Lat float64
	Lng float64
}

// RideQuery describes one page of the ride listing: exact-match
// filters, ordering, and limit/offset pagination. Rows are always
// secondarily ordered by ride ID ascending so pagination stays
// deterministic when the primary sort key has duplicates.
type RideQuery struct {
	Status     string
	RiderEmail string
	Order      RideOrder
	Descending bool
	Near       *Coordinates
	Limit      int
	Offset     int
}

// RideRepository defines the read operations for rides.
type RideRepository interface {
	// Count returns the total number of rides matching the query's
	// filters, ignoring ordering and pagination.
	Count(ctx context.Context, q RideQuery) (int, error)

	// List retrieves one page of rides with rider and driver attributes
	// joined in. Events are not populated here; the service attaches
	// them from the event repository.
	List(ctx context.Context, q RideQuery) ([]*domain.Ride, error)

	// GetByID retrieves a single ride with rider and driver joined in.
	GetByID(ctx context.Context, id int64) (*domain.Ride, error)
}
