package repository

import (
	"context"
	"time"

	"github.com/lhycamae2002/ManageRide/internal/domain"
)

// RideEventRepository defines the read operations for ride events.
type RideEventRepository interface {
	// ListForRidesSince retrieves, in a single query, every event that
	// belongs to one of rideIDs and was created at or after since.
	// This is the batch fetch the listing path uses to avoid a query
	// per ride.
	ListForRidesSince(ctx context.Context, rideIDs []int64, since time.Time) ([]*domain.RideEvent, error)

	// ListForRideSince retrieves the events of a single ride created at
	// or after since. Only the single-ride retrieval path uses this;
	// the listing path must never fall back to per-ride fetches.
	ListForRideSince(ctx context.Context, rideID int64, since time.Time) ([]*domain.RideEvent, error)
}
