package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/lhycamae2002/ManageRide/internal/domain"
)

// RideEventRepository is a PostgreSQL implementation of
// repository.RideEventRepository.
type RideEventRepository struct {
	q Querier
}

// NewRideEventRepository creates a new PostgreSQL ride event repository.
func NewRideEventRepository(db *sql.DB) *RideEventRepository {
	return &RideEventRepository{q: db}
}

// ListForRidesSince fetches every event belonging to one of rideIDs
// created at or after since, in a single query. The created_at filter
// keeps the scan bounded to the window instead of the full event table.
func (r *RideEventRepository) ListForRidesSince(ctx context.Context, rideIDs []int64, since time.Time) ([]*domain.RideEvent, error) {
	if len(rideIDs) == 0 {
		return []*domain.RideEvent{}, nil
	}

	query := `
		SELECT id, ride_id, description, created_at
		FROM ride_events
		WHERE ride_id = ANY($1) AND created_at >= $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.q.QueryContext(ctx, query, pq.Array(rideIDs), since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListForRideSince fetches a single ride's events created at or after
// since.
func (r *RideEventRepository) ListForRideSince(ctx context.Context, rideID int64, since time.Time) ([]*domain.RideEvent, error) {
	query := `
		SELECT id, ride_id, description, created_at
		FROM ride_events
		WHERE ride_id = $1 AND created_at >= $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.q.QueryContext(ctx, query, rideID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]*domain.RideEvent, error) {
	events := []*domain.RideEvent{}
	for rows.Next() {
		var event domain.RideEvent
		if err := rows.Scan(&event.ID, &event.RideID, &event.Description, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	return events, rows.Err()
}
