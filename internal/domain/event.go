package domain

import "time"

// RideEvent is an immutable timeline entry belonging to exactly one
// ride. CreatedAt is set once at creation and never changes.
type RideEvent struct {
	ID          int64
	RideID      int64
	Description string
	CreatedAt   time.Time
}
