package domain

import "time"

// Ride represents a trip record linking a rider and driver with pickup
// and dropoff coordinates.
//
// Rider and Driver are nil when the referenced user has been deleted:
// user deletion clears the reference rather than cascading, so a ride
// always survives its participants. Dropoff coordinates and pickup time
// are nil until set by the ride lifecycle flows, which live outside
// this service.
type Ride struct {
	ID               int64
	Status           string
	Rider            *User
	Driver           *User
	PickupLatitude   float64
	PickupLongitude  float64
	DropoffLatitude  *float64
	DropoffLongitude *float64
	PickupTime       *time.Time

	// Events holds the ride's events from the last 24 hours, attached
	// by the listing path. Always non-nil on rides returned by the
	// service, empty when no event qualifies.
	Events []*RideEvent
}
