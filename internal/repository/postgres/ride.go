package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lhycamae2002/ManageRide/internal/domain"
	"github.com/lhycamae2002/ManageRide/internal/repository"
)

// errDistanceWithoutPoint is returned when distance ordering is
// requested without coordinates. The service validates this before the
// repository is reached, so hitting it indicates a programming error.
var errDistanceWithoutPoint = errors.New("distance ordering requires coordinates")

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// rideColumns are the columns selected for a ride row. Rider and driver
// attributes come from two LEFT JOINs on users, so a ride whose rider
// or driver was deleted still scans (as NULLs) instead of dropping out
// of the result set.
const rideColumns = `r.id, r.status,
	r.pickup_latitude, r.pickup_longitude,
	r.dropoff_latitude, r.dropoff_longitude, r.pickup_time,
	rider.id, rider.username, rider.first_name, rider.last_name, rider.email, rider.role, rider.phone_number,
	driver.id, driver.username, driver.first_name, driver.last_name, driver.email, driver.role, driver.phone_number`

// buildListQuery renders one page of the ride listing as a single SQL
// statement: filters, optional distance annotation, ordering with the
// ride-ID tie-break, and LIMIT/OFFSET.
//
// The distance column is the planar squared distance
// (Δlat)² + (Δlng)² from q.Near — an intentional approximation of real
// geographic distance. It is wrong near the poles and the
// antimeridian, but it is computable and sortable inside the database,
// which is what lets distance-ordered pages paginate without pulling
// the whole table into memory.
func buildListQuery(q repository.RideQuery) (string, []any, error) {
	var sb strings.Builder
	args := make([]any, 0, 6)

	sb.WriteString("SELECT " + rideColumns)
	if q.Near != nil {
		args = append(args, q.Near.Lat, q.Near.Lng)
		fmt.Fprintf(&sb, `,
	(r.pickup_latitude - $%d) * (r.pickup_latitude - $%d) + (r.pickup_longitude - $%d) * (r.pickup_longitude - $%d) AS distance`,
			len(args)-1, len(args)-1, len(args), len(args))
	}
	sb.WriteString(`
FROM rides r
LEFT JOIN users rider ON rider.id = r.rider_id
LEFT JOIN users driver ON driver.id = r.driver_id`)

	args = appendRideFilters(&sb, q, args)

	dir := "ASC"
	if q.Descending {
		dir = "DESC"
	}
	switch q.Order {
	case repository.OrderPickupTime:
		sb.WriteString("\nORDER BY r.pickup_time " + dir + ", r.id ASC")
	case repository.OrderDistance:
		if q.Near == nil {
			return "", nil, errDistanceWithoutPoint
		}
		sb.WriteString("\nORDER BY distance " + dir + ", r.id ASC")
	default:
		sb.WriteString("\nORDER BY r.id ASC")
	}

	args = append(args, q.Limit, q.Offset)
	fmt.Fprintf(&sb, "\nLIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return sb.String(), args, nil
}

// buildCountQuery renders the matching-row count for the same filters.
// The rider join is only needed when filtering on the rider's email.
func buildCountQuery(q repository.RideQuery) (string, []any) {
	var sb strings.Builder
	args := make([]any, 0, 2)

	sb.WriteString("SELECT COUNT(*)\nFROM rides r")
	if q.RiderEmail != "" {
		sb.WriteString("\nLEFT JOIN users rider ON rider.id = r.rider_id")
	}
	args = appendRideFilters(&sb, q, args)

	return sb.String(), args
}

// appendRideFilters appends the WHERE clause for the query's
// exact-match filters and returns the extended argument list.
func appendRideFilters(sb *strings.Builder, q repository.RideQuery, args []any) []any {
	var conds []string
	if q.Status != "" {
		args = append(args, q.Status)
		conds = append(conds, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if q.RiderEmail != "" {
		args = append(args, q.RiderEmail)
		conds = append(conds, fmt.Sprintf("rider.email = $%d", len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString("\nWHERE " + strings.Join(conds, " AND "))
	}
	return args
}

// Count returns the total number of rides matching the query's filters.
func (r *RideRepository) Count(ctx context.Context, q repository.RideQuery) (int, error) {
	query, args := buildCountQuery(q)

	var total int
	if err := r.q.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// List retrieves one page of rides with rider and driver joined in.
func (r *RideRepository) List(ctx context.Context, q repository.RideQuery) ([]*domain.Ride, error) {
	query, args, err := buildListQuery(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rides := make([]*domain.Ride, 0, q.Limit)
	for rows.Next() {
		ride, err := scanRide(rows.Scan, q.Near != nil)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// GetByID retrieves a single ride with rider and driver joined in.
func (r *RideRepository) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + `
FROM rides r
LEFT JOIN users rider ON rider.id = r.rider_id
LEFT JOIN users driver ON driver.id = r.driver_id
WHERE r.id = $1`

	row := r.q.QueryRowContext(ctx, query, id)
	ride, err := scanRide(row.Scan, false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ride, nil
}

// nullableUser collects the scan targets for a LEFT JOINed user.
type nullableUser struct {
	id          sql.NullInt64
	username    sql.NullString
	firstName   sql.NullString
	lastName    sql.NullString
	email       sql.NullString
	role        sql.NullString
	phoneNumber sql.NullString
}

func (u *nullableUser) targets() []any {
	return []any{&u.id, &u.username, &u.firstName, &u.lastName, &u.email, &u.role, &u.phoneNumber}
}

func (u *nullableUser) user() *domain.User {
	if !u.id.Valid {
		return nil
	}
	return &domain.User{
		ID:          u.id.Int64,
		Username:    u.username.String,
		FirstName:   u.firstName.String,
		LastName:    u.lastName.String,
		Email:       u.email.String,
		Role:        u.role.String,
		PhoneNumber: u.phoneNumber.String,
	}
}

// scanRide scans one ride row. withDistance must match whether the
// query selected the distance column; the value itself is a sort key
// only and is discarded.
func scanRide(scan func(dest ...any) error, withDistance bool) (*domain.Ride, error) {
	var (
		ride                   domain.Ride
		dropoffLat, dropoffLng sql.NullFloat64
		pickupTime             sql.NullTime
		rider, driver          nullableUser
		distance               sql.NullFloat64
	)

	dest := []any{&ride.ID, &ride.Status, &ride.PickupLatitude, &ride.PickupLongitude, &dropoffLat, &dropoffLng, &pickupTime}
	dest = append(dest, rider.targets()...)
	dest = append(dest, driver.targets()...)
	if withDistance {
		dest = append(dest, &distance)
	}

	if err := scan(dest...); err != nil {
		return nil, err
	}

	if dropoffLat.Valid {
		ride.DropoffLatitude = &dropoffLat.Float64
	}
	if dropoffLng.Valid {
		ride.DropoffLongitude = &dropoffLng.Float64
	}
	if pickupTime.Valid {
		t := pickupTime.Time
		ride.PickupTime = &t
	}
	ride.Rider = rider.user()
	ride.Driver = driver.user()

	return &ride, nil
}
