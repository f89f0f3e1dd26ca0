package service

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lhycamae2002/ManageRide/internal/domain"
	"github.com/lhycamae2002/ManageRide/internal/repository"
)

const (
	// DefaultPageSize is the page size used when the request does not
	// specify one.
	DefaultPageSize = 20

	// maxPageSize caps page_size so a single request cannot ask for an
	// unbounded page.
	maxPageSize = 100

	// eventWindow is how far back from the request time a ride event
	// still counts as recent.
	eventWindow = 24 * time.Hour
)

// RideService builds and executes the ride listing query.
type RideService struct {
	rideRepo  repository.RideRepository
	eventRepo repository.RideEventRepository
}

// NewRideService creates a new RideService.
func NewRideService(rideRepo repository.RideRepository, eventRepo repository.RideEventRepository) *RideService {
	return &RideService{
		rideRepo:  rideRepo,
		eventRepo: eventRepo,
	}
}

// ListRidesRequest contains the raw listing parameters. Lat and Lng stay
// strings so absent and malformed values can be told apart during
// validation; Page and PageSize of zero mean "not specified".
type ListRidesRequest struct {
	Status     string
	RiderEmail string
	Ordering   string
	Lat        string
	Lng        string
	Page       int
	PageSize   int
}

// ListRidesResult contains one page of enriched rides plus the
// pagination metadata the response envelope needs.
type ListRidesResult struct {
	Rides    []*domain.Ride
	Total    int
	Page     int
	PageSize int
}

// ListRides validates the request, then assembles one page of rides in
// a bounded number of store round trips: one count, one joined page
// fetch, and one windowed event fetch restricted to the page's ride
// IDs. Events are grouped in memory and attached per ride, so the cost
// of a page depends on the page size, never on the size of the event
// table. All validation happens before the first query.
func (s *RideService) ListRides(ctx context.Context, req ListRidesRequest) (*ListRidesResult, error) {
	page, size, err := normalizePagination(req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	q, err := buildRideQuery(req)
	if err != nil {
		return nil, err
	}
	q.Limit = size
	q.Offset = (page - 1) * size

	// One threshold per request: the query and any later attachment
	// decisions see the same 24h window.
	threshold := time.Now().UTC().Add(-eventWindow)

	total, err := s.rideRepo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	rides, err := s.rideRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := s.attachRecentEvents(ctx, rides, threshold); err != nil {
		return nil, err
	}

	return &ListRidesResult{
		Rides:    rides,
		Total:    total,
		Page:     page,
		PageSize: size,
	}, nil
}

// GetRide retrieves a single ride with its recent events. This is the
// only path that fetches events for one ride at a time; the listing
// path always batches.
func (s *RideService) GetRide(ctx context.Context, id int64) (*domain.Ride, error) {
	ride, err := s.rideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	threshold := time.Now().UTC().Add(-eventWindow)
	events, err := s.eventRepo.ListForRideSince(ctx, ride.ID, threshold)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.RideEvent{}
	}
	ride.Events = events

	return ride, nil
}

// attachRecentEvents fetches the recent events for every ride on the
// page in a single query and distributes them to their owners. Every
// ride ends up with a non-nil Events slice.
func (s *RideService) attachRecentEvents(ctx context.Context, rides []*domain.Ride, threshold time.Time) error {
	if len(rides) == 0 {
		return nil
	}

	ids := make([]int64, len(rides))
	for i, ride := range rides {
		ids[i] = ride.ID
	}

	events, err := s.eventRepo.ListForRidesSince(ctx, ids, threshold)
	if err != nil {
		return err
	}

	byRide := make(map[int64][]*domain.RideEvent, len(rides))
	for _, event := range events {
		byRide[event.RideID] = append(byRide[event.RideID], event)
	}

	for _, ride := range rides {
		if grouped := byRide[ride.ID]; grouped != nil {
			ride.Events = grouped
		} else {
			ride.Events = []*domain.RideEvent{}
		}
	}
	return nil
}

// buildRideQuery validates the filter, ordering, and coordinate
// parameters and translates them into a repository query. Pagination is
// filled in by the caller.
func buildRideQuery(req ListRidesRequest) (repository.RideQuery, error) {
	order, desc, err := parseOrdering(req.Ordering)
	if err != nil {
		return repository.RideQuery{}, err
	}

	// Distance ordering needs a reference point. Absent coordinates and
	// malformed coordinates are distinct failures, checked in turn.
	if order == repository.OrderDistance && (req.Lat == "" || req.Lng == "") {
		return repository.RideQuery{}, ErrMissingCoordinates
	}

	var near *repository.Coordinates
	var lat, lng float64
	if req.Lat != "" {
		if lat, err = parseCoordinate(req.Lat); err != nil {
			return repository.RideQuery{}, err
		}
	}
	if req.Lng != "" {
		if lng, err = parseCoordinate(req.Lng); err != nil {
			return repository.RideQuery{}, err
		}
	}
	if req.Lat != "" && req.Lng != "" {
		near = &repository.Coordinates{Lat: lat, Lng: lng}
	}

	return repository.RideQuery{
		Status:     req.Status,
		RiderEmail: req.RiderEmail,
		Order:      order,
		Descending: desc,
		Near:       near,
	}, nil
}

// parseOrdering maps the ordering parameter to a sort key and
// direction. A leading "-" flips the direction.
func parseOrdering(ordering string) (repository.RideOrder, bool, error) {
	desc := strings.HasPrefix(ordering, "-")
	switch strings.TrimPrefix(ordering, "-") {
	case "":
		if desc {
			return repository.OrderNone, false, ErrInvalidOrdering
		}
		return repository.OrderNone, false, nil
	case "pickup_time":
		return repository.OrderPickupTime, desc, nil
	case "distance":
		return repository.OrderDistance, desc, nil
	default:
		return repository.OrderNone, false, ErrInvalidOrdering
	}
}

// parseCoordinate parses a latitude or longitude string, rejecting
// anything that is not a finite number (ParseFloat accepts "NaN" and
// "Inf", which are useless as sort reference points).
func parseCoordinate(value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidCoordinates
	}
	return v, nil
}

// normalizePagination applies defaults and bounds: page defaults to 1,
// page_size to DefaultPageSize, and page_size is capped at maxPageSize.
func normalizePagination(page, size int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if size == 0 {
		size = DefaultPageSize
	}
	if size < 1 {
		return 0, 0, ErrInvalidPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, nil
}
