package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lhycamae2002/ManageRide/internal/domain"
	"github.com/lhycamae2002/ManageRide/internal/service"
)

// RideHandler handles HTTP requests for the ride administration API.
type RideHandler struct {
	rideService *service.RideService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(rideService *service.RideService) *RideHandler {
	return &RideHandler{rideService: rideService}
}

// UserResponse is the nested rider/driver representation.
type UserResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number"`
}

// RideEventResponse is the nested event representation.
type RideEventResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RideResponse is the wire representation of a ride. Rider and Driver
// serialize as null when the user was deleted; Events is always a list,
// empty when nothing happened in the last 24 hours.
type RideResponse struct {
	ID               int64               `json:"id"`
	Status           string              `json:"status"`
	Rider            *UserResponse       `json:"rider"`
	Driver           *UserResponse       `json:"driver"`
	PickupLatitude   float64             `json:"pickup_latitude"`
	PickupLongitude  float64             `json:"pickup_longitude"`
	DropoffLatitude  *float64            `json:"dropoff_latitude"`
	DropoffLongitude *float64            `json:"dropoff_longitude"`
	PickupTime       *time.Time          `json:"pickup_time"`
	Events           []RideEventResponse `json:"events"`
}

// ListRidesResponse is the page envelope for the listing endpoint.
type ListRidesResponse struct {
	Count    int            `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
	Results  []RideResponse `json:"results"`
}

// List handles GET /v1/rides
func (h *RideHandler) List(c *gin.Context) {
	page, err := parsePositiveInt(c.Query("page"), service.ErrInvalidPage)
	if err != nil {
		respondError(c, err)
		return
	}
	pageSize, err := parsePositiveInt(c.Query("page_size"), service.ErrInvalidPageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.rideService.ListRides(c.Request.Context(), service.ListRidesRequest{
		Status:     c.Query("status"),
		RiderEmail: c.Query("rider_email"),
		Ordering:   c.Query("ordering"),
		Lat:        c.Query("lat"),
		Lng:        c.Query("lng"),
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([]RideResponse, 0, len(result.Rides))
	for _, ride := range result.Rides {
		results = append(results, toRideResponse(ride))
	}

	c.JSON(http.StatusOK, ListRidesResponse{
		Count:    result.Total,
		Next:     nextPageLink(c, result),
		Previous: previousPageLink(c, result),
		Results:  results,
	})
}

// Get handles GET /v1/rides/:id
func (h *RideHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, service.ErrInvalidRideID)
		return
	}

	ride, err := h.rideService.GetRide(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponse(ride))
}

// toRideResponse shapes one enriched ride for the wire.
func toRideResponse(ride *domain.Ride) RideResponse {
	events := make([]RideEventResponse, 0, len(ride.Events))
	for _, event := range ride.Events {
		events = append(events, RideEventResponse{
			ID:          event.ID,
			Description: event.Description,
			CreatedAt:   event.CreatedAt,
		})
	}

	return RideResponse{
		ID:               ride.ID,
		Status:           ride.Status,
		Rider:            toUserResponse(ride.Rider),
		Driver:           toUserResponse(ride.Driver),
		PickupLatitude:   ride.PickupLatitude,
		PickupLongitude:  ride.PickupLongitude,
		DropoffLatitude:  ride.DropoffLatitude,
		DropoffLongitude: ride.DropoffLongitude,
		PickupTime:       ride.PickupTime,
		Events:           events,
	}
}

func toUserResponse(user *domain.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
	}
}

// nextPageLink returns the URL of the following page, or nil on the
// last page.
func nextPageLink(c *gin.Context, result *service.ListRidesResult) *string {
	if result.Page*result.PageSize >= result.Total {
		return nil
	}
	return pageLink(c, result.Page+1)
}

// previousPageLink returns the URL of the preceding page, or nil on the
// first page.
func previousPageLink(c *gin.Context, result *service.ListRidesResult) *string {
	if result.Page <= 1 {
		return nil
	}
	return pageLink(c, result.Page-1)
}

// pageLink rebuilds the request URL with the page parameter replaced.
func pageLink(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	u.Host = c.Request.Host
	u.Scheme = "http"
	if c.Request.TLS != nil {
		u.Scheme = "https"
	}

	link := u.String()
	return &link
}

// parsePositiveInt parses an optional positive integer query parameter;
// empty means "not specified" and parses to zero.
func parsePositiveInt(value string, invalid error) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, invalid
	}
	return n, nil
}
