package tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lhycamae2002/ManageRide/internal/app"
	"github.com/lhycamae2002/ManageRide/internal/domain"
	"github.com/lhycamae2002/ManageRide/internal/handler"
	"github.com/lhycamae2002/ManageRide/internal/service"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *MockRideRepository, *MockRideEventRepository) {
	t.Helper()

	rideRepo := NewMockRideRepository()
	eventRepo := NewMockRideEventRepository()
	rideService := service.NewRideService(rideRepo, eventRepo)

	router := app.NewRouter(app.RouterDeps{
		RideHandler: handler.NewRideHandler(rideService),
		JWTSecret:   testJWTSecret,
	})
	return router, rideRepo, eventRepo
}

func mintToken(t *testing.T, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "ops",
		"role":     role,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doRequest(router *gin.Engine, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRideAPI_Unauthenticated(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(router, "/v1/rides", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRideAPI_ForbiddenForNonAdmin(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(router, "/v1/rides", mintToken(t, "user"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRideAPI_ListEnvelope(t *testing.T) {
	router, rideRepo, _ := newTestRouter(t)

	dropLat, dropLng := 12.91, 77.64
	pickup := time.Date(2026, 2, 3, 9, 30, 0, 0, time.UTC)
	rideRepo.SetPage([]*domain.Ride{
		{
			ID:     1,
			Status: "en-route",
			Rider: &domain.User{
				ID: 5, Username: "alice", FirstName: "Alice", LastName: "Lee",
				Email: "alice@example.com", Role: "user", PhoneNumber: "+1555",
			},
			Driver:           nil, // deleted driver serializes as null
			PickupLatitude:   12.97,
			PickupLongitude:  77.59,
			DropoffLatitude:  &dropLat,
			DropoffLongitude: &dropLng,
			PickupTime:       &pickup,
		},
	}, 1)

	rec := doRequest(router, "/v1/rides", mintToken(t, domain.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp handler.ListRidesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Count != 1 || len(resp.Results) != 1 {
		t.Fatalf("expected one result, got count=%d results=%d", resp.Count, len(resp.Results))
	}
	if resp.Next != nil || resp.Previous != nil {
		t.Errorf("expected no pagination links on a single page, got next=%v previous=%v", resp.Next, resp.Previous)
	}

	ride := resp.Results[0]
	if ride.Rider == nil || ride.Rider.Email != "alice@example.com" {
		t.Errorf("expected nested rider, got %+v", ride.Rider)
	}
	if ride.Driver != nil {
		t.Errorf("expected null driver, got %+v", ride.Driver)
	}

	// The events key must be a JSON list even when empty, never null.
	if !strings.Contains(rec.Body.String(), `"events":[]`) {
		t.Errorf(`expected "events":[] in body, got %s`, rec.Body.String())
	}
}

func TestRideAPI_PaginationLinks(t *testing.T) {
	router, rideRepo, _ := newTestRouter(t)
	rideRepo.SetPage([]*domain.Ride{{ID: 21, Status: "completed"}}, 50)

	rec := doRequest(router, "/v1/rides?page=2&status=completed", mintToken(t, domain.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp handler.ListRidesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Next == nil || !strings.Contains(*resp.Next, "page=3") {
		t.Errorf("expected next link to page 3, got %v", resp.Next)
	}
	if resp.Previous == nil || !strings.Contains(*resp.Previous, "page=1") {
		t.Errorf("expected previous link to page 1, got %v", resp.Previous)
	}
	// Links must preserve the other query parameters.
	if resp.Next != nil && !strings.Contains(*resp.Next, "status=completed") {
		t.Errorf("expected next link to keep filters, got %v", *resp.Next)
	}
}

func TestRideAPI_ValidationFailures(t *testing.T) {
	testCases := []struct {
		name   string
		target string
	}{
		{"distance without coordinates", "/v1/rides?ordering=distance"},
		{"distance with bad lat", "/v1/rides?ordering=distance&lat=abc&lng=77.6"},
		{"unknown ordering", "/v1/rides?ordering=created_at"},
		{"malformed page", "/v1/rides?page=zero"},
		{"malformed page size", "/v1/rides?page_size=-2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router, _, _ := newTestRouter(t)

			rec := doRequest(router, tc.target, mintToken(t, domain.RoleAdmin))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}

			var resp handler.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Error == "" {
				t.Error("expected error message in body")
			}
		})
	}
}

func TestRideAPI_GetRide(t *testing.T) {
	router, rideRepo, eventRepo := newTestRouter(t)
	rideRepo.SetPage([]*domain.Ride{{ID: 42, Status: "dropoff", PickupLatitude: 1, PickupLongitude: 2}}, 1)
	eventRepo.AddEvent(&domain.RideEvent{ID: 9, RideID: 42, Description: "driver arrived", CreatedAt: time.Now().UTC().Add(-time.Hour)})

	rec := doRequest(router, "/v1/rides/42", mintToken(t, domain.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var ride handler.RideResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &ride); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ride.ID != 42 || len(ride.Events) != 1 || ride.Events[0].Description != "driver arrived" {
		t.Errorf("unexpected ride payload: %+v", ride)
	}
}

func TestRideAPI_GetRideNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(router, "/v1/rides/999", mintToken(t, domain.RoleAdmin))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRideAPI_GetRideInvalidID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(router, "/v1/rides/not-a-number", mintToken(t, domain.RoleAdmin))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRideResponse_SerializationRoundTrip(t *testing.T) {
	original := handler.RideResponse{
		ID:              3,
		Status:          "requested",
		Rider:           nil,
		Driver:          nil,
		PickupLatitude:  12.5,
		PickupLongitude: 77.25,
		Events:          []handler.RideEventResponse{},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded handler.RideResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip mismatch:\noriginal: %+v\ndecoded:  %+v", original, decoded)
	}
}
