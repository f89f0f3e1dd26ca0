package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lhycamae2002/ManageRide/internal/domain"
	"github.com/lhycamae2002/ManageRide/internal/repository"
)

func TestGetRide_AttachesRecentEvents(t *testing.T) {
	svc, rideRepo, eventRepo := newListingService()
	rideRepo.SetPage([]*domain.Ride{{ID: 42, Status: "dropoff"}}, 1)

	now := time.Now().UTC()
	eventRepo.AddEvent(&domain.RideEvent{ID: 1, RideID: 42, Description: "recent", CreatedAt: now.Add(-2 * time.Hour)})
	eventRepo.AddEvent(&domain.RideEvent{ID: 2, RideID: 42, Description: "stale", CreatedAt: now.Add(-30 * time.Hour)})

	ride, err := svc.GetRide(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ride.Events) != 1 || ride.Events[0].ID != 1 {
		t.Errorf("expected only the recent event, got %+v", ride.Events)
	}
	if n := atomic.LoadInt32(&eventRepo.SingleCallCount); n != 1 {
		t.Errorf("expected one single-ride event fetch, got %d", n)
	}
}

func TestGetRide_EmptyEventsIsNotNil(t *testing.T) {
	svc, rideRepo, _ := newListingService()
	rideRepo.SetPage([]*domain.Ride{{ID: 42, Status: "requested"}}, 1)

	ride, err := svc.GetRide(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ride.Events == nil {
		t.Error("expected empty events slice, got nil")
	}
}

func TestGetRide_NotFound(t *testing.T) {
	svc, _, _ := newListingService()

	_, err := svc.GetRide(context.Background(), 999)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
