package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lhycamae2002/ManageRide/internal/domain"
	"github.com/lhycamae2002/ManageRide/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of repository.RideRepository.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides []*domain.Ride
	total int

	// Counters for verification
	CountCallCount   int32
	ListCallCount    int32
	GetByIDCallCount int32

	// LastQuery records the query the service built.
	LastQuery repository.RideQuery

	// Error injection
	CountError   error
	ListError    error
	GetByIDError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{}
}

// SetPage seeds the page of rides List returns and the total Count
// reports.
func (m *MockRideRepository) SetPage(rides []*domain.Ride, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides = rides
	m.total = total
}

func (m *MockRideRepository) Count(ctx context.Context, q repository.RideQuery) (int, error) {
	atomic.AddInt32(&m.CountCallCount, 1)
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.Lock()
	m.LastQuery = q
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total, nil
}

func (m *MockRideRepository) List(ctx context.Context, q repository.RideQuery) ([]*domain.Ride, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	m.LastQuery = q
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Ride, len(m.rides))
	for i, ride := range m.rides {
		copy := *ride
		out[i] = &copy
	}
	return out, nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id int64) (*domain.Ride, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ride := range m.rides {
		if ride.ID == id {
			copy := *ride
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Query returns the last recorded query for test assertions.
func (m *MockRideRepository) Query() repository.RideQuery {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastQuery
}

// ──────────────────────────────────────────────
// MOCK RIDE EVENT REPOSITORY
// ──────────────────────────────────────────────

// MockRideEventRepository is a mock implementation of
// repository.RideEventRepository. It applies the window semantics in
// memory so tests exercise real thresholds.
type MockRideEventRepository struct {
	mu     sync.RWMutex
	events []*domain.RideEvent

	// Counters for verification
	BatchCallCount  int32
	SingleCallCount int32

	// LastSince records the threshold the service passed.
	LastSince time.Time

	// Error injection
	ListError error
}

// NewMockRideEventRepository creates a new mock ride event repository.
func NewMockRideEventRepository() *MockRideEventRepository {
	return &MockRideEventRepository{}
}

// AddEvent adds an event to the mock repository.
func (m *MockRideEventRepository) AddEvent(event *domain.RideEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockRideEventRepository) ListForRidesSince(ctx context.Context, rideIDs []int64, since time.Time) ([]*domain.RideEvent, error) {
	atomic.AddInt32(&m.BatchCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	m.LastSince = since
	m.mu.Unlock()

	wanted := make(map[int64]struct{}, len(rideIDs))
	for _, id := range rideIDs {
		wanted[id] = struct{}{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.RideEvent{}
	for _, event := range m.events {
		if _, ok := wanted[event.RideID]; !ok {
			continue
		}
		if event.CreatedAt.Before(since) {
			continue
		}
		copy := *event
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRideEventRepository) ListForRideSince(ctx context.Context, rideID int64, since time.Time) ([]*domain.RideEvent, error) {
	atomic.AddInt32(&m.SingleCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.Lock()
	m.LastSince = since
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.RideEvent{}
	for _, event := range m.events {
		if event.RideID != rideID || event.CreatedAt.Before(since) {
			continue
		}
		copy := *event
		result = append(result, &copy)
	}
	return result, nil
}

// Since returns the last recorded threshold for test assertions.
func (m *MockRideEventRepository) Since() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastSince
}
