package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samali323/carbonemissioncalc-sub000/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockRouteCacheRepository struct {
	mock.Mock
}

func (m *MockRouteCacheRepository) Get(ctx context.Context, key domain.RouteKey) (*domain.RouteCacheEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteCacheEntry), args.Error(1)
}

func (m *MockRouteCacheRepository) Upsert(ctx context.Context, entry *domain.RouteCacheEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRouteCacheRepository) Delete(ctx context.Context, key domain.RouteKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockRoutingProvider struct {
	mock.Mock
}

func (m *MockRoutingProvider) Lookup(ctx context.Context, origin, destination domain.Coordinate, mode domain.TravelMode) (domain.RouteLookup, error) {
	args := m.Called(ctx, origin, destination, mode)
	return args.Get(0).(domain.RouteLookup), args.Error(1)
}

type MockRouteResolver struct {
	mock.Mock
}

func (m *MockRouteResolver) Resolve(ctx context.Context, origin, destination domain.Place) (*domain.RouteCacheEntry, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteCacheEntry), args.Error(1)
}

// memoryRouteRepo is a map-backed repository for tests that care about
// state rather than call expectations.
type memoryRouteRepo struct {
	mu      sync.Mutex
	rows    map[domain.RouteKey]domain.RouteCacheEntry
	upserts int
}

func newMemoryRouteRepo() *memoryRouteRepo {
	return &memoryRouteRepo{rows: make(map[domain.RouteKey]domain.RouteCacheEntry)}
}

func (r *memoryRouteRepo) Get(_ context.Context, key domain.RouteKey) (*domain.RouteCacheEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[key]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *memoryRouteRepo) Upsert(_ context.Context, entry *domain.RouteCacheEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[entry.Key()] = *entry
	r.upserts++
	return nil
}

func (r *memoryRouteRepo) Delete(_ context.Context, key domain.RouteKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, key)
	return nil
}

// countingProvider answers every lookup after delay and counts calls per
// mode. Modes listed in noRoute report domain.ErrNoRoute; fail makes every
// call return that error.
type countingProvider struct {
	delay   time.Duration
	noRoute map[domain.TravelMode]bool
	fail    error
	driving atomic.Int32
	transit atomic.Int32
}

func (p *countingProvider) Lookup(ctx context.Context, _, _ domain.Coordinate, mode domain.TravelMode) (domain.RouteLookup, error) {
	switch mode {
	case domain.TravelModeDriving:
		p.driving.Add(1)
	case domain.TravelModeTransit:
		p.transit.Add(1)
	}

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return domain.RouteLookup{}, ctx.Err()
		}
	}
	if p.fail != nil {
		return domain.RouteLookup{}, p.fail
	}
	if p.noRoute[mode] {
		return domain.RouteLookup{}, domain.ErrNoRoute
	}
	if mode == domain.TravelModeDriving {
		return domain.RouteLookup{DurationS: 12600, DistanceM: 460000}, nil
	}
	return domain.RouteLookup{DurationS: 8100, DistanceM: 492000}, nil
}

func (p *countingProvider) calls() (driving, transit int32) {
	return p.driving.Load(), p.transit.Load()
}

type MockRouteStore struct {
	MockRouteResolver
}

func (m *MockRouteStore) Invalidate(ctx context.Context, key domain.RouteKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}
