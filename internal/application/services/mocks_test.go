package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/providers"
	"github.com/servicehub/backend/internal/domain/repositories"
)

// Mocks

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entities.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]*entities.Booking, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForProvider(ctx context.Context, providerID string, category entities.ServiceCategory) ([]*entities.Booking, error) {
	args := m.Called(ctx, providerID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ClaimPending(ctx context.Context, id, providerID string, to entities.BookingStatus) (bool, error) {
	args := m.Called(ctx, id, providerID, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) SetRating(ctx context.Context, id string, rating int, review *string) error {
	args := m.Called(ctx, id, rating, review)
	return args.Error(0)
}

type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) GetByID(ctx context.Context, id string) (*entities.Identity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

func (m *MockIdentityRepository) FindAvailableProvider(ctx context.Context, category entities.ServiceCategory) (*entities.Identity, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

func (m *MockIdentityRepository) ListProviders(ctx context.Context) ([]*entities.Identity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Identity), args.Error(1)
}

func (m *MockIdentityRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	args := m.Called(ctx, id, blocked)
	return args.Error(0)
}

func (m *MockIdentityRepository) CountByRole(ctx context.Context, role entities.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

type MockComplaintRepository struct {
	mock.Mock
}

func (m *MockComplaintRepository) Create(ctx context.Context, complaint *entities.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}

func (m *MockComplaintRepository) GetByID(ctx context.Context, id string) (*entities.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) ListAll(ctx context.Context) ([]*entities.Complaint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Complaint), args.Error(1)
}

func (m *MockComplaintRepository) UpdateStatus(ctx context.Context, id string, status entities.ComplaintStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// recordingEventBus captures published events and lets tests wait for the
// detached publish goroutine instead of racing it
type recordingEventBus struct {
	mu        sync.Mutex
	published map[string][]*entities.BookingEvent
	notify    chan struct{}
}

func newRecordingEventBus() *recordingEventBus {
	return &recordingEventBus{
		published: make(map[string][]*entities.BookingEvent),
		notify:    make(chan struct{}, 16),
	}
}

func (b *recordingEventBus) Publish(ctx context.Context, channel string, event *entities.BookingEvent) error {
	b.mu.Lock()
	b.published[channel] = append(b.published[channel], event)
	b.mu.Unlock()
	b.notify <- struct{}{}
	return nil
}

func (b *recordingEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error) {
	return nil, nil
}

func (b *recordingEventBus) Unsubscribe(ctx context.Context, channel string) error { return nil }

func (b *recordingEventBus) Close() error { return nil }

func (b *recordingEventBus) eventsOn(channel string) []*entities.BookingEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*entities.BookingEvent(nil), b.published[channel]...)
}

type stubGeocoder struct {
	coords *providers.Coordinates
	err    error
}

func (g *stubGeocoder) Geocode(ctx context.Context, address string) (*providers.Coordinates, error) {
	return g.coords, g.err
}
