package repositories

import (
	"context"

	"github.com/servicehub/backend/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations.
// The single shared mutable resource in the system; all status mutations
// go through conditional updates so that racing writers on one booking id
// serialize at the store.
type BookingRepository interface {
	// Create persists a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// ListByCustomer retrieves bookings owned by a customer, newest first
	ListByCustomer(ctx context.Context, customerID string) ([]*entities.Booking, error)

	// ListForProvider retrieves the union of marketplace-pending bookings
	// in the provider's category and bookings assigned to the provider,
	// newest first
	ListForProvider(ctx context.Context, providerID string, category entities.ServiceCategory) ([]*entities.Booking, error)

	// ListAll retrieves bookings matching the filter, newest first
	ListAll(ctx context.Context, filter BookingFilter) ([]*entities.Booking, error)

	// UpdateStatus transitions a booking from one status to another.
	// The update applies only while the stored status still equals from;
	// it returns false when the row was concurrently modified.
	UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) (bool, error)

	// ClaimPending atomically assigns providerID and sets the target status
	// on a booking that is still pending and unassigned. Returns false when
	// another provider already claimed it.
	ClaimPending(ctx context.Context, id, providerID string, to entities.BookingStatus) (bool, error)

	// SetRating attaches a rating and optional review to a completed
	// booking. Last write wins.
	SetRating(ctx context.Context, id string, rating int, review *string) error
}

// BookingFilter defines filters for listing bookings
type BookingFilter struct {
	Status   entities.BookingStatus
	Category entities.ServiceCategory
	Limit    int
	Offset   int
}
