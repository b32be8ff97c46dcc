package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType represents the type of booking lifecycle event
type BookingEventType string

const (
	// BookingEventTypeNewRequest is emitted once, immediately after a
	// booking is durably created
	BookingEventTypeNewRequest BookingEventType = "newBookingRequest"

	// BookingEventTypeStatusUpdate is emitted once per successful status
	// transition
	BookingEventTypeStatusUpdate BookingEventType = "bookingStatusUpdate"
)

// BookingEvent represents a real-time booking lifecycle event delivered
// to live-connected parties, best-effort
type BookingEvent struct {
	ID        string           `json:"id"`
	BookingID string           `json:"bookingId"`
	EventType BookingEventType `json:"eventType"`
	Timestamp time.Time        `json:"timestamp"`

	// Booking carries the full snapshot for newBookingRequest events
	Booking *Booking `json:"booking,omitempty"`

	// Status and ServiceName carry the compact payload for
	// bookingStatusUpdate events
	Status      BookingStatus `json:"status,omitempty"`
	ServiceName string        `json:"serviceName,omitempty"`
}

// NewBookingRequestEvent creates the event announcing a freshly created booking
func NewBookingRequestEvent(booking *Booking) *BookingEvent {
	return &BookingEvent{
		ID:        uuid.New().String(),
		BookingID: booking.ID,
		EventType: BookingEventTypeNewRequest,
		Timestamp: time.Now(),
		Booking:   booking,
	}
}

// NewStatusUpdateEvent creates the event announcing a status transition
func NewStatusUpdateEvent(booking *Booking) *BookingEvent {
	return &BookingEvent{
		ID:          uuid.New().String(),
		BookingID:   booking.ID,
		EventType:   BookingEventTypeStatusUpdate,
		Timestamp:   time.Now(),
		Status:      booking.Status,
		ServiceName: booking.ServiceName,
	}
}
