package entities

import (
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusAccepted   BookingStatus = "accepted"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in-progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusDeclined   BookingStatus = "declined"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ServiceCategory classifies the kind of home service requested
type ServiceCategory string

const (
	CategoryPlumber     ServiceCategory = "Plumber"
	CategoryElectrician ServiceCategory = "Electrician"
	CategoryCleaner     ServiceCategory = "Cleaner"
	CategoryOther       ServiceCategory = "Other"
)

// ValidCategory reports whether c is a known service category
func ValidCategory(c ServiceCategory) bool {
	switch c {
	case CategoryPlumber, CategoryElectrician, CategoryCleaner, CategoryOther:
		return true
	}
	return false
}

// Location represents the service address with optional coordinates
type Location struct {
	Address   string   `json:"address" db:"address"`
	Latitude  *float64 `json:"lat,omitempty" db:"lat"`
	Longitude *float64 `json:"lng,omitempty" db:"lng"`
}

// Booking represents a single request for a home service at a given time and place
type Booking struct {
	ID              string          `json:"id" db:"id"`
	CustomerID      string          `json:"customerId" db:"customer_id"`
	ProviderID      *string         `json:"providerId" db:"provider_id"`
	ServiceID       string          `json:"serviceId" db:"service_id"`
	ServiceName     string          `json:"serviceName" db:"service_name"`
	ServiceCategory ServiceCategory `json:"serviceCategory" db:"service_category"`
	Date            string          `json:"date" db:"date"` // YYYY-MM-DD
	Time            string          `json:"time" db:"time"` // HH:MM
	Location        Location        `json:"location"`
	Status          BookingStatus   `json:"status" db:"status"`
	Price           float64         `json:"price" db:"price"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" db:"payment_status"`
	Rating          *int            `json:"rating,omitempty" db:"rating"`
	Review          *string         `json:"review,omitempty" db:"review"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// Assigned reports whether a provider holds the booking
func (b *Booking) Assigned() bool {
	return b.ProviderID != nil && *b.ProviderID != ""
}

// MarketplacePending reports whether the booking is open for any
// matching-category provider to claim
func (b *Booking) MarketplacePending() bool {
	return b.Status == BookingStatusPending && !b.Assigned()
}
