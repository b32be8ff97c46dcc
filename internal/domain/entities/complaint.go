package entities

import (
	"time"
)

// ComplaintStatus represents the handling state of a complaint
type ComplaintStatus string

const (
	ComplaintStatusOpen     ComplaintStatus = "open"
	ComplaintStatusInReview ComplaintStatus = "in-review"
	ComplaintStatusResolved ComplaintStatus = "resolved"
)

// ValidComplaintStatus reports whether s is a known complaint status
func ValidComplaintStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintStatusOpen, ComplaintStatusInReview, ComplaintStatusResolved:
		return true
	}
	return false
}

// ComplaintReason classifies what the complaint is about
type ComplaintReason string

const (
	ComplaintReasonServiceQuality   ComplaintReason = "Service Quality"
	ComplaintReasonProviderBehavior ComplaintReason = "Provider Behavior"
	ComplaintReasonPaymentIssue     ComplaintReason = "Payment Issue"
	ComplaintReasonOther            ComplaintReason = "Other"
)

// ValidComplaintReason reports whether r is a known complaint reason
func ValidComplaintReason(r ComplaintReason) bool {
	switch r {
	case ComplaintReasonServiceQuality, ComplaintReasonProviderBehavior,
		ComplaintReasonPaymentIssue, ComplaintReasonOther:
		return true
	}
	return false
}

// Complaint represents a customer-raised issue against a booking, reviewed
// and resolved by admins
type Complaint struct {
	ID          string          `json:"id" db:"id"`
	BookingID   string          `json:"bookingId" db:"booking_id"`
	CustomerID  string          `json:"customerId" db:"customer_id"`
	ProviderID  *string         `json:"providerId" db:"provider_id"`
	Reason      ComplaintReason `json:"reason" db:"reason"`
	Description string          `json:"description" db:"description"`
	Status      ComplaintStatus `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}
