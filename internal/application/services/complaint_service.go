package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/repositories"
	apperrors "github.com/servicehub/backend/pkg/errors"
)

// ComplaintService handles customer-raised complaints and their admin review
type ComplaintService struct {
	repo     repositories.ComplaintRepository
	bookings repositories.BookingRepository
}

// NewComplaintService creates a new complaint service
func NewComplaintService(repo repositories.ComplaintRepository, bookings repositories.BookingRepository) *ComplaintService {
	return &ComplaintService{
		repo:     repo,
		bookings: bookings,
	}
}

// RaiseComplaintInput carries the fields a customer submits for a complaint
type RaiseComplaintInput struct {
	BookingID   string                   `json:"bookingId"`
	Reason      entities.ComplaintReason `json:"reason"`
	Description string                   `json:"description"`
}

// RaiseComplaint files a complaint against one of the caller's own bookings.
// The provider reference is taken from the booking, never from the caller.
func (s *ComplaintService) RaiseComplaint(ctx context.Context, caller *entities.Identity, input RaiseComplaintInput) (*entities.Complaint, error) {
	if caller.Role != entities.RoleCustomer {
		return nil, apperrors.NewUnauthorizedError("only customers can raise complaints")
	}

	if _, err := uuid.Parse(input.BookingID); err != nil {
		return nil, apperrors.NewValidationError("invalid booking id")
	}

	if !entities.ValidComplaintReason(input.Reason) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown complaint reason %q", input.Reason))
	}

	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("description is required")
	}

	booking, err := s.bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != caller.ID {
		return nil, apperrors.NewUnauthorizedError("not allowed to complain about this booking")
	}

	now := time.Now()
	complaint := &entities.Complaint{
		ID:          uuid.New().String(),
		BookingID:   booking.ID,
		CustomerID:  caller.ID,
		ProviderID:  booking.ProviderID,
		Reason:      input.Reason,
		Description: strings.TrimSpace(input.Description),
		Status:      entities.ComplaintStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, err
	}

	return complaint, nil
}

// ListComplaints returns every complaint, newest first. Admin only; the
// route enforces the role.
func (s *ComplaintService) ListComplaints(ctx context.Context) ([]*entities.Complaint, error) {
	return s.repo.ListAll(ctx)
}

// UpdateComplaintStatus moves a complaint through its review states
func (s *ComplaintService) UpdateComplaintStatus(ctx context.Context, id string, status entities.ComplaintStatus) (*entities.Complaint, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewValidationError("invalid complaint id")
	}

	if !entities.ValidComplaintStatus(status) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown complaint status %q", status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
