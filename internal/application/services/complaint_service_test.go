package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/servicehub/backend/internal/application/services"
	"github.com/servicehub/backend/internal/domain/entities"
	apperrors "github.com/servicehub/backend/pkg/errors"
)

func TestComplaintService_RaiseComplaint(t *testing.T) {
	bookingID := uuid.New().String()

	providerID := "prov-1"
	ownBooking := func() *entities.Booking {
		return &entities.Booking{
			ID:         bookingID,
			CustomerID: "cust-1",
			ProviderID: &providerID,
			Status:     entities.BookingStatusCompleted,
		}
	}

	validInput := func() services.RaiseComplaintInput {
		return services.RaiseComplaintInput{
			BookingID:   bookingID,
			Reason:      entities.ComplaintReasonServiceQuality,
			Description: "The pipe started leaking again the next day",
		}
	}

	t.Run("files a complaint against the caller's booking", func(t *testing.T) {
		repo := new(MockComplaintRepository)
		bookings := new(MockBookingRepository)
		service := services.NewComplaintService(repo, bookings)

		bookings.On("GetByID", mock.Anything, bookingID).Return(ownBooking(), nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.Complaint) bool {
			return c.BookingID == bookingID &&
				c.CustomerID == "cust-1" &&
				c.ProviderID != nil && *c.ProviderID == providerID &&
				c.Status == entities.ComplaintStatusOpen
		})).Return(nil)

		complaint, err := service.RaiseComplaint(context.Background(), customer(), validInput())
		require.NoError(t, err)
		assert.Equal(t, entities.ComplaintStatusOpen, complaint.Status)
		assert.Equal(t, entities.ComplaintReasonServiceQuality, complaint.Reason)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a complaint about someone else's booking", func(t *testing.T) {
		repo := new(MockComplaintRepository)
		bookings := new(MockBookingRepository)
		service := services.NewComplaintService(repo, bookings)

		other := ownBooking()
		other.CustomerID = "cust-other"
		bookings.On("GetByID", mock.Anything, bookingID).Return(other, nil)

		_, err := service.RaiseComplaint(context.Background(), customer(), validInput())
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects provider callers", func(t *testing.T) {
		repo := new(MockComplaintRepository)
		bookings := new(MockBookingRepository)
		service := services.NewComplaintService(repo, bookings)

		_, err := service.RaiseComplaint(context.Background(), plumber("prov-1"), validInput())
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
		bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unknown reason", func(t *testing.T) {
		repo := new(MockComplaintRepository)
		bookings := new(MockBookingRepository)
		service := services.NewComplaintService(repo, bookings)

		input := validInput()
		input.Reason = "Weather"

		_, err := service.RaiseComplaint(context.Background(), customer(), input)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("rejects a blank description", func(t *testing.T) {
		repo := new(MockComplaintRepository)
		bookings := new(MockBookingRepository)
		service := services.NewComplaintService(repo, bookings)

		input := validInput()
		input.Description = "   "

		_, err := service.RaiseComplaint(context.Background(), customer(), input)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestComplaintService_UpdateComplaintStatus(t *testing.T) {
	complaintID := uuid.New().String()

	t.Run("moves a complaint into review", func(t *testing.T) {
		repo := new(MockComplaintRepository)
		service := services.NewComplaintService(repo, new(MockBookingRepository))

		repo.On("UpdateStatus", mock.Anything, complaintID, entities.ComplaintStatusInReview).Return(nil)
		repo.On("GetByID", mock.Anything, complaintID).
			Return(&entities.Complaint{ID: complaintID, Status: entities.ComplaintStatusInReview}, nil)

		complaint, err := service.UpdateComplaintStatus(context.Background(), complaintID, entities.ComplaintStatusInReview)
		require.NoError(t, err)
		assert.Equal(t, entities.ComplaintStatusInReview, complaint.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown status without touching the store", func(t *testing.T) {
		repo := new(MockComplaintRepository)
		service := services.NewComplaintService(repo, new(MockBookingRepository))

		_, err := service.UpdateComplaintStatus(context.Background(), complaintID, "escalated")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
