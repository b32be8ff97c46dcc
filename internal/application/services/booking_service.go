package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/providers"
	"github.com/servicehub/backend/internal/domain/repositories"
	"github.com/servicehub/backend/internal/infrastructure/observability"
	apperrors "github.com/servicehub/backend/pkg/errors"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

const publishTimeout = 5 * time.Second

// BookingService handles the booking lifecycle: creation with provider
// assignment, role-filtered listing, and status/rating updates.
type BookingService struct {
	repo       repositories.BookingRepository
	assignment *AssignmentService
	eventBus   providers.EventBus
	geocoder   providers.GeocodingProvider
	metrics    *observability.Metrics
}

// NewBookingService creates a new booking service
func NewBookingService(
	repo repositories.BookingRepository,
	assignment *AssignmentService,
	eventBus providers.EventBus,
	geocoder providers.GeocodingProvider,
	metrics *observability.Metrics,
) *BookingService {
	return &BookingService{
		repo:       repo,
		assignment: assignment,
		eventBus:   eventBus,
		geocoder:   geocoder,
		metrics:    metrics,
	}
}

// CreateBookingInput carries the fields a customer submits for a new booking
type CreateBookingInput struct {
	ProviderID      *string                  `json:"providerId"`
	ServiceID       string                   `json:"serviceId"`
	ServiceName     string                   `json:"serviceName"`
	ServiceCategory entities.ServiceCategory `json:"serviceCategory"`
	Date            string                   `json:"date"`
	Time            string                   `json:"time"`
	Address         string                   `json:"address"`
	Price           float64                  `json:"price"`
}

// CreateBooking validates the request, resolves a provider, persists the
// booking and announces it to the matched provider or the open marketplace
func (s *BookingService) CreateBooking(ctx context.Context, caller *entities.Identity, input CreateBookingInput) (*entities.Booking, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	providerID, err := s.assignment.Assign(ctx, AssignmentRequest{
		RequestedProviderID: input.ProviderID,
		Category:            input.ServiceCategory,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &entities.Booking{
		ID:              uuid.New().String(),
		CustomerID:      caller.ID,
		ProviderID:      providerID,
		ServiceID:       input.ServiceID,
		ServiceName:     input.ServiceName,
		ServiceCategory: input.ServiceCategory,
		Date:            input.Date,
		Time:            input.Time,
		Location:        entities.Location{Address: input.Address},
		Status:          entities.BookingStatusPending,
		Price:           input.Price,
		PaymentStatus:   entities.PaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Best-effort geocoding; a failed lookup never blocks the booking
	if s.geocoder != nil {
		if coords, err := s.geocoder.Geocode(ctx, input.Address); err == nil {
			booking.Location.Latitude = &coords.Latitude
			booking.Location.Longitude = &coords.Longitude
		} else {
			log.Debug().Str("address", input.Address).Err(err).Msg("geocoding failed, storing address only")
		}
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	// Announce to the matched provider, or to every provider in the
	// marketplace when unassigned
	channel := providers.ProvidersChannel
	if booking.Assigned() {
		channel = providers.IdentityChannel(*booking.ProviderID)
	}
	s.publishAsync(entities.NewBookingRequestEvent(booking), channel)

	return booking, nil
}

// ListBookings returns the bookings visible to the caller, newest first:
// customers see their own, providers see their assignments plus the open
// marketplace in their category, admins see everything
func (s *BookingService) ListBookings(ctx context.Context, caller *entities.Identity) ([]*entities.Booking, error) {
	switch {
	case caller.IsAdmin():
		return s.repo.ListAll(ctx, repositories.BookingFilter{})
	case caller.IsProvider():
		return s.repo.ListForProvider(ctx, caller.ID, caller.ServiceCategory)
	default:
		return s.repo.ListByCustomer(ctx, caller.ID)
	}
}

// GetBooking loads a booking the caller is allowed to see
func (s *BookingService) GetBooking(ctx context.Context, caller *entities.Identity, id string) (*entities.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewValidationError("invalid booking id")
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !entities.CanView(caller, booking) {
		return nil, apperrors.NewUnauthorizedError("not allowed to view this booking")
	}

	return booking, nil
}

// UpdateBookingInput carries a status change and/or a rating submission.
// Fields are authorized independently: a request is rejected as soon as any
// present field fails its own check.
type UpdateBookingInput struct {
	Status *entities.BookingStatus `json:"status"`
	Rating *int                    `json:"rating"`
	Review *string                 `json:"review"`
}

// UpdateBooking applies a status transition and/or attaches a rating, then
// announces the change to the booking's customer and, when a marketplace
// booking leaves the pending pool, to all providers
func (s *BookingService) UpdateBooking(ctx context.Context, caller *entities.Identity, id string, input UpdateBookingInput) (*entities.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewValidationError("invalid booking id")
	}

	if input.Status == nil && input.Rating == nil {
		return nil, apperrors.NewValidationError("nothing to update")
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasMarketplace := booking.MarketplacePending()

	// Vet the rating against the status the booking will hold after the
	// transition, so a doomed request commits nothing
	if input.Rating != nil {
		projected := *booking
		if input.Status != nil {
			projected.Status = *input.Status
		}
		if err := validateRating(caller, &projected, *input.Rating); err != nil {
			return nil, err
		}
	}

	if input.Status != nil {
		booking, err = s.applyStatusChange(ctx, caller, booking, *input.Status)
		if err != nil {
			return nil, err
		}

		// Announce the transition as soon as it is committed; a later
		// rating failure must not swallow it
		event := entities.NewStatusUpdateEvent(booking)
		channels := []string{providers.IdentityChannel(booking.CustomerID)}
		// A claimed or closed marketplace booking must drop off every
		// provider's pending list
		if wasMarketplace && booking.Status != entities.BookingStatusPending {
			channels = append(channels, providers.ProvidersChannel)
		}
		s.publishAsync(event, channels...)
	}

	if input.Rating != nil {
		booking, err = s.applyRating(ctx, caller, booking, *input.Rating, input.Review)
		if err != nil {
			return nil, err
		}
	}

	return booking, nil
}

// applyStatusChange validates and persists a single status transition,
// claiming the provider slot when an unassigned booking is accepted
func (s *BookingService) applyStatusChange(ctx context.Context, caller *entities.Identity, booking *entities.Booking, target entities.BookingStatus) (*entities.Booking, error) {
	if !entities.ValidStatus(target) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", target))
	}

	if !entities.CanTransition(caller, booking, target) {
		return nil, apperrors.NewUnauthorizedError("not allowed to update this booking")
	}

	if !entities.CanTransitionStatus(booking.Status, target) {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, target))
	}

	var applied bool
	var err error
	if !booking.Assigned() && entities.ClaimsProvider(target) {
		// Entering accepted or confirmed must fill the provider slot;
		// provider_id stays null only while the booking is pending
		if !caller.IsProvider() {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("an unassigned booking can only be moved to %s by a provider", target))
		}
		applied, err = s.repo.ClaimPending(ctx, booking.ID, caller.ID, target)
	} else {
		applied, err = s.repo.UpdateStatus(ctx, booking.ID, booking.Status, target)
	}
	if err != nil {
		return nil, err
	}

	if !applied {
		// Lost a race; reload to report what actually happened
		current, reloadErr := s.repo.GetByID(ctx, booking.ID)
		if reloadErr != nil {
			return nil, reloadErr
		}
		if current.Status == entities.BookingStatusPending {
			return nil, apperrors.NewConflictError("booking was already claimed by another provider")
		}
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("booking is already %s", current.Status))
	}

	return s.repo.GetByID(ctx, booking.ID)
}

// validateRating checks a rating submission against the booking as it will
// stand when the rating is persisted
func validateRating(caller *entities.Identity, booking *entities.Booking, rating int) error {
	if rating < 1 || rating > 5 {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}

	if !entities.CanRate(caller, booking) {
		if booking.Status != entities.BookingStatusCompleted {
			return apperrors.NewValidationError("only completed bookings can be rated")
		}
		return apperrors.NewUnauthorizedError("not allowed to rate this booking")
	}
	return nil
}

// applyRating persists a rating submission. Re-submission is
// last-write-wins.
func (s *BookingService) applyRating(ctx context.Context, caller *entities.Identity, booking *entities.Booking, rating int, review *string) (*entities.Booking, error) {
	if err := validateRating(caller, booking, rating); err != nil {
		return nil, err
	}

	if err := s.repo.SetRating(ctx, booking.ID, rating, review); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, booking.ID)
}

// publishAsync delivers an event on a detached goroutine so a slow or down
// event bus never fails the API call
func (s *BookingService) publishAsync(event *entities.BookingEvent, channels ...string) {
	if s.eventBus == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		for _, channel := range channels {
			if err := s.eventBus.Publish(ctx, channel, event); err != nil {
				log.Warn().
					Str("channel", channel).
					Str("event_type", string(event.EventType)).
					Str("booking_id", event.BookingID).
					Err(err).
					Msg("failed to publish booking event")
				continue
			}
			observability.RecordEventPublished(ctx, s.metrics, string(event.EventType), channel)
		}
	}()
}

func validateCreateInput(input CreateBookingInput) error {
	if input.ServiceID == "" {
		return apperrors.NewValidationError("serviceId is required")
	}
	if input.ServiceName == "" {
		return apperrors.NewValidationError("serviceName is required")
	}
	if !entities.ValidCategory(input.ServiceCategory) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown service category %q", input.ServiceCategory))
	}
	if input.Price <= 0 {
		return apperrors.NewValidationError("price must be positive")
	}
	if input.Address == "" {
		return apperrors.NewValidationError("address is required")
	}
	if !datePattern.MatchString(input.Date) {
		return apperrors.NewValidationError("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return apperrors.NewValidationError("date must be a real calendar date")
	}
	if !timePattern.MatchString(input.Time) {
		return apperrors.NewValidationError("time must be HH:MM")
	}
	if _, err := time.Parse("15:04", input.Time); err != nil {
		return apperrors.NewValidationError("time must be a valid 24h time")
	}
	return nil
}
