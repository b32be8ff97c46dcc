package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/servicehub/backend/internal/api/middleware"
	"github.com/servicehub/backend/internal/application/services"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/infrastructure/observability"
)

// BookingService defines the interface for booking operations
type BookingService interface {
	CreateBooking(ctx context.Context, caller *entities.Identity, input services.CreateBookingInput) (*entities.Booking, error)
	ListBookings(ctx context.Context, caller *entities.Identity) ([]*entities.Booking, error)
	GetBooking(ctx context.Context, caller *entities.Identity, id string) (*entities.Booking, error)
	UpdateBooking(ctx context.Context, caller *entities.Identity, id string, input services.UpdateBookingInput) (*entities.Booking, error)
}

// BookingHandler handles booking requests
type BookingHandler struct {
	service BookingService
	metrics *observability.Metrics
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService, metrics *observability.Metrics) *BookingHandler {
	return &BookingHandler{
		service: service,
		metrics: metrics,
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), caller, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	observability.RecordBookingCreated(r.Context(), h.metrics, string(booking.ServiceCategory))
	respondWithJSON(w, http.StatusCreated, booking)
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	bookings, err := h.service.ListBookings(r.Context(), caller)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if bookings == nil {
		bookings = []*entities.Booking{}
	}
	respondWithJSON(w, http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, err := h.service.GetBooking(r.Context(), caller, id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// UpdateBooking handles PATCH /api/bookings/{id}
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	var input services.UpdateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), caller, id, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}
