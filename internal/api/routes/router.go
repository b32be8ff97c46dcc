package routes

import (
	"net/http"

	"github.com/servicehub/backend/internal/api/handlers"
	"github.com/servicehub/backend/internal/api/middleware"
	"github.com/servicehub/backend/internal/domain/repositories"
	"github.com/servicehub/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	bookingHandler   *handlers.BookingHandler
	complaintHandler *handlers.ComplaintHandler
	adminHandler     *handlers.AdminHandler
	wsHandler        *handlers.WSHandler

	identityRepo repositories.IdentityRepository
	jwtSecret    string
	metrics      *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	bookingHandler *handlers.BookingHandler,
	complaintHandler *handlers.ComplaintHandler,
	adminHandler *handlers.AdminHandler,
	wsHandler *handlers.WSHandler,
	identityRepo repositories.IdentityRepository,
	jwtSecret string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		bookingHandler:   bookingHandler,
		complaintHandler: complaintHandler,
		adminHandler:     adminHandler,
		wsHandler:        wsHandler,

		identityRepo: identityRepo,
		jwtSecret:    jwtSecret,
		metrics:      metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	auth := middleware.AuthMiddleware(r.jwtSecret, r.identityRepo)
	authed := func(h http.HandlerFunc) http.Handler {
		return auth(h)
	}
	adminOnly := func(h http.HandlerFunc) http.Handler {
		return auth(middleware.RequireAdmin(h))
	}

	// Booking endpoints
	r.mux.Handle("POST /api/bookings", authed(r.bookingHandler.CreateBooking))
	r.mux.Handle("GET /api/bookings", authed(r.bookingHandler.ListBookings))
	r.mux.Handle("GET /api/bookings/{id}", authed(r.bookingHandler.GetBooking))
	r.mux.Handle("PATCH /api/bookings/{id}", authed(r.bookingHandler.UpdateBooking))

	// Complaint endpoints
	r.mux.Handle("POST /api/complaints", authed(r.complaintHandler.RaiseComplaint))
	r.mux.Handle("GET /api/admin/complaints", adminOnly(r.complaintHandler.ListComplaints))
	r.mux.Handle("PATCH /api/admin/complaints/{id}", adminOnly(r.complaintHandler.UpdateComplaintStatus))

	// Real-time gateway
	r.mux.Handle("GET /api/ws", authed(r.wsHandler.Serve))

	// Admin endpoints
	r.mux.Handle("GET /api/admin/stats", adminOnly(r.adminHandler.GetStats))
	r.mux.Handle("GET /api/admin/providers", adminOnly(r.adminHandler.ListProviders))
	r.mux.Handle("PATCH /api/admin/providers/{id}/block", adminOnly(r.adminHandler.ToggleProviderBlock))

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so even rejected requests get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
