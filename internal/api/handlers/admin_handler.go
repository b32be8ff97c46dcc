package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/servicehub/backend/internal/application/services"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/repositories"
)

// StatsService defines the interface for platform statistics
type StatsService interface {
	GetPlatformStats(ctx context.Context) (*services.PlatformStats, error)
}

// AdminHandler handles the admin dashboard endpoints
type AdminHandler struct {
	stats        StatsService
	identityRepo repositories.IdentityRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(stats StatsService, identityRepo repositories.IdentityRepository) *AdminHandler {
	return &AdminHandler{
		stats:        stats,
		identityRepo: identityRepo,
	}
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetPlatformStats(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

// ListProviders handles GET /api/admin/providers
func (h *AdminHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.identityRepo.ListProviders(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if providers == nil {
		providers = []*entities.Identity{}
	}
	respondWithJSON(w, http.StatusOK, providers)
}

type blockProviderRequest struct {
	Blocked bool `json:"blocked"`
}

// ToggleProviderBlock handles PATCH /api/admin/providers/{id}/block.
// Blocked providers stop being matched and cannot act on bookings.
func (h *AdminHandler) ToggleProviderBlock(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	var req blockProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	target, err := h.identityRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if !target.IsProvider() {
		respondWithError(w, http.StatusBadRequest, "identity is not a provider")
		return
	}

	if err := h.identityRepo.SetBlocked(r.Context(), id, req.Blocked); err != nil {
		respondWithAppError(w, err)
		return
	}

	target.Blocked = req.Blocked
	respondWithJSON(w, http.StatusOK, target)
}
