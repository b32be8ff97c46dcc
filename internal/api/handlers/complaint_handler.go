package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/servicehub/backend/internal/api/middleware"
	"github.com/servicehub/backend/internal/application/services"
	"github.com/servicehub/backend/internal/domain/entities"
)

// ComplaintService defines the interface for complaint operations
type ComplaintService interface {
	RaiseComplaint(ctx context.Context, caller *entities.Identity, input services.RaiseComplaintInput) (*entities.Complaint, error)
	ListComplaints(ctx context.Context) ([]*entities.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id string, status entities.ComplaintStatus) (*entities.Complaint, error)
}

// ComplaintHandler handles complaint requests
type ComplaintHandler struct {
	service ComplaintService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(service ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

// RaiseComplaint handles POST /api/complaints
func (h *ComplaintHandler) RaiseComplaint(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var input services.RaiseComplaintInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	complaint, err := h.service.RaiseComplaint(r.Context(), caller, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, complaint)
}

// ListComplaints handles GET /api/admin/complaints
func (h *ComplaintHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := h.service.ListComplaints(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if complaints == nil {
		complaints = []*entities.Complaint{}
	}
	respondWithJSON(w, http.StatusOK, complaints)
}

type updateComplaintRequest struct {
	Status entities.ComplaintStatus `json:"status"`
}

// UpdateComplaintStatus handles PATCH /api/admin/complaints/{id}
func (h *ComplaintHandler) UpdateComplaintStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "complaint ID is required")
		return
	}

	var req updateComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	complaint, err := h.service.UpdateComplaintStatus(r.Context(), id, req.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, complaint)
}
