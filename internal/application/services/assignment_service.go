package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/repositories"
)

// placeholderProviderID is the frontend's sentinel for "no provider chosen";
// it must be treated as an absent selection, never persisted
const placeholderProviderID = "mock-provider-id"

// AssignmentService decides which provider, if any, a new booking request is
// routed to. It is a pure decision component: no persistence, no events.
type AssignmentService struct {
	identityRepo repositories.IdentityRepository
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(identityRepo repositories.IdentityRepository) *AssignmentService {
	return &AssignmentService{
		identityRepo: identityRepo,
	}
}

// AssignmentRequest carries the inputs to an assignment decision
type AssignmentRequest struct {
	// RequestedProviderID is an explicit provider selection from the
	// customer, if any
	RequestedProviderID *string

	// Category is the service category of the booking
	Category entities.ServiceCategory
}

// Assign resolves a provider for the request. An explicit non-placeholder
// selection wins unconditionally; otherwise the first available provider in
// the category is chosen. A nil result means the booking goes to the open
// marketplace, which is not an error.
func (s *AssignmentService) Assign(ctx context.Context, req AssignmentRequest) (*string, error) {
	if req.RequestedProviderID != nil &&
		*req.RequestedProviderID != "" &&
		*req.RequestedProviderID != placeholderProviderID {
		return req.RequestedProviderID, nil
	}

	provider, err := s.identityRepo.FindAvailableProvider(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	if provider == nil {
		log.Debug().
			Str("category", string(req.Category)).
			Msg("no available provider, booking goes to marketplace")
		return nil, nil
	}

	return &provider.ID, nil
}
