package repositories

import (
	"context"

	"github.com/servicehub/backend/internal/domain/entities"
)

// IdentityRepository defines the read-mostly interface onto the identity
// directory. Credential issuance lives elsewhere; this core only resolves
// and lists identities, and toggles the blocked flag for admins.
type IdentityRepository interface {
	// GetByID resolves an identity by ID
	GetByID(ctx context.Context, id string) (*entities.Identity, error)

	// FindAvailableProvider returns any non-blocked provider matching the
	// service category, or (nil, nil) when none exists. Selection among
	// multiple matches is first-found; no ranking.
	FindAvailableProvider(ctx context.Context, category entities.ServiceCategory) (*entities.Identity, error)

	// ListProviders retrieves all provider identities
	ListProviders(ctx context.Context) ([]*entities.Identity, error)

	// SetBlocked updates the blocked flag on an identity
	SetBlocked(ctx context.Context, id string, blocked bool) error

	// CountByRole counts identities holding the given role
	CountByRole(ctx context.Context, role entities.Role) (int64, error)
}
