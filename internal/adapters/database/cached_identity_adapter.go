package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/providers"
	"github.com/servicehub/backend/internal/domain/repositories"
)

// CachedIdentityAdapter wraps IdentityAdapter with caching. Identities are
// read on every authenticated request, so single lookups are cached; writes
// invalidate the affected entry.
type CachedIdentityAdapter struct {
	adapter repositories.IdentityRepository
	cache   providers.CacheProvider
}

// NewCachedIdentityAdapter creates a new cached identity adapter
func NewCachedIdentityAdapter(adapter repositories.IdentityRepository, cache providers.CacheProvider) repositories.IdentityRepository {
	return &CachedIdentityAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	identityByIDTTL = 300 // 5 minutes for single identity
)

func identityCacheKey(id string) string {
	return fmt.Sprintf("user:%s:profile", id)
}

// GetByID resolves an identity by ID with caching
func (a *CachedIdentityAdapter) GetByID(ctx context.Context, id string) (*entities.Identity, error) {
	cacheKey := identityCacheKey(id)

	// Try to get from cache first
	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var identity entities.Identity
		if unmarshalErr := json.Unmarshal(cached, &identity); unmarshalErr != nil {
			// Corrupt entry; fall through to the database
			log.Warn().Str("user_id", id).Err(unmarshalErr).Msg("failed to unmarshal cached user")
		} else {
			return &identity, nil
		}
	}

	// Cache miss - fetch from database
	identity, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(identity); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, identityByIDTTL); err != nil {
				log.Warn().Str("user_id", id).Err(err).Msg("failed to cache user")
			}
		}
	}()

	return identity, nil
}

// FindAvailableProvider delegates to the underlying adapter. Availability
// must reflect the current blocked flags, so it is never served from cache.
func (a *CachedIdentityAdapter) FindAvailableProvider(ctx context.Context, category entities.ServiceCategory) (*entities.Identity, error) {
	return a.adapter.FindAvailableProvider(ctx, category)
}

// ListProviders delegates to the underlying adapter
func (a *CachedIdentityAdapter) ListProviders(ctx context.Context) ([]*entities.Identity, error) {
	return a.adapter.ListProviders(ctx)
}

// SetBlocked updates the blocked flag and invalidates the cached identity
func (a *CachedIdentityAdapter) SetBlocked(ctx context.Context, id string, blocked bool) error {
	if err := a.adapter.SetBlocked(ctx, id, blocked); err != nil {
		return err
	}

	// Invalidate the cache synchronously so a freshly blocked provider
	// loses access on the next request
	if err := a.cache.Delete(ctx, identityCacheKey(id)); err != nil {
		log.Warn().Str("user_id", id).Err(err).Msg("failed to invalidate user cache")
	}

	return nil
}

// CountByRole delegates to the underlying adapter
func (a *CachedIdentityAdapter) CountByRole(ctx context.Context, role entities.Role) (int64, error) {
	return a.adapter.CountByRole(ctx, role)
}
