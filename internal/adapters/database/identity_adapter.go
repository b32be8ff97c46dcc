package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/repositories"
	"github.com/servicehub/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servicehub/backend/pkg/errors"
)

var identityColumns = []interface{}{
	"id", "name", "email", "role", "service_category", "phone",
	"blocked", "created_at",
}

// IdentityAdapter implements the IdentityRepository interface
type IdentityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewIdentityAdapter creates a new identity adapter
func NewIdentityAdapter(client *postgres.Client) repositories.IdentityRepository {
	return &IdentityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID resolves an identity by ID
func (a *IdentityAdapter) GetByID(ctx context.Context, id string) (*entities.Identity, error) {
	query, args, err := a.db.Select(identityColumns...).
		From("users").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	identity, err := scanIdentity(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return identity, nil
}

// FindAvailableProvider returns any non-blocked provider in the category,
// or (nil, nil) when none exists
func (a *IdentityAdapter) FindAvailableProvider(ctx context.Context, category entities.ServiceCategory) (*entities.Identity, error) {
	query, args, err := a.db.Select(identityColumns...).
		From("users").
		Where(goqu.Ex{
			"role":             entities.RoleProvider,
			"service_category": category,
			"blocked":          false,
		}).
		Order(goqu.I("created_at").Asc()).
		Limit(1).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	identity, err := scanIdentity(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to find provider", err)
	}

	return identity, nil
}

// ListProviders retrieves all provider identities
func (a *IdentityAdapter) ListProviders(ctx context.Context) ([]*entities.Identity, error) {
	query, args, err := a.db.Select(identityColumns...).
		From("users").
		Where(goqu.Ex{"role": entities.RoleProvider}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list providers", err)
	}
	defer rows.Close()

	var identities []*entities.Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		identities = append(identities, identity)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate providers", err)
	}

	return identities, nil
}

// SetBlocked updates the blocked flag on an identity
func (a *IdentityAdapter) SetBlocked(ctx context.Context, id string, blocked bool) error {
	query, args, err := a.db.Update("users").
		Set(goqu.Record{"blocked": blocked}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}

	return nil
}

// CountByRole counts identities holding the given role
func (a *IdentityAdapter) CountByRole(ctx context.Context, role entities.Role) (int64, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("users").
		Where(goqu.Ex{"role": role}).
		ToSQL()

	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count users", err)
	}

	return count, nil
}

func scanIdentity(row rowScanner) (*entities.Identity, error) {
	identity := &entities.Identity{}
	var serviceCategory, phone sql.NullString

	err := row.Scan(
		&identity.ID,
		&identity.Name,
		&identity.Email,
		&identity.Role,
		&serviceCategory,
		&phone,
		&identity.Blocked,
		&identity.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	identity.ServiceCategory = entities.ServiceCategory(serviceCategory.String)
	identity.Phone = phone.String

	return identity, nil
}
