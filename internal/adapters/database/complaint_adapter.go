package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/repositories"
	"github.com/servicehub/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servicehub/backend/pkg/errors"
)

var complaintColumns = []interface{}{
	"id", "booking_id", "customer_id", "provider_id", "reason",
	"description", "status", "created_at", "updated_at",
}

// ComplaintAdapter implements the ComplaintRepository interface
type ComplaintAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewComplaintAdapter creates a new complaint adapter
func NewComplaintAdapter(client *postgres.Client) repositories.ComplaintRepository {
	return &ComplaintAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new complaint
func (a *ComplaintAdapter) Create(ctx context.Context, complaint *entities.Complaint) error {
	record := goqu.Record{
		"id":          complaint.ID,
		"booking_id":  complaint.BookingID,
		"customer_id": complaint.CustomerID,
		"provider_id": complaint.ProviderID,
		"reason":      complaint.Reason,
		"description": complaint.Description,
		"status":      complaint.Status,
		"created_at":  complaint.CreatedAt,
		"updated_at":  complaint.UpdatedAt,
	}

	query, args, err := a.db.Insert("complaints").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create complaint", err)
	}

	return nil
}

// GetByID retrieves a complaint by ID
func (a *ComplaintAdapter) GetByID(ctx context.Context, id string) (*entities.Complaint, error) {
	query, args, err := a.db.Select(complaintColumns...).
		From("complaints").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	complaint, err := scanComplaint(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("complaint with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get complaint", err)
	}

	return complaint, nil
}

// ListAll retrieves all complaints, newest first
func (a *ComplaintAdapter) ListAll(ctx context.Context) ([]*entities.Complaint, error) {
	query, args, err := a.db.Select(complaintColumns...).
		From("complaints").
		Order(goqu.I("created_at").Desc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list complaints", err)
	}
	defer rows.Close()

	var complaints []*entities.Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan complaint", err)
		}
		complaints = append(complaints, complaint)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate complaints", err)
	}

	return complaints, nil
}

// UpdateStatus sets the handling status of a complaint
func (a *ComplaintAdapter) UpdateStatus(ctx context.Context, id string, status entities.ComplaintStatus) error {
	query, args, err := a.db.Update("complaints").
		Set(goqu.Record{
			"status":     status,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update complaint status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("complaint with id %s not found", id))
	}

	return nil
}

func scanComplaint(row rowScanner) (*entities.Complaint, error) {
	complaint := &entities.Complaint{}
	var providerID sql.NullString

	err := row.Scan(
		&complaint.ID,
		&complaint.BookingID,
		&complaint.CustomerID,
		&providerID,
		&complaint.Reason,
		&complaint.Description,
		&complaint.Status,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if providerID.Valid {
		complaint.ProviderID = &providerID.String
	}

	return complaint, nil
}
