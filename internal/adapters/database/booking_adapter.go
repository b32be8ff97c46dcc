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

var bookingColumns = []interface{}{
	"id", "customer_id", "provider_id", "service_id", "service_name",
	"service_category", "service_date", "service_time", "address",
	"lat", "lng", "status", "price", "payment_status", "rating",
	"review", "created_at", "updated_at",
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new booking
func (a *BookingAdapter) Create(ctx context.Context, booking *entities.Booking) error {
	record := goqu.Record{
		"id":               booking.ID,
		"customer_id":      booking.CustomerID,
		"provider_id":      booking.ProviderID,
		"service_id":       booking.ServiceID,
		"service_name":     booking.ServiceName,
		"service_category": booking.ServiceCategory,
		"service_date":     booking.Date,
		"service_time":     booking.Time,
		"address":          booking.Location.Address,
		"lat":              booking.Location.Latitude,
		"lng":              booking.Location.Longitude,
		"status":           booking.Status,
		"price":            booking.Price,
		"payment_status":   booking.PaymentStatus,
		"rating":           booking.Rating,
		"review":           booking.Review,
		"created_at":       booking.CreatedAt,
		"updated_at":       booking.UpdatedAt,
	}

	query, args, err := a.db.Insert("bookings").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create booking", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBooking(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}

	return booking, nil
}

// ListByCustomer retrieves bookings owned by a customer, newest first
func (a *BookingAdapter) ListByCustomer(ctx context.Context, customerID string) ([]*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"customer_id": customerID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryBookings(ctx, query, args)
}

// ListForProvider retrieves the union of marketplace-pending bookings in the
// provider's category and bookings assigned to the provider, newest first
func (a *BookingAdapter) ListForProvider(ctx context.Context, providerID string, category entities.ServiceCategory) ([]*entities.Booking, error) {
	query, args, err := a.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Or(
			goqu.Ex{"provider_id": providerID},
			goqu.And(
				goqu.Ex{"status": entities.BookingStatusPending},
				goqu.Ex{"provider_id": nil},
				goqu.Ex{"service_category": category},
			),
		)).
		Order(goqu.I("created_at").Desc()).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryBookings(ctx, query, args)
}

// ListAll retrieves bookings matching the filter, newest first
func (a *BookingAdapter) ListAll(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := a.db.Select(bookingColumns...).From("bookings")

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}

	if filter.Category != "" {
		ds = ds.Where(goqu.Ex{"service_category": filter.Category})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}

	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryBookings(ctx, query, args)
}

// UpdateStatus transitions a booking from one status to another. The
// conditional WHERE clause makes the transition a compare-and-set: a
// concurrent writer that moved the row first leaves nothing to update.
func (a *BookingAdapter) UpdateStatus(ctx context.Context, id string, from, to entities.BookingStatus) (bool, error) {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{
			"status":     to,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{
			"id":     id,
			"status": from,
		}).
		ToSQL()

	if err != nil {
		return false, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to update booking status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to get rows affected", err)
	}

	return rowsAffected > 0, nil
}

// ClaimPending atomically assigns a provider to a still-unclaimed pending
// booking. First acceptor wins; everyone else sees zero rows affected.
func (a *BookingAdapter) ClaimPending(ctx context.Context, id, providerID string, to entities.BookingStatus) (bool, error) {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{
			"provider_id": providerID,
			"status":      to,
			"updated_at":  time.Now(),
		}).
		Where(goqu.Ex{
			"id":          id,
			"status":      entities.BookingStatusPending,
			"provider_id": nil,
		}).
		ToSQL()

	if err != nil {
		return false, apperrors.NewInternalError("failed to build claim query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to claim booking", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to get rows affected", err)
	}

	return rowsAffected > 0, nil
}

// SetRating attaches a rating and optional review to a completed booking
func (a *BookingAdapter) SetRating(ctx context.Context, id string, rating int, review *string) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{
			"rating":     rating,
			"review":     review,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{
			"id":     id,
			"status": entities.BookingStatusCompleted,
		}).
		ToSQL()

	if err != nil {
		return apperrors.NewInternalError("failed to build rating query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to set rating", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("completed booking with id %s not found", id))
	}

	return nil
}

func (a *BookingAdapter) queryBookings(ctx context.Context, query string, args []interface{}) ([]*entities.Booking, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	var bookings []*entities.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*entities.Booking, error) {
	booking := &entities.Booking{}
	var providerID, review sql.NullString
	var lat, lng sql.NullFloat64
	var rating sql.NullInt64

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&providerID,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.ServiceCategory,
		&booking.Date,
		&booking.Time,
		&booking.Location.Address,
		&lat,
		&lng,
		&booking.Status,
		&booking.Price,
		&booking.PaymentStatus,
		&rating,
		&review,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if providerID.Valid {
		booking.ProviderID = &providerID.String
	}
	if lat.Valid {
		booking.Location.Latitude = &lat.Float64
	}
	if lng.Valid {
		booking.Location.Longitude = &lng.Float64
	}
	if rating.Valid {
		r := int(rating.Int64)
		booking.Rating = &r
	}
	if review.Valid {
		booking.Review = &review.String
	}

	return booking, nil
}
