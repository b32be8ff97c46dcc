package services

import (
	"context"

	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/repositories"
)

// Platform commission rate applied to completed bookings
const commissionRate = 0.03

// PlatformStats aggregates the numbers shown on the admin dashboard
type PlatformStats struct {
	TotalCustomers    int64   `json:"totalCustomers"`
	TotalProviders    int64   `json:"totalProviders"`
	TotalBookings     int     `json:"totalBookings"`
	CompletedBookings int     `json:"completedBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
	PlatformEarnings  float64 `json:"platformEarnings"`
	ProviderEarnings  float64 `json:"providerEarnings"`
}

// StatsService computes platform-wide statistics for admins
type StatsService struct {
	bookingRepo  repositories.BookingRepository
	identityRepo repositories.IdentityRepository
}

// NewStatsService creates a new stats service
func NewStatsService(bookingRepo repositories.BookingRepository, identityRepo repositories.IdentityRepository) *StatsService {
	return &StatsService{
		bookingRepo:  bookingRepo,
		identityRepo: identityRepo,
	}
}

// GetPlatformStats computes counts and revenue. Revenue counts completed
// bookings only, split between the platform commission and provider payouts.
func (s *StatsService) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	customers, err := s.identityRepo.CountByRole(ctx, entities.RoleCustomer)
	if err != nil {
		return nil, err
	}

	providers, err := s.identityRepo.CountByRole(ctx, entities.RoleProvider)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListAll(ctx, repositories.BookingFilter{})
	if err != nil {
		return nil, err
	}

	stats := &PlatformStats{
		TotalCustomers: customers,
		TotalProviders: providers,
		TotalBookings:  len(bookings),
	}

	for _, booking := range bookings {
		if booking.Status != entities.BookingStatusCompleted {
			continue
		}
		stats.CompletedBookings++
		stats.TotalRevenue += booking.Price
	}

	stats.PlatformEarnings = stats.TotalRevenue * commissionRate
	stats.ProviderEarnings = stats.TotalRevenue - stats.PlatformEarnings

	return stats, nil
}
