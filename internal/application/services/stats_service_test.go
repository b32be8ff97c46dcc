package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/servicehub/backend/internal/application/services"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/repositories"
)

func TestStatsService_GetPlatformStats(t *testing.T) {
	repo := new(MockBookingRepository)
	identityRepo := new(MockIdentityRepository)
	service := services.NewStatsService(repo, identityRepo)

	identityRepo.On("CountByRole", mock.Anything, entities.RoleCustomer).Return(int64(12), nil)
	identityRepo.On("CountByRole", mock.Anything, entities.RoleProvider).Return(int64(4), nil)
	repo.On("ListAll", mock.Anything, repositories.BookingFilter{}).Return([]*entities.Booking{
		{ID: "bk-1", Status: entities.BookingStatusCompleted, Price: 100},
		{ID: "bk-2", Status: entities.BookingStatusCompleted, Price: 200},
		{ID: "bk-3", Status: entities.BookingStatusPending, Price: 500},
		{ID: "bk-4", Status: entities.BookingStatusCancelled, Price: 50},
	}, nil)

	stats, err := service.GetPlatformStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.TotalCustomers)
	assert.Equal(t, int64(4), stats.TotalProviders)
	assert.Equal(t, 4, stats.TotalBookings)
	assert.Equal(t, 2, stats.CompletedBookings)
	assert.InDelta(t, 300.0, stats.TotalRevenue, 0.001)
	assert.InDelta(t, 9.0, stats.PlatformEarnings, 0.001)
	assert.InDelta(t, 291.0, stats.ProviderEarnings, 0.001)
}
