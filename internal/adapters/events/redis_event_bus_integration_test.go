//go:build integration

package events_test

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicehub/backend/internal/adapters/events"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/domain/providers"
	"github.com/servicehub/backend/internal/infrastructure/clients/redis"
	"github.com/servicehub/backend/pkg/config"
)

func TestRedisEventBusFanoutIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	channel := providers.ProvidersChannel
	ctx1, cancel1 := context.WithCancel(context.Background())
	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel1()
	defer cancel2()

	sub1, err := eventBus.Subscribe(ctx1, channel)
	require.NoError(t, err)
	sub2, err := eventBus.Subscribe(ctx2, channel)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	event := entities.NewBookingRequestEvent(&entities.Booking{
		ID:              "bk-redis-1",
		CustomerID:      "cust-redis-1",
		ServiceID:       "svc-1",
		ServiceName:     "Pipe Repair",
		ServiceCategory: entities.CategoryPlumber,
		Status:          entities.BookingStatusPending,
	})

	err = eventBus.Publish(context.Background(), channel, event)
	require.NoError(t, err)

	received1 := waitForBookingEvent(t, sub1)
	received2 := waitForBookingEvent(t, sub2)

	assert.Equal(t, event.ID, received1.ID)
	assert.Equal(t, event.ID, received2.ID)
	assert.Equal(t, entities.BookingEventTypeNewRequest, received1.EventType)
	require.NotNil(t, received1.Booking)
	assert.Equal(t, "bk-redis-1", received1.Booking.ID)
}

func TestRedisEventBusIdentityChannelIsolationIntegration(t *testing.T) {
	if os.Getenv("TEST_REDIS_HOST") == "" {
		t.Skip("Skipping integration test: TEST_REDIS_HOST not set")
	}

	redisClient := newTestRedisClient(t)
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	target, err := eventBus.Subscribe(ctx, providers.IdentityChannel("prov-redis-1"))
	require.NoError(t, err)
	bystander, err := eventBus.Subscribe(ctx, providers.IdentityChannel("prov-redis-2"))
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	event := entities.NewStatusUpdateEvent(&entities.Booking{
		ID:          "bk-redis-2",
		ServiceName: "Deep Clean",
		Status:      entities.BookingStatusAccepted,
	})

	err = eventBus.Publish(context.Background(), providers.IdentityChannel("prov-redis-1"), event)
	require.NoError(t, err)

	received := waitForBookingEvent(t, target)
	assert.Equal(t, entities.BookingStatusAccepted, received.Status)
	assert.Equal(t, "Deep Clean", received.ServiceName)

	select {
	case ev := <-bystander:
		t.Fatalf("bystander channel received event %s", ev.ID)
	case <-time.After(500 * time.Millisecond):
	}
}

func newTestRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	cfg := &config.RedisConfig{
		Host: getEnv("TEST_REDIS_HOST", "localhost"),
		Port: getEnvAsInt("TEST_REDIS_PORT", 6379),
		DB:   0,
	}

	client, err := redis.NewClient(cfg)
	require.NoError(t, err, "Failed to create redis client")
	return client
}

func waitForBookingEvent(t *testing.T, ch <-chan *entities.BookingEvent) *entities.BookingEvent {
	t.Helper()
	select {
	case event := <-ch:
		require.NotNil(t, event)
		return event
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for booking event")
		return nil
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
