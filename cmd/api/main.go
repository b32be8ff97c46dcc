package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/servicehub/backend/internal/adapters/cache"
	"github.com/servicehub/backend/internal/adapters/database"
	"github.com/servicehub/backend/internal/adapters/events"
	"github.com/servicehub/backend/internal/adapters/providers/geocoding"
	"github.com/servicehub/backend/internal/api/handlers"
	"github.com/servicehub/backend/internal/api/routes"
	"github.com/servicehub/backend/internal/application/services"
	"github.com/servicehub/backend/internal/domain/providers"
	"github.com/servicehub/backend/internal/domain/repositories"
	"github.com/servicehub/backend/internal/infrastructure/clients/postgres"
	"github.com/servicehub/backend/internal/infrastructure/clients/redis"
	"github.com/servicehub/backend/internal/infrastructure/observability"
	"github.com/servicehub/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client; the API degrades to no caching and no
	// real-time delivery when it is unavailable
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without it")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized")
	} else {
		log.Warn().Msg("event bus disabled (Redis not available)")
	}

	// Initialize adapters
	bookingAdapter := database.NewBookingAdapter(pgClient)
	complaintAdapter := database.NewComplaintAdapter(pgClient)

	baseIdentityAdapter := database.NewIdentityAdapter(pgClient)
	var identityAdapter repositories.IdentityRepository
	if cacheProvider != nil {
		identityAdapter = database.NewCachedIdentityAdapter(baseIdentityAdapter, cacheProvider)
		log.Info().Msg("identity adapter wrapped with caching layer")
	} else {
		identityAdapter = baseIdentityAdapter
	}

	var geocodingProvider providers.GeocodingProvider
	switch cfg.Geocoding.Provider {
	case "nominatim":
		geocodingProvider = geocoding.NewNominatimProviderWithOptions(cacheProvider, cfg.Geocoding.BaseURL+"/search", nil)
	default:
		geocodingProvider = geocoding.NewMockProvider()
	}

	// Initialize services
	assignmentService := services.NewAssignmentService(identityAdapter)
	bookingService := services.NewBookingService(bookingAdapter, assignmentService, eventBus, geocodingProvider, metrics)
	statsService := services.NewStatsService(bookingAdapter, identityAdapter)
	complaintService := services.NewComplaintService(complaintAdapter, bookingAdapter)

	// Initialize handlers
	bookingHandler := handlers.NewBookingHandler(bookingService, metrics)
	complaintHandler := handlers.NewComplaintHandler(complaintService)
	adminHandler := handlers.NewAdminHandler(statsService, identityAdapter)
	wsHandler := handlers.NewWSHandler(eventBus)

	// Set up router
	router := routes.NewRouter(
		bookingHandler,
		complaintHandler,
		adminHandler,
		wsHandler,
		identityAdapter,
		cfg.Auth.JWTSecret,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("error during server shutdown")
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
