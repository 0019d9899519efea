package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/parkhopper/parkhopper-api/internal/cache"
	"github.com/parkhopper/parkhopper-api/internal/config"
	"github.com/parkhopper/parkhopper-api/internal/platform/postgres"
	"github.com/parkhopper/parkhopper-api/internal/platform/themeparks"
	"github.com/parkhopper/parkhopper-api/internal/poller"
	"github.com/parkhopper/parkhopper-api/internal/realtime"
	"github.com/parkhopper/parkhopper-api/internal/service"
	"github.com/parkhopper/parkhopper-api/internal/service/auth"
	"github.com/parkhopper/parkhopper-api/internal/service/itinerary"
	"github.com/parkhopper/parkhopper-api/internal/service/recommend"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB
	cache  cache.Cache

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	tripStore       store.TripStore
	tripItemStore   store.TripItemStore
	tripMemberStore store.TripMemberStore
	geofenceStore   store.GeofenceStore
	waitSampleStore store.WaitSampleStore
	messageStore    store.MessageStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	userService      service.UserService
	tripService      service.TripService
	geofenceService  service.GeofenceService

	// Live data and planning
	parkClient *themeparks.Client
	scorer     *recommend.Scorer
	planner    *itinerary.Planner

	// Realtime trip rooms
	hub *realtime.Hub

	// Background wait-time sampler
	waitPoller *poller.Poller
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password verifier
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger)
	app.tripStore = postgres.NewPostgresTripStore(db, logger)
	app.tripItemStore = postgres.NewPostgresTripItemStore(db, logger)
	app.tripMemberStore = postgres.NewPostgresTripMemberStore(db, logger)
	app.geofenceStore = postgres.NewPostgresGeofenceStore(db, logger)
	app.waitSampleStore = postgres.NewPostgresWaitSampleStore(db, logger)
	app.messageStore = postgres.NewPostgresMessageStore(db, logger)

	// Initialize the response cache backing the upstream client
	app.cache, err = setupCache(cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	logger.Info("Cache initialized", "backend", cfg.Cache.Backend)

	// Initialize the upstream live-data client
	app.parkClient, err = themeparks.NewClient(cfg.Themeparks, app.cache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize themeparks client: %w", err)
	}

	// Initialize recommendation scoring and day planning
	app.scorer = recommend.NewScorer(recommend.DefaultWeights(), logger)
	app.planner = itinerary.NewPlanner(app.scorer, logger)

	// Initialize the realtime hub before the trip service so persisted trip
	// mutations fan out to connected rooms.
	app.hub = realtime.NewHub(ctx, db, app.messageStore, logger)
	go app.hub.Run()

	// Initialize services
	app.userService = service.NewUserService(app.userStore, db, logger)

	app.tripService, err = service.NewTripService(
		app.tripStore,
		app.tripItemStore,
		app.tripMemberStore,
		app.userStore,
		app.hub,
		db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip service: %w", err)
	}

	app.geofenceService, err = service.NewGeofenceService(app.geofenceStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create geofence service: %w", err)
	}

	// Start the background wait-time sampler when enabled
	if cfg.Poller.Enabled {
		interval := time.Duration(cfg.Poller.IntervalSec) * time.Second
		app.waitPoller = poller.NewPoller(app.parkClient, app.waitSampleStore, interval, logger)
		app.waitPoller.Start(ctx)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupCache builds the cache backend selected by configuration.
func setupCache(cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "redis":
		return cache.NewRedis(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return cache.NewMemory(), nil
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Stop the sampler before anything it writes to goes away
	if app.waitPoller != nil {
		app.waitPoller.Stop()
	}

	// Disconnect realtime clients so nothing writes during teardown
	if app.hub != nil {
		app.hub.Shutdown()
	}

	switch c := app.cache.(type) {
	case *cache.Redis:
		if err := c.Close(); err != nil {
			app.logger.Error("Error closing cache", "error", err)
		}
	case *cache.Memory:
		c.Close()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
