package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/cache"
	httpapi "github.com/aussiebroadwan/storefront/internal/storefront/http"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	serviceName = "storefront"
)

// Application encapsulates the storefront service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	cache    cache.Client
	metrics  *metrics.Metrics
	hasher   *cryptox.Hasher
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	// Services
	authService    *service.AuthService
	userService    *service.UserService
	rolesService   *service.RolesService
	catalogService *service.CatalogService
	roleWarmer     *service.RoleCacheWarmer

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: serviceName,
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// New creates a new Application instance with all dependencies initialized
func New(ctx context.Context, cfg Config) (*Application, error) {
	app := &Application{
		cfg:    cfg,
		logger: NewLogger(cfg),
	}

	hasher, err := cryptox.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	app.hasher = hasher

	// Refuse to start without a signing secret before touching the database
	app.signer, app.verifier, err = InitSigning(cfg, app.logger)
	if err != nil {
		return nil, err
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	if err := app.initCache(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.metrics = metrics.New(serviceName)
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.roleWarmer.Start()

	app.logger.Info("storefront starting", "port", app.cfg.Port, "version", BuildVersion, "prefix", app.cfg.APIPrefix)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.roleWarmer.Stop()
			app.closeResources()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down storefront...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.roleWarmer.Stop()

	if err := app.closeResources(); err != nil {
		return err
	}

	app.logger.Info("storefront stopped")
	return nil
}

func (app *Application) closeResources() error {
	if err := app.cache.Close(); err != nil {
		app.logger.Error("error closing cache", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)

	// Registration needs the CUSTOMER role; point operators at the seed command
	empty, err := db.Roles().IsEmpty(ctx)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to inspect roles: %w", err)
	}
	if empty {
		app.logger.Warn("no roles found, run `storefront seed` before accepting registrations")
	}

	return nil
}

func (app *Application) initCache() error {
	c, err := cache.New(cache.Config{
		Driver:     app.cfg.CacheDriver,
		Addr:       app.cfg.RedisAddr,
		Password:   app.cfg.RedisPassword,
		DB:         app.cfg.RedisDB,
		Prefix:     serviceName,
		DefaultTTL: app.cfg.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	app.cache = c
	app.logger.Info("cache initialized", "driver", app.cfg.CacheDriver)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.rolesService = &service.RolesService{
		Store:   app.db,
		Cache:   app.cache,
		TTL:     app.cfg.CacheTTL,
		Metrics: app.metrics,
	}
	app.userService = &service.UserService{Store: app.db}
	app.catalogService = &service.CatalogService{Store: app.db}
	app.authService = &service.AuthService{
		Store:       app.db,
		Roles:       app.rolesService,
		Hasher:      app.hasher,
		Signer:      app.signer,
		Issuer:      app.cfg.JWTIssuer,
		TokenTTL:    app.cfg.JWTExpiresIn,
		PhoneRegion: app.cfg.PhoneRegion,
		Metrics:     app.metrics,
	}

	app.roleWarmer = service.NewRoleCacheWarmer(
		app.rolesService,
		app.logger,
		app.cfg.CacheRefresh,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.verifier,
		app.cfg.APIPrefix,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.Cache = app.cache
	router.Metrics = app.metrics
	router.CORSOrigins = app.cfg.CORSOrigins
	router.AuthService = app.authService
	router.UserService = app.userService
	router.RolesService = app.rolesService
	router.CatalogService = app.catalogService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

// Migrate applies database migrations and exits.
func Migrate(ctx context.Context, cfg Config) error {
	logger := NewLogger(cfg)

	db, err := OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
	return nil
}

// Seed migrates the database and loads the YAML fixture in raw. A nil raw
// loads the built-in demo data.
func Seed(ctx context.Context, cfg Config, raw []byte) (service.SeedReport, error) {
	logger := NewLogger(cfg)

	if raw == nil {
		raw = service.DefaultSeed
	}
	data, err := service.ParseSeed(raw)
	if err != nil {
		return service.SeedReport{}, err
	}

	hasher, err := cryptox.NewHasher(cfg.BcryptCost)
	if err != nil {
		return service.SeedReport{}, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	db, err := OpenStore(ctx, cfg)
	if err != nil {
		return service.SeedReport{}, fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return service.SeedReport{}, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	report, err := (&service.SeedService{Store: db, Hasher: hasher}).Seed(ctx, data)
	if err != nil {
		return service.SeedReport{}, err
	}

	logger.Info("seed completed",
		"roles", report.Roles,
		"users", report.Users,
		"created_users", report.CreatedUsers,
		"categories", report.Categories,
		"products", report.Products,
		"images", report.Images,
	)
	return report, nil
}
