package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/idclaims/internal/userinfo/http"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/metrics"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/service"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store/cache"
	"github.com/aussiebroadwan/idclaims/internal/userinfo/store/drivers/sqlite"
	"github.com/aussiebroadwan/idclaims/pkg/idx"
	"github.com/aussiebroadwan/idclaims/pkg/jwtx"
	"github.com/aussiebroadwan/idclaims/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the userinfo service together.
type Application struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	// Core dependencies
	db       store.Store
	cache    *cache.Redis // nil when Redis is not configured
	keys     *jwtx.KeySet
	verifier jwtx.Verifier

	// Services
	profileService  *service.ProfileService
	userInfoService *service.UserInfoService
	refresher       *service.JWKSRefresher

	// HTTP server
	server *http.Server
	router *httpapi.Router

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "userinfo-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	ctx := context.Background()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initCache(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initKeys(ctx)
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run serves on the configured port until SIGINT or SIGTERM.
func (app *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		_ = app.Shutdown()
		return fmt.Errorf("listen on %s: %w", app.server.Addr, err)
	}
	return app.Serve(ctx, ln)
}

// Serve runs the HTTP server and the JWKS refresher until ctx is done or
// either of them fails, then shuts everything down.
func (app *Application) Serve(ctx context.Context, ln net.Listener) error {
	app.logger.Info("userinfo service starting", "addr", ln.Addr().String(), "version", BuildVersion)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := app.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if app.refresher != nil {
		g.Go(func() error { return app.refresher.Run(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutdown requested", "cause", context.Cause(gctx))
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Shutdown gracefully shuts down the application. It is safe to call more
// than once.
func (app *Application) Shutdown() error {
	app.shutdownOnce.Do(func() {
		app.shutdownErr = app.shutdown()
	})
	return app.shutdownErr
}

func (app *Application) shutdown() error {
	app.logger.Info("shutting down userinfo service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("error closing cache", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("userinfo service stopped")
	return nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initCache connects the Redis profile cache when configured.
func (app *Application) initCache(ctx context.Context) error {
	if app.cfg.RedisAddr == "" {
		app.logger.Info("profile cache disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := cache.NewRedis(ctx, cache.RedisConfig{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
		TTL:      app.cfg.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize profile cache: %w", err)
	}
	app.cache = c
	app.logger.Info("profile cache enabled", "addr", app.cfg.RedisAddr, "ttl", app.cfg.CacheTTL)
	return nil
}

// initKeys sets up the verification key set and performs the first JWKS
// load. A failed first load is not fatal: readyz reports it and the
// refresher keeps trying.
func (app *Application) initKeys(ctx context.Context) {
	app.keys = jwtx.NewKeySet()
	app.verifier = jwtx.NewCommonEdDSA(app.keys, jwtx.VerifyOptions{
		Issuer:   app.cfg.Issuer,
		Audience: app.cfg.Audience,
		Leeway:   30 * time.Second,
	})

	source := app.cfg.JWKSSource()
	if source == "" {
		app.logger.Warn("no JWKS source configured, bearer-protected routes will answer 503")
		return
	}

	app.refresher = service.NewJWKSRefresher(app.keys, source, app.cfg.JWKSRefresh, app.logger)
	app.refresher.Metrics = app.metrics

	if err := app.refresher.Refresh(ctx); err != nil {
		app.logger.Warn("initial JWKS load failed", "source", source, "err", err)
		return
	}
	app.logger.Info("verification keys loaded", "source", source, "keys", app.keys.Len())
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.profileService = &service.ProfileService{
		Store:   app.db,
		IDs:     idx.NewGenerator(nil, nil),
		Metrics: app.metrics,
	}
	if app.cache != nil {
		app.profileService.Cache = app.cache
	}

	app.userInfoService = &service.UserInfoService{
		Profiles:   app.profileService,
		Issuer:     app.cfg.Issuer,
		IDTokenTTL: app.cfg.IDTokenTTL,
		Metrics:    app.metrics,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)

	router.ProfileService = app.profileService
	router.UserInfoService = app.userInfoService
	if app.cache != nil {
		router.Cache = app.cache
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
