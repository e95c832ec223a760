package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/libreria/internal/auth"
	"github.com/mrlokans/libreria/internal/config"
	"github.com/mrlokans/libreria/internal/database"
	http_controllers "github.com/mrlokans/libreria/internal/http"
	"github.com/mrlokans/libreria/internal/logger"
	"github.com/mrlokans/libreria/internal/services"
)

// App holds everything the HTTP server needs. Close releases it.
type App struct {
	Router  *gin.Engine
	DB      *database.Database
	limiter *auth.RateLimiter
}

// Close stops background work and closes the database.
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if err := a.DB.Close(); err != nil {
		logger.Get().Error().Err(err).Msg("error closing database")
	}
}

// Build opens the database, seeds the optional administrator and wires the router.
func Build(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.LogSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app := &App{DB: db}

	users := auth.NewService(db, cfg.Auth)
	if cfg.Auth.AdminEmail != "" && cfg.Auth.AdminPassword != "" {
		if _, err := users.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Auth.AdminName); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create administrator: %w", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Books:             services.NewBookService(db),
		Categories:        services.NewCategoryService(db),
		Carts:             services.NewCartService(db),
		Sales:             services.NewSaleService(db),
		Users:             users,
		Database:          db,
		CORSOrigin:        cfg.CORS.AllowedOrigin,
		ReadOnly:          cfg.Global.ReadOnly,
		Pagination:        cfg.Pagination,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
		Version:           version,
	}

	// Leave LoginLimiter nil when throttling is off.
	if cfg.Auth.MaxLoginAttempts > 0 {
		app.limiter = auth.NewRateLimiter(auth.RateLimitConfig{
			MaxAttempts:     cfg.Auth.MaxLoginAttempts,
			WindowDuration:  cfg.Auth.RateLimitWindow,
			LockoutDuration: cfg.Auth.LockoutDuration,
		})
		routerCfg.LoginLimiter = app.limiter
	} else {
		logger.Get().Warn().Msg("login throttling disabled")
	}

	if cfg.Global.ReadOnly {
		logger.Get().Warn().Msg("read-only mode: write requests will be rejected")
	}

	app.Router = http_controllers.NewRouter(routerCfg)
	return app, nil
}

// Serve runs handler until ctx is cancelled, then shuts the server down
// within the configured timeout.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Get().Info().Str("addr", addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Get().Info().Dur("timeout", timeout).Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Get().Info().Msg("server exiting")
	return nil
}

// Run starts the API and blocks until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	logger.Init(cfg.Log)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Get().Info().Str("version", version).Msg("starting Libreria API")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := Build(ctx, cfg, version)
	if err != nil {
		return err
	}
	defer app.Close()

	return Serve(ctx, app.Router, cfg)
}
