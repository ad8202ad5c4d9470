package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/nano-midea/discovery/internal/app"
	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/internal/router"
	"github.com/anonto42/nano-midea/discovery/internal/seed"
	"github.com/anonto42/nano-midea/discovery/internal/validators"
	"github.com/anonto42/nano-midea/discovery/pkg/config"
	"github.com/anonto42/nano-midea/discovery/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the store
	backend, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer backend.Close()

	if cfg.SeedDemo {
		summary, err := seed.Demo(ctx, backend.Writer, time.Now().UnixMilli())
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info().
			Int("users", summary.Users).
			Int("content", summary.Content).
			Msg("demo data seeded")
	}

	authenticator, err := app.NewAuthenticator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init authenticator: %w", err)
	}

	engine := discovery.NewEngine(backend.Store, discovery.WithLogger(logger))

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.NewValidator()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	config.SetupMiddleware(e, logger)
	router.SetupRoutes(e, router.Dependencies{
		Engine:        engine,
		Authenticator: authenticator,
		Logger:        logger,
	})

	metrics := echo.New()
	metrics.HideBanner = true
	metrics.HidePort = true
	metrics.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	errs := make(chan error, 2)
	go serve(metrics, cfg.MetricsPort, "metrics", logger, errs)
	go serve(e, cfg.Port, "api", logger, errs)

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	case serveErr = <-errs:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("api server shutdown")
	}
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("metrics server shutdown")
	}
	return serveErr
}
