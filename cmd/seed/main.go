package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anonto42/nano-midea/discovery/internal/app"
	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/anonto42/nano-midea/discovery/internal/seed"
	"github.com/anonto42/nano-midea/discovery/pkg/config"
	"github.com/anonto42/nano-midea/discovery/pkg/logging"
	"github.com/rs/zerolog"
)

const demoTokenTTL = 24 * time.Hour

// seed writes the demo data set into the configured store and prints a bearer
// token per demo account when the JWT provider is active.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("seeding failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.Store.Driver == config.StoreMemory {
		logger.Warn().Msg("memory store selected; seeded data disappears when this process exits")
	}

	ctx := context.Background()
	backend, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer backend.Close()

	summary, err := seed.Demo(ctx, backend.Writer, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	logger.Info().
		Int("users", summary.Users).
		Int("content", summary.Content).
		Int("edges", summary.Edges).
		Int("hashtags", summary.Hashtags).
		Msg("demo data seeded")

	if cfg.Auth.Provider != config.AuthJWT {
		return nil
	}
	issuer := middleware.NewJWTAuthenticator(cfg.Auth.JWTSecret)
	for _, name := range seed.Usernames() {
		token, err := issuer.IssueToken(seed.ID(name), name, demoTokenTTL)
		if err != nil {
			return fmt.Errorf("issue token for %s: %w", name, err)
		}
		fmt.Printf("%-8s %s\n", name, token)
	}
	return nil
}
