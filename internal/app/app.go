// Package app assembles the store and authenticator selected by configuration.
package app

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
	"github.com/anonto42/nano-midea/discovery/pkg/config"
	"github.com/anonto42/nano-midea/discovery/pkg/firebase"
	"github.com/rs/zerolog"
)

// Backend is an opened store with its read and write sides
type Backend struct {
	Store  repositories.Store
	Writer repositories.Writer

	close func()
}

// Close releases the backend's connections
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// OpenStore opens the store named by cfg.Store.Driver
func OpenStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		s := repositories.NewMemoryStore()
		logger.Info().Str("driver", cfg.Store.Driver).Msg("using in-memory store")
		return &Backend{Store: s, Writer: s}, nil

	case config.StorePersistent:
		db, err := config.InitDB(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		s := repositories.NewPersistentStore(
			db.Postgres,
			db.Mongo.Database(cfg.Store.MongoDatabase),
			repositories.NewRedisHashtagIndex(db.Redis),
			cfg.Store.MongoSnapshotReads,
		)
		if err := s.Migrate(ctx); err != nil {
			db.CloseDB()
			return nil, err
		}
		logger.Info().
			Str("driver", cfg.Store.Driver).
			Bool("snapshot_reads", cfg.Store.MongoSnapshotReads).
			Msg("persistent store ready")
		return &Backend{Store: s, Writer: s, close: db.CloseDB}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// NewAuthenticator builds the identity provider named by cfg.Auth.Provider
func NewAuthenticator(ctx context.Context, cfg *config.Config) (middleware.Authenticator, error) {
	switch cfg.Auth.Provider {
	case config.AuthJWT:
		return middleware.NewJWTAuthenticator(cfg.Auth.JWTSecret), nil
	case config.AuthFirebase:
		fb, err := firebase.InitFirebase(ctx, cfg.Auth.FirebaseCredentialsPath)
		if err != nil {
			return nil, err
		}
		return middleware.NewFirebaseAuthenticator(fb.AuthClient), nil
	}
	return nil, fmt.Errorf("unknown auth provider %q", cfg.Auth.Provider)
}
