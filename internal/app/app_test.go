package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/anonto42/nano-midea/discovery/internal/middleware"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/anonto42/nano-midea/discovery/internal/repositories"
	"github.com/anonto42/nano-midea/discovery/pkg/config"
	"github.com/rs/zerolog"
)

func TestOpenMemoryStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = config.StoreMemory

	b, err := OpenStore(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	if err := b.Writer.PutUser(ctx, &models.UserProfile{ID: "u"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	err = b.Store.View(ctx, func(ctx context.Context, r repositories.Reader) error {
		_, err := r.GetUser(ctx, "u")
		return err
	})
	if err != nil {
		t.Fatalf("writer and store must share state: %v", err)
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = "sqlite"
	if _, err := OpenStore(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewAuthenticator(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.Provider = config.AuthJWT
	cfg.Auth.JWTSecret = "s"
	a, err := NewAuthenticator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}
	if _, ok := a.(*middleware.JWTAuthenticator); !ok {
		t.Fatalf("expected JWT authenticator, got %T", a)
	}

	cfg.Auth.Provider = config.AuthFirebase
	cfg.Auth.FirebaseCredentialsPath = filepath.Join(t.TempDir(), "missing.json")
	if _, err := NewAuthenticator(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing firebase credentials")
	}
}
