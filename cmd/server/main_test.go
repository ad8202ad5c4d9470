package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/anonto42/nano-midea/discovery/pkg/config"
	"github.com/rs/zerolog"
)

func TestRunReturnsAuthenticatorError(t *testing.T) {
	cfg := &config.Config{}
	cfg.Store.Driver = config.StoreMemory
	cfg.Auth.Provider = config.AuthFirebase
	cfg.Auth.FirebaseCredentialsPath = filepath.Join(t.TempDir(), "missing.json")

	err := run(cfg, zerolog.Nop())
	if err == nil || !strings.Contains(err.Error(), "init authenticator") {
		t.Fatalf("expected authenticator error, got %v", err)
	}
}
