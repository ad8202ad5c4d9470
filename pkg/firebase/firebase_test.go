package firebase

import (
	"context"
	"path/filepath"
	"testing"
)

func TestInitFirebaseRequiresCredentials(t *testing.T) {
	if _, err := InitFirebase(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty path")
	}
	missing := filepath.Join(t.TempDir(), "nope.json")
	if _, err := InitFirebase(context.Background(), missing); err == nil {
		t.Fatal("expected error for missing file")
	}
}
