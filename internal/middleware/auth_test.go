package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-midea/discovery/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

func serve(t *testing.T, a Authenticator, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = ViewerFromContext(c)
		return c.NoContent(http.StatusOK)
	}, OptionalAuth(a))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestOptionalAuthWithJWT(t *testing.T) {
	a := NewJWTAuthenticator("test-secret")
	valid, err := a.IssueToken("alice", "alice", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	expired, err := a.IssueToken("alice", "alice", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	foreign, err := NewJWTAuthenticator("other-secret").IssueToken("mallory", "", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantViewer string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"valid token", "Bearer " + valid, http.StatusOK, "alice"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "alice"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong secret", "Bearer " + foreign, http.StatusUnauthorized, ""},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"missing token", "Bearer", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, viewer := serve(t, a, tt.header)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if viewer != tt.wantViewer {
				t.Fatalf("viewer = %q, want %q", viewer, tt.wantViewer)
			}
		})
	}
}

func TestJWTAuthenticatorFallsBackToSubject(t *testing.T) {
	a := NewJWTAuthenticator("s")
	claims := &models.JwtCustomClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "bob"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	got, err := a.Authenticate(context.Background(), token)
	if err != nil || got != "bob" {
		t.Fatalf("got %q, %v; want bob", got, err)
	}
}

func TestJWTAuthenticatorRejectsNoneAlgorithm(t *testing.T) {
	a := NewJWTAuthenticator("s")
	claims := &models.JwtCustomClaims{UserID: "eve"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := a.Authenticate(context.Background(), token); err == nil {
		t.Fatal("unsigned token must be rejected")
	}
}

type fakeVerifier map[string]string

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid, ok := f[idToken]
	if !ok {
		return nil, errors.New("invalid id token")
	}
	return &auth.Token{UID: uid}, nil
}

func TestOptionalAuthWithFirebase(t *testing.T) {
	a := NewFirebaseAuthenticator(fakeVerifier{"good": "firebase-uid"})

	rec, viewer := serve(t, a, "Bearer good")
	if rec.Code != http.StatusOK || viewer != "firebase-uid" {
		t.Fatalf("got %d %q", rec.Code, viewer)
	}
	rec, _ = serve(t, a, "Bearer bad")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
