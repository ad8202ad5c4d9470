package middleware

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// IDTokenVerifier is the part of *auth.Client the authenticator needs
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthenticator identifies viewers by their Firebase UID
type FirebaseAuthenticator struct {
	verifier IDTokenVerifier
}

func NewFirebaseAuthenticator(verifier IDTokenVerifier) *FirebaseAuthenticator {
	return &FirebaseAuthenticator{verifier: verifier}
}

func (a *FirebaseAuthenticator) Authenticate(ctx context.Context, idToken string) (string, error) {
	token, err := a.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}
