package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	viewerKey    contextKey = "viewer_id"
)

// GenerateRequestID creates a new request ID
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a new context carrying id
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID or an empty string
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithViewer records the authenticated user for log lines
func ContextWithViewer(ctx context.Context, viewer string) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// FromContext derives a logger from base with the request fields found in ctx.
//
//	logging.FromContext(ctx, logger).Info().Msg("feed assembled")
func FromContext(ctx context.Context, base zerolog.Logger) zerolog.Logger {
	lc := base.With()
	if id := RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if viewer, ok := ctx.Value(viewerKey).(string); ok && viewer != "" {
		lc = lc.Str("viewer_id", viewer)
	}
	return lc.Logger()
}
