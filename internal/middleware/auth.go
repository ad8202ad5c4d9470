package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anonto42/nano-midea/discovery/pkg/logging"
	"github.com/labstack/echo/v4"
)

// ViewerKey is the echo context key holding the authenticated user ID
const ViewerKey = "viewer_id"

// Authenticator turns a bearer token into a user ID
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// OptionalAuth identifies the viewer when an Authorization header is present.
// Requests without one continue anonymously; a malformed or rejected token is
// answered with 401.
func OptionalAuth(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			viewer, err := a.Authenticate(c.Request().Context(), parts[1])
			if err != nil || viewer == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(ViewerKey, viewer)
			req := c.Request()
			c.SetRequest(req.WithContext(logging.ContextWithViewer(req.Context(), viewer)))
			return next(c)
		}
	}
}

// ViewerFromContext returns the authenticated user ID, or "" for anonymous requests
func ViewerFromContext(c echo.Context) string {
	if v, ok := c.Get(ViewerKey).(string); ok {
		return v
	}
	return ""
}
