package discovery

import (
	"errors"

	"github.com/anonto42/nano-midea/discovery/internal/repositories"
)

var (
	// ErrUnauthenticated is returned when an operation needs a viewer and has none
	ErrUnauthenticated = errors.New("authentication required")
	// ErrNotFound is returned when referenced content or a user does not exist
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied is returned when visibility or privacy rules reject the viewer
	ErrAccessDenied = errors.New("access denied")
	// ErrValidation is returned for malformed input
	ErrValidation = errors.New("validation failed")
)

// notFound translates the store sentinel into the engine one
func notFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// outcome is the metrics label for err
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

// IsClientError reports whether err is one of the engine's request errors
// rather than a store failure
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrValidation)
}
