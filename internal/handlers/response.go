package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/nano-midea/discovery/internal/discovery"
	"github.com/anonto42/nano-midea/discovery/pkg/logging"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const defaultLimit = 20

// pageQuery is the limit/offset pair shared by list endpoints
type pageQuery struct {
	Limit  uint32 `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset uint32 `query:"offset"`
}

func (q pageQuery) limit() uint32 {
	if q.Limit == 0 {
		return defaultLimit
	}
	return q.Limit
}

// bindAndValidate binds path and query parameters into req and validates it
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func success(c echo.Context, data interface{}, meta echo.Map) error {
	body := echo.Map{
		"success": true,
		"data":    data,
	}
	if meta != nil {
		body["meta"] = meta
	}
	return c.JSON(http.StatusOK, body)
}

func pageMeta(q pageQuery, count int) echo.Map {
	return echo.Map{
		"limit":  q.limit(),
		"offset": q.Offset,
		"count":  count,
	}
}

// engineError maps discovery errors to HTTP errors; anything unexpected is
// logged and hidden behind a 500
func engineError(c echo.Context, logger zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, discovery.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, discovery.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, discovery.ErrAccessDenied):
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	case errors.Is(err, discovery.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	l := logging.FromContext(c.Request().Context(), logger)
	l.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}
