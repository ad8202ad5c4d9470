package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// serve runs e until it is shut down; any other stop is reported on errs
func serve(e *echo.Echo, port, name string, logger zerolog.Logger, errs chan<- error) {
	logger.Info().Str("server", name).Str("port", port).Msg("listening")
	if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errs <- fmt.Errorf("%s server: %w", name, err)
	}
}
