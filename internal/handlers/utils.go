package handlers

import (
	"errors"
	"net/http"

	"github.com/iconluxury/bucketd/internal/models"
	"github.com/iconluxury/bucketd/internal/services"
	"github.com/iconluxury/bucketd/pkg/logger"
	"github.com/labstack/echo/v4"
)

// respondError maps a service error onto an HTTP status and a plain
// {"error": message} body. Messages stay human-readable; causes are
// logged, never exposed.
func respondError(c echo.Context, err error) error {
	var berr *services.BrowserError
	if !errors.As(err, &berr) {
		logger.Log.Error().Err(err).Msg("unclassified error")
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}

	status := http.StatusInternalServerError
	switch berr.Kind {
	case services.KindInvalidArgument:
		status = http.StatusBadRequest
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindPermissionDenied:
		status = http.StatusForbidden
	case services.KindStore, services.KindInternal:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		logger.Log.Error().Err(berr.Unwrap()).Str("message", berr.Message).Msg("request failed")
	}
	return c.JSON(status, models.ErrorResponse{Error: berr.Message})
}
