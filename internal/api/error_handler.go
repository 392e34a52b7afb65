package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ecotriz/cee-visits/internal/api/handler"
	"github.com/ecotriz/cee-visits/internal/core/cee"
	"github.com/ecotriz/cee-visits/internal/core/domain"
)

// fieldErrorItem is one offending field in a validation failure.
type fieldErrorItem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse is the canonical error envelope for all API errors. Errors is
// present only on validation failures.
type errorResponse struct {
	Message string           `json:"message"`
	Errors  []fieldErrorItem `json:"errors,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders validation failures as {"message", "errors": [...]} with every
//     offending field itemized.
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally. Their real cause is echoed to the
//     client only when debug is true; production responses stay generic.
func NewHTTPErrorHandler(log zerolog.Logger, debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *handler.ValidationError
		if errors.As(err, &ve) {
			items := make([]fieldErrorItem, 0, len(ve.Fields))
			for _, f := range ve.Fields {
				items = append(items, fieldErrorItem(f))
			}
			_ = c.JSON(http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: items})
			return
		}

		var ce *cee.ValidationError
		if errors.As(err, &ce) {
			items := make([]fieldErrorItem, 0, len(ce.Fields))
			for _, f := range ce.Fields {
				items = append(items, fieldErrorItem(f))
			}
			_ = c.JSON(http.StatusBadRequest, errorResponse{Message: "validation failed", Errors: items})
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusInternalServerError && debug {
			msg = err.Error()
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "client not found"
	case errors.Is(err, domain.ErrVisitNotFound):
		return http.StatusNotFound, "visit not found"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidResetToken):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnknownStatus):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
