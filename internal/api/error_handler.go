package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/chartflow/portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrModalClosed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUnknownMode), errors.Is(err, domain.ErrUnknownTimeRange):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidSettings):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "not signed in"
	case errors.Is(err, domain.ErrClientClosed):
		return http.StatusServiceUnavailable, "service is shutting down"
	}

	// A structured identity service failure outside the modal (sign-out).
	if ge, ok := domain.AsGatewayError(err); ok {
		return http.StatusBadGateway, ge.Message
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
