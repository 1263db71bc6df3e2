package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/gcal"
)

var errBadBody = errors.New("server: invalid request body")

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps planner errors onto HTTP status codes.
func statusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, errBadBody), errors.Is(err, app.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gcal.ErrIntegration):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func errorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := statusFor(err)
		msg := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			if m, ok := he.Message.(string); ok {
				msg = m
			}
		}
		if code >= http.StatusInternalServerError {
			logger.WithError(err).WithField("path", c.Request().URL.Path).Error("server: request failed")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}
