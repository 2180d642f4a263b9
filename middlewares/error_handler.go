package middlewares

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"synthflow/apperrors"
)

// ErrorHandler is the central echo HTTPErrorHandler. Domain errors render
// their own message and status; anything unanticipated becomes a generic 500
// without leaking internal detail.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "An unexpected error occurred"

	var appErr *apperrors.AppError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Request().URL.Path,
		}).WithError(err).Error("Unhandled error")
	}

	respErr := c.JSON(code, echo.Map{
		"error": echo.Map{
			"message":     message,
			"status_code": code,
		},
	})
	if respErr != nil {
		logrus.WithError(respErr).Error("Failed to write error response")
	}
}
