package middleware

import (
	"context"
	"log/slog"
	"net/http"

	deliverycontext "membership/internal/delivery/context"
	"membership/internal/delivery/http/response"
	domainerrors "membership/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware translates errors escaping the handler chain into the JSON
// envelope. Use-case errors carry their own status and code; anything else is
// logged and reported as an internal error.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates the error handling middleware.
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError is installed as Echo's HTTPErrorHandler.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
		response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	logger.LogAttrs(context.Background(), slog.LevelError, "Unhandled error",
		slog.String("error", err.Error()),
		slog.String("method", c.Request().Method),
		slog.String("path", c.Request().URL.Path),
	)

	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error", "")
}
