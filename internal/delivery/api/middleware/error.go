package middleware

import (
	"log/slog"
	"net/http"

	"jobboard/internal/delivery/api/response"
	deliverycontext "jobboard/internal/delivery/context"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is echo's HTTPErrorHandler. Client errors are rendered with
// their own message; anything else is logged and rendered as a generic 500.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logUnexpected(c, err, appErr.ErrorCode())
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		m.renderHTTPError(c, httpErr)

		return
	}

	m.logUnexpected(c, err, domainerrors.ErrInternalError.ErrorCode())
	_ = response.InternalServerError(c)
}

func (m *ErrorMiddleware) renderHTTPError(c echo.Context, httpErr *echo.HTTPError) {
	message := http.StatusText(httpErr.Code)
	if msg, ok := httpErr.Message.(string); ok && msg != "" {
		message = msg
	}

	code := "HTTP_ERROR"
	switch httpErr.Code {
	case http.StatusBadRequest:
		// Malformed JSON or a type mismatch during Bind.
		code = domainerrors.ErrValidationFailed.ErrorCode()
		message = domainerrors.ErrValidationFailed.Message()
	case http.StatusNotFound:
		code = "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		code = "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		code = "PAYLOAD_TOO_LARGE"
	case http.StatusUnsupportedMediaType:
		code = "UNSUPPORTED_MEDIA_TYPE"
	}

	_ = response.Error(c, httpErr.Code, code, message, "")
}

func (m *ErrorMiddleware) logUnexpected(c echo.Context, err error, code string) {
	req := c.Request()
	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).Error("Unhandled error",
		slog.String("code", code),
		slog.Any("error", err),
		slog.String("path", req.URL.Path),
		slog.String("method", req.Method),
	)
}
