// Package response renders JSON bodies for the API.
package response

import (
	"net/http"

	deliverycontext "jobboard/internal/delivery/context"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message   string `json:"message"`           // User-facing error message
	Code      string `json:"code"`              // Machine-readable error code, e.g. "VALIDATION_FAILED"
	RequestID string `json:"requestId"`         // Request tracking ID
	Details   string `json:"details,omitempty"` // Only for 400 responses
}

// MessageResponse is a body carrying only a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success writes data as the JSON body without an envelope.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// Message writes {"message": ...}.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message})
}

// Error returns an error response. Details are dropped unless the status is 400.
func Error(c echo.Context, statusCode int, errorCode, message, details string) error {
	if statusCode != http.StatusBadRequest {
		details = ""
	}

	return c.JSON(statusCode, ErrorResponse{
		Message:   message,
		Code:      errorCode,
		RequestID: deliverycontext.GetRequestID(c),
		Details:   details,
	})
}

// InternalServerError returns the generic 500 body.
func InternalServerError(c echo.Context) error {
	return Error(c,
		domainerrors.ErrInternalError.HTTPCode(),
		domainerrors.ErrInternalError.ErrorCode(),
		domainerrors.ErrInternalError.Message(),
		"",
	)
}

// HandleAppError renders client errors directly and hands everything else
// to the central error handler, which logs before rendering a 500.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}
