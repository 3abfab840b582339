package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobboard/internal/delivery/api/response"
	deliverycontext "jobboard/internal/delivery/context"
	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/service"
	"jobboard/internal/errors"
	servicemocks "jobboard/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	headers := []string{"", "Bearer", "Bearer   ", "Basic abc", "Token abc", "abc"}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			tokenSvc := servicemocks.NewMockTokenService(t)
			m := NewAuthMiddleware(tokenSvc)
			c, _ := newContext(header)

			err := m.Authenticate(okHandler)(c)

			assert.ErrorIs(t, err, domainerrors.ErrNoToken)
		})
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	userID := uuid.New()
	tokenSvc := servicemocks.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken("abc.def.ghi").
		Return(&service.Identity{UserID: userID, Role: entity.RoleEmployer}, nil).Once()

	m := NewAuthMiddleware(tokenSvc)
	c, rec := newContext("bearer abc.def.ghi")

	require.NoError(t, m.Authenticate(okHandler)(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	gotID, ok := deliverycontext.GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, userID, gotID)

	gotRole, ok := deliverycontext.GetRole(c)
	require.True(t, ok)
	assert.Equal(t, entity.RoleEmployer, gotRole)
}

func TestAuthenticate_RejectedToken(t *testing.T) {
	tokenSvc := servicemocks.NewMockTokenService(t)
	tokenSvc.EXPECT().ValidateToken(mock.Anything).Return(nil, domainerrors.ErrTokenExpired).Once()

	m := NewAuthMiddleware(tokenSvc)
	c, _ := newContext("Bearer stale")

	err := m.Authenticate(okHandler)(c)

	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
	_, ok := deliverycontext.GetUserID(c)
	assert.False(t, ok)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func newErrorMiddleware() *ErrorMiddleware {
	return NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleHTTPError_AppError(t *testing.T) {
	c, rec := newContext("")
	c.Response().Header().Set(deliverycontext.HeaderXRequestID, "req-1")

	newErrorMiddleware().HandleHTTPError(errors.WithStack(domainerrors.ErrEmployerRequired), c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Only employers can post jobs", body.Message)
	assert.Equal(t, "EMPLOYER_REQUIRED", body.Code)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Empty(t, body.Details)
}

func TestHandleHTTPError_ValidationDetails(t *testing.T) {
	c, rec := newContext("")

	newErrorMiddleware().HandleHTTPError(domainerrors.ErrValidationFailed.WithDetails("email is required"), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
	assert.Equal(t, "email is required", body.Details)
}

func TestHandleHTTPError_ServerAppErrorHidesCause(t *testing.T) {
	c, rec := newContext("")
	err := errors.Wrapf(domainerrors.ErrJobCreationFailed, "insert job: %v", "connection refused")

	newErrorMiddleware().HandleHTTPError(err, c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	assert.Equal(t, "Internal server error", decodeError(t, rec).Message)
}

func TestHandleHTTPError_EchoErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "not found", err: echo.ErrNotFound, wantCode: http.StatusNotFound, wantBody: "NOT_FOUND"},
		{name: "method", err: echo.ErrMethodNotAllowed, wantCode: http.StatusMethodNotAllowed, wantBody: "METHOD_NOT_ALLOWED"},
		{name: "bad json", err: echo.NewHTTPError(http.StatusBadRequest, "Syntax error"), wantCode: http.StatusBadRequest, wantBody: "VALIDATION_FAILED"},
		{name: "too large", err: echo.ErrStatusRequestEntityTooLarge, wantCode: http.StatusRequestEntityTooLarge, wantBody: "PAYLOAD_TOO_LARGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext("")

			newErrorMiddleware().HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, decodeError(t, rec).Code)
		})
	}
}

func TestHandleHTTPError_UnknownError(t *testing.T) {
	c, rec := newContext("")

	newErrorMiddleware().HandleHTTPError(errors.New("boom"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestHandleHTTPError_CommittedResponse(t *testing.T) {
	c, rec := newContext("")
	require.NoError(t, c.NoContent(http.StatusAccepted))

	newErrorMiddleware().HandleHTTPError(errors.New("late"), c)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}
