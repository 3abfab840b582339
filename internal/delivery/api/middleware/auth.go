package middleware

import (
	"strings"

	deliverycontext "jobboard/internal/delivery/context"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/service"
	"jobboard/internal/errors"

	"github.com/labstack/echo/v4"
)

const bearerScheme = "Bearer"

// AuthMiddleware authenticates bearer tokens.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate verifies the Authorization header and stores the caller
// identity on the context. A missing or non-Bearer header yields
// ErrNoToken; any verification failure yields the token service's error.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrNoToken
		}

		identity, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetIdentity(c, identity.UserID, identity.Role)

		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
