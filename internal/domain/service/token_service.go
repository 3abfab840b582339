package service

import (
	"time"

	"jobboard/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTypeAccess marks bearer tokens issued at login.
const TokenTypeAccess = "access"

// Claims defines the custom claims for the JWT tokens.
// The subject carries the user ID.
type Claims struct {
	Role entity.Role `json:"userType"`
	Type string      `json:"type"`
	jwt.RegisteredClaims
}

// Identity is what a verified token asserts.
type Identity struct {
	UserID    uuid.UUID
	Role      entity.Role
	ExpiresAt time.Time
}

// TokenService defines the interface for issuing and verifying bearer tokens.
type TokenService interface {
	// GenerateToken issues a signed, time-limited token for the user and role.
	GenerateToken(userID uuid.UUID, role entity.Role) (string, error)

	// ValidateToken verifies the signature before decoding and returns the identity.
	// Fails with ErrTokenSignatureInvalid, ErrTokenExpired or ErrTokenMalformed.
	ValidateToken(tokenString string) (*Identity, error)

	// TokenTTL returns the configured lifetime of issued tokens.
	TokenTTL() time.Duration
}
