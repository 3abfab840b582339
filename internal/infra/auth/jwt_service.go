package auth

import (
	"time"

	"jobboard/config"
	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// The secret is read once here and never rotated for the life of the process.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// GenerateToken creates a signed access token for a user and role.
func (s *jwtService) GenerateToken(userID uuid.UUID, role entity.Role) (string, error) {
	issuedAt := s.now()
	claims := service.Claims{
		Role: role,
		Type: service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// ValidateToken verifies the signature, then the expiry, then decodes the identity.
func (s *jwtService) ValidateToken(tokenString string) (*service.Identity, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	if claims.Type != service.TokenTypeAccess {
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("unexpected token type")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("invalid subject")
	}

	if !claims.Role.IsValid() {
		return nil, domainerrors.ErrTokenMalformed.WrapMessage("invalid role claim")
	}

	return &service.Identity{
		UserID:    userID,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// TokenTTL returns the configured lifetime of issued tokens.
func (s *jwtService) TokenTTL() time.Duration {
	return s.ttl
}

// classifyTokenError maps jwt parse failures onto the domain taxonomy.
// jwt/v5 checks the signature before validating claims, so an expired
// token only reports ErrTokenExpired once its signature matched.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domainerrors.ErrTokenSignatureInvalid.WrapMessage(err.Error())
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.ErrTokenExpired.WrapMessage(err.Error())
	default:
		return domainerrors.ErrTokenMalformed.WrapMessage(err.Error())
	}
}
