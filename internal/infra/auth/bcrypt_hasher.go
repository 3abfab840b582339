// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"unicode"

	"jobboard/config"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input past this many bytes, so longer passwords are rejected.
const bcryptMaxPasswordBytes = 72

// PasswordPolicy is the set of rules applied by ValidatePasswordStrength.
type PasswordPolicy struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireNumbers   bool
	RequireSpecial   bool
	ForbiddenWords   []string
}

// DefaultPasswordPolicy only requires a non-empty password bcrypt can hash in full.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength: 1,
		MaxLength: bcryptMaxPasswordBytes,
	}
}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy PasswordPolicy
}

// NewBcryptHasher builds the hasher from the auth and passwordStrength config sections.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	return NewBcryptHasherWithCost(cost, policyFromConfig(cfg.PasswordStrength))
}

// NewBcryptHasherWithCost returns a hasher with an explicit cost, clamped to bcrypt's range.
func NewBcryptHasherWithCost(cost int, policy PasswordPolicy) service.PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	if policy.MaxLength <= 0 || policy.MaxLength > bcryptMaxPasswordBytes {
		policy.MaxLength = bcryptMaxPasswordBytes
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

func policyFromConfig(cfg *config.PasswordStrengthConfig) PasswordPolicy {
	if cfg == nil {
		return DefaultPasswordPolicy()
	}

	return PasswordPolicy{
		MinLength:        cfg.MinLength,
		MaxLength:        cfg.MaxLength,
		RequireUppercase: cfg.RequireUppercase,
		RequireLowercase: cfg.RequireLowercase,
		RequireNumbers:   cfg.RequireNumbers,
		RequireSpecial:   cfg.RequireSpecial,
		ForbiddenWords:   cfg.ForbiddenWords,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt generates a fresh salt on every call.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt generate")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength applies the configured policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	minLength := max(h.policy.MinLength, 1)
	if len([]rune(password)) < minLength {
		return domainerrors.ErrPasswordStrength.WithDetails("must be at least " + strconv.Itoa(minLength) + " characters long")
	}
	if len(password) > h.policy.MaxLength {
		return domainerrors.ErrPasswordStrength.WithDetails("must be at most " + strconv.Itoa(h.policy.MaxLength) + " bytes long")
	}
	if h.policy.RequireLowercase && !h.hasLowercase(password) {
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one lowercase letter")
	}
	if h.policy.RequireUppercase && !h.hasUppercase(password) {
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one uppercase letter")
	}
	if h.policy.RequireNumbers && !h.hasNumbers(password) {
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one number")
	}
	if h.policy.RequireSpecial && !h.hasSpecialChars(password) {
		return domainerrors.ErrPasswordStrength.WithDetails("must contain at least one special character")
	}
	if h.containsForbiddenWords(password, h.policy.ForbiddenWords) {
		return domainerrors.ErrPasswordForbiddenWords
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) >= 0
}

func (h *bcryptHasher) containsForbiddenWords(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			return true
		}
	}

	return false
}
