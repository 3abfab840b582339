package postgres

import (
	"strings"

	"jobboard/internal/errors"

	"gorm.io/gorm"
)

// uniqueViolationCode is PostgreSQL's SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

// isUniqueConstraintViolation reports whether err came from a unique index.
// GORM only translates driver errors when TranslateError is enabled, so the
// SQLSTATE and message are checked as well.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, uniqueViolationCode) ||
		strings.Contains(errMsg, "duplicate key value")
}
