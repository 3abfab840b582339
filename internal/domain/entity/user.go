// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account in the job board. It is created on registration and never mutated.
type User struct {
	ID           uuid.UUID // Time-ordered (v7) identifier assigned on insert.
	Name         string    // Display name shown next to postings.
	Email        string    // Login identifier, unique across users (normalized).
	PasswordHash string    // bcrypt digest of the password.
	Role         Role      // Fixed at registration.
	CreatedAt    time.Time
}

// NormalizeEmail trims and lower-cases an email so lookups and the unique index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
