package entity

import (
	"time"

	"github.com/google/uuid"
)

// Job is a posting published by an employer.
type Job struct {
	ID          uuid.UUID
	Title       string
	Description string
	Company     string
	Location    string
	Salary      string    // Free-form and optional; empty when not provided.
	PostedBy    uuid.UUID // Taken from the verified token subject.
	CreatedAt   time.Time

	// Poster is resolved on reads. Nil when the referenced user no longer exists.
	Poster *Poster
}

// Poster is the public view of the user that published a job.
type Poster struct {
	ID   uuid.UUID
	Name string
}
