package repository

import (
	"context"

	"jobboard/internal/domain/entity"
)

// JobRepository defines persistence for job postings.
type JobRepository interface {
	// Create persists a new job and fills in its ID and CreatedAt.
	// PostedBy is stored as given; no referential check is made.
	Create(ctx context.Context, job *entity.Job) error

	// List returns every job newest first, each with Poster resolved
	// (nil when the posting user no longer exists).
	List(ctx context.Context) ([]*entity.Job, error)
}
