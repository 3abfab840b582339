package usecase

import (
	"context"

	"jobboard/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateJobInput defines a new posting. PostedBy and Role come from the
// verified bearer token, never from the request body.
type CreateJobInput struct {
	Title       string
	Description string
	Company     string
	Location    string
	Salary      string

	PostedBy uuid.UUID
	Role     entity.Role
}

// JobUsecase defines the job posting operations.
type JobUsecase interface {
	// ListJobs returns every posting newest first with its poster resolved.
	ListJobs(ctx context.Context) ([]*entity.Job, error)

	// CreateJob publishes a posting on behalf of an employer.
	CreateJob(ctx context.Context, input *CreateJobInput) (*entity.Job, error)
}
