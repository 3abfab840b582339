package postgres

import (
	"context"
	"time"

	"jobboard/internal/domain/entity"
	"jobboard/internal/domain/repository"
	"jobboard/internal/errors"
	"jobboard/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// jobRepository implements repository.JobRepository using GORM.
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository is the constructor for jobRepository.
func NewJobRepository(db *gorm.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

func (repo *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	if job.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate job id")
		}
		job.ID = id
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}

	if err := repo.db.WithContext(ctx).Omit("Poster").Create(fromJobDomain(job)).Error; err != nil {
		return errors.Wrap(err, "failed to create job")
	}

	return nil
}

// List returns all jobs newest first with the poster preloaded.
func (repo *jobRepository) List(ctx context.Context) ([]*entity.Job, error) {
	var jobMs []*model.JobModel
	err := repo.db.WithContext(ctx).
		Preload("Poster", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name")
		}).
		Order("created_at DESC").
		Order("id DESC").
		Find(&jobMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}

	jobs := make([]*entity.Job, 0, len(jobMs))
	for _, jobM := range jobMs {
		jobs = append(jobs, toJobDomain(jobM))
	}

	return jobs, nil
}

func toJobDomain(data *model.JobModel) *entity.Job {
	job := &entity.Job{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Company:     data.Company,
		Location:    data.Location,
		PostedBy:    data.PostedBy,
		CreatedAt:   data.CreatedAt,
	}
	if data.Salary != nil {
		job.Salary = *data.Salary
	}
	if data.Poster != nil {
		job.Poster = &entity.Poster{ID: data.Poster.ID, Name: data.Poster.Name}
	}

	return job
}

func fromJobDomain(data *entity.Job) *model.JobModel {
	jobM := &model.JobModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Company:     data.Company,
		Location:    data.Location,
		PostedBy:    data.PostedBy,
		CreatedAt:   data.CreatedAt,
	}
	if data.Salary != "" {
		salary := data.Salary
		jobM.Salary = &salary
	}

	return jobM
}
