package impl

import (
	"context"
	"log/slog"

	deliverycontext "jobboard/internal/delivery/context"
	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	"jobboard/internal/domain/service"
	"jobboard/internal/errors"
	"jobboard/internal/usecase"

	"go.uber.org/fx"
)

type jobService struct {
	jobRepo   repository.JobRepository
	userRepo  repository.UserRepository
	cache     service.JobCache
	publisher service.EventPublisher
	logger    *slog.Logger
}

// JobServiceParams holds dependencies for JobService, injected by Fx.
type JobServiceParams struct {
	fx.In

	JobRepo   repository.JobRepository
	UserRepo  repository.UserRepository
	Cache     service.JobCache
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewJobService creates the job posting use case.
func NewJobService(params JobServiceParams) usecase.JobUsecase {
	return &jobService{
		jobRepo:   params.JobRepo,
		userRepo:  params.UserRepo,
		cache:     params.Cache,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *jobService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListJobs serves from the cache when possible. Cache failures only cost a
// store read. The generation is captured before the store read so that a
// listing raced by CreateJob is filed under a generation it has already
// retired.
func (srv *jobService) ListJobs(ctx context.Context) ([]*entity.Job, error) {
	gen, err := srv.cache.Generation(ctx)
	cacheable := err == nil
	if err != nil {
		srv.log(ctx).Warn("Job cache generation read failed", slog.Any("error", err))
	}

	if cacheable {
		jobs, ok, err := srv.cache.Get(ctx, gen)
		if err != nil {
			srv.log(ctx).Warn("Job cache read failed", slog.Any("error", err))
		}
		if ok {
			return jobs, nil
		}
	}

	jobs, err := srv.jobRepo.List(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "list jobs")
	}
	if jobs == nil {
		jobs = []*entity.Job{}
	}

	if cacheable {
		if err := srv.cache.Set(ctx, gen, jobs); err != nil {
			srv.log(ctx).Warn("Job cache write failed", slog.Any("error", err))
		}
	}

	return jobs, nil
}

// CreateJob stores a posting for an employer, then invalidates the listing
// cache and announces the posting. Neither follow-up can fail the request.
func (srv *jobService) CreateJob(ctx context.Context, input *usecase.CreateJobInput) (*entity.Job, error) {
	if !input.Role.CanPostJobs() {
		srv.log(ctx).Info("Job creation denied", slog.Any("userID", input.PostedBy), slog.String("role", input.Role.String()))

		return nil, domainerrors.ErrEmployerRequired
	}

	job := &entity.Job{
		Title:       input.Title,
		Description: input.Description,
		Company:     input.Company,
		Location:    input.Location,
		Salary:      input.Salary,
		PostedBy:    input.PostedBy,
	}

	if err := srv.jobRepo.Create(ctx, job); err != nil {
		return nil, errors.Wrapf(domainerrors.ErrJobCreationFailed, "create job: %v", err)
	}

	job.Poster = srv.resolvePoster(ctx, job)

	if err := srv.cache.Invalidate(ctx); err != nil {
		srv.log(ctx).Warn("Job cache invalidation failed", slog.Any("error", err))
	}

	event := &service.JobPostedEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		JobID:     job.ID.String(),
		Title:     job.Title,
		Company:   job.Company,
		Location:  job.Location,
		PostedBy:  job.PostedBy.String(),
		CreatedAt: job.CreatedAt,
	}
	if err := srv.publisher.PublishJobPosted(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish job posted event", slog.String("jobID", event.JobID), slog.Any("error", err))
	}

	srv.log(ctx).Info("Job created", slog.String("jobID", event.JobID), slog.Any("postedBy", job.PostedBy))

	return job, nil
}

func (srv *jobService) resolvePoster(ctx context.Context, job *entity.Job) *entity.Poster {
	user, err := srv.userRepo.FindByID(ctx, job.PostedBy)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Failed to resolve job poster", slog.Any("postedBy", job.PostedBy), slog.Any("error", err))
		}

		return nil
	}

	return &entity.Poster{ID: user.ID, Name: user.Name}
}
