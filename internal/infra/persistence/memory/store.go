// Package memory implements the user and job stores in process memory.
// Data is lost on restart; it backs local runs and end-to-end tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	"jobboard/internal/errors"

	"github.com/google/uuid"
)

// Store holds users and jobs behind a single lock so job listings see a
// consistent view of posters.
type Store struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID
	jobs    []*entity.Job
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:   make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type userRepository struct{ store *Store }

type jobRepository struct{ store *Store }

// NewUserRepository returns a UserRepository over the store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

// NewJobRepository returns a JobRepository over the store.
func NewJobRepository(store *Store) repository.JobRepository {
	return &jobRepository{store: store}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	user, ok := repo.store.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *user

	return &cp, nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	id, ok := repo.store.byEmail[entity.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *repo.store.users[id]

	return &cp, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	user.Email = entity.NormalizeEmail(user.Email)

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, exists := repo.store.byEmail[user.Email]; exists {
		return domainerrors.ErrUserAlreadyExists
	}

	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = repo.store.now()
	}

	cp := *user
	repo.store.users[cp.ID] = &cp
	repo.store.byEmail[cp.Email] = cp.ID

	return nil
}

func (repo *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	if job.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate job id")
		}
		job.ID = id
	}

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if job.CreatedAt.IsZero() {
		job.CreatedAt = repo.store.now()
	}

	cp := *job
	cp.Poster = nil
	repo.store.jobs = append(repo.store.jobs, &cp)

	return nil
}

func (repo *jobRepository) List(ctx context.Context) ([]*entity.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	jobs := make([]*entity.Job, 0, len(repo.store.jobs))
	for _, stored := range repo.store.jobs {
		job := *stored
		if poster, ok := repo.store.users[job.PostedBy]; ok {
			job.Poster = &entity.Poster{ID: poster.ID, Name: poster.Name}
		}
		jobs = append(jobs, &job)
	}

	slices.SortStableFunc(jobs, func(a, b *entity.Job) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return slices.Compare(b.ID[:], a.ID[:])
	})

	return jobs, nil
}
