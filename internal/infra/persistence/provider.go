// Package persistence selects the storage backend for users and jobs.
package persistence

import (
	"log/slog"

	"jobboard/config"
	"jobboard/internal/domain/repository"
	"jobboard/internal/errors"
	"jobboard/internal/infra/persistence/memory"
	"jobboard/internal/infra/persistence/mongodb"
	"jobboard/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the dependencies for building the repositories.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the set of repositories exposed to the use cases.
type Repositories struct {
	fx.Out

	Users repository.UserRepository
	Jobs  repository.JobRepository
}

// NewRepositories builds the repositories for the configured storage driver.
// Only the selected backend is connected.
func NewRepositories(params Params) (Repositories, error) {
	driver := params.Config.Storage.Driver

	switch driver {
	case config.StorageDriverMongo:
		db, err := mongodb.New(params.Lifecycle, params.Config, params.Logger)
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			Users: mongodb.NewUserRepository(db),
			Jobs:  mongodb.NewJobRepository(db),
		}, nil

	case config.StorageDriverPostgres:
		db, err := postgres.New(params.Lifecycle, params.Config, params.Logger)
		if err != nil {
			return Repositories{}, err
		}

		return Repositories{
			Users: postgres.NewUserRepository(db),
			Jobs:  postgres.NewJobRepository(db),
		}, nil

	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()

		return Repositories{
			Users: memory.NewUserRepository(store),
			Jobs:  memory.NewJobRepository(store),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unsupported storage driver %q", driver)
	}
}
