// Package cache provides the job listing cache.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"jobboard/config"
	"jobboard/internal/domain/entity"
	"jobboard/internal/domain/lifecycle"
	"jobboard/internal/domain/service"
	"jobboard/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	jobsGenKey    = "jobs:gen"
	jobsKeyPrefix = "jobs:all:"
)

func jobsKey(gen int64) string {
	return jobsKeyPrefix + strconv.FormatInt(gen, 10)
}

type redisJobCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

type cachedPoster struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type cachedJob struct {
	ID          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Company     string        `json:"company"`
	Location    string        `json:"location"`
	Salary      string        `json:"salary,omitempty"`
	PostedBy    uuid.UUID     `json:"postedBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	Poster      *cachedPoster `json:"poster,omitempty"`
}

// NewRedisJobCache wraps a redis client as a JobCache.
func NewRedisJobCache(client redis.Cmdable, ttl time.Duration) service.JobCache {
	return &redisJobCache{client: client, ttl: ttl}
}

// Generation reads the counter Invalidate increments; an unset counter is 0.
func (c *redisJobCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, jobsGenKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, errors.Wrap(err, "failed to read jobs cache generation")
	}

	return gen, nil
}

func (c *redisJobCache) Get(ctx context.Context, gen int64) ([]*entity.Job, bool, error) {
	raw, err := c.client.Get(ctx, jobsKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, errors.Wrap(err, "failed to read jobs cache")
	}

	var cached []cachedJob
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, errors.Wrap(err, "failed to decode jobs cache")
	}

	jobs := make([]*entity.Job, 0, len(cached))
	for _, cj := range cached {
		job := &entity.Job{
			ID:          cj.ID,
			Title:       cj.Title,
			Description: cj.Description,
			Company:     cj.Company,
			Location:    cj.Location,
			Salary:      cj.Salary,
			PostedBy:    cj.PostedBy,
			CreatedAt:   cj.CreatedAt,
		}
		if cj.Poster != nil {
			job.Poster = &entity.Poster{ID: cj.Poster.ID, Name: cj.Poster.Name}
		}
		jobs = append(jobs, job)
	}

	return jobs, true, nil
}

func (c *redisJobCache) Set(ctx context.Context, gen int64, jobs []*entity.Job) error {
	cached := make([]cachedJob, 0, len(jobs))
	for _, job := range jobs {
		cj := cachedJob{
			ID:          job.ID,
			Title:       job.Title,
			Description: job.Description,
			Company:     job.Company,
			Location:    job.Location,
			Salary:      job.Salary,
			PostedBy:    job.PostedBy,
			CreatedAt:   job.CreatedAt,
		}
		if job.Poster != nil {
			cj.Poster = &cachedPoster{ID: job.Poster.ID, Name: job.Poster.Name}
		}
		cached = append(cached, cj)
	}

	raw, err := json.Marshal(cached)
	if err != nil {
		return errors.Wrap(err, "failed to encode jobs cache")
	}

	if err := c.client.Set(ctx, jobsKey(gen), raw, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to write jobs cache")
	}

	return nil
}

// Invalidate bumps the generation. Listings under older generations are
// left to expire.
func (c *redisJobCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, jobsGenKey).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate jobs cache")
	}

	return nil
}

type noopJobCache struct{}

// NewNoopJobCache returns a cache that always misses.
func NewNoopJobCache() service.JobCache {
	return noopJobCache{}
}

func (noopJobCache) Generation(context.Context) (int64, error) { return 0, nil }

func (noopJobCache) Get(context.Context, int64) ([]*entity.Job, bool, error) { return nil, false, nil }

func (noopJobCache) Set(context.Context, int64, []*entity.Job) error { return nil }

func (noopJobCache) Invalidate(context.Context) error { return nil }

// Params defines the dependencies for the job cache provider.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewJobCache returns a redis-backed cache when redis.addr is configured,
// otherwise a cache that never hits.
func NewJobCache(params Params) service.JobCache {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, job listing cache disabled")

		return NewNoopJobCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			// The cache is optional: an unreachable redis degrades to misses.
			if err := client.Ping(ctx).Err(); err != nil {
				params.Logger.Warn("Redis ping failed, job listing cache will miss",
					slog.String("addr", cfg.Addr),
					slog.Any("error", err),
				)
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return NewRedisJobCache(client, cfg.JobsTTL)
}
