package service

import (
	"context"

	"jobboard/internal/domain/entity"
)

// JobCache caches the full job listing under a generation number.
// Invalidate advances the generation, so a listing read from the store
// before an invalidation is written under a generation nobody reads.
type JobCache interface {
	// Generation returns the current listing generation.
	Generation(ctx context.Context) (int64, error)

	// Get returns the listing cached for gen; ok is false on a miss.
	Get(ctx context.Context, gen int64) (jobs []*entity.Job, ok bool, err error)

	// Set stores the listing for gen.
	Set(ctx context.Context, gen int64, jobs []*entity.Job) error

	// Invalidate advances the generation.
	Invalidate(ctx context.Context) error
}
