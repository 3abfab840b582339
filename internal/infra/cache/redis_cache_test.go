package cache

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"jobboard/config"
	"jobboard/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

// fakeRedis implements the handful of commands the cache issues.
type fakeRedis struct {
	redis.Cmdable

	data    map[string][]byte
	ttls    map[string]time.Duration
	failure error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	switch v, ok := f.data[key]; {
	case f.failure != nil:
		cmd.SetErr(f.failure)
	case ok:
		cmd.SetVal(string(v))
	default:
		cmd.SetErr(redis.Nil)
	}

	return cmd
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	if f.failure != nil {
		cmd.SetErr(f.failure)

		return cmd
	}
	f.data[key] = value.([]byte)
	f.ttls[key] = expiration
	cmd.SetVal("OK")

	return cmd
}

func (f *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "incr", key)
	if f.failure != nil {
		cmd.SetErr(f.failure)

		return cmd
	}
	n, _ := strconv.ParseInt(string(f.data[key]), 10, 64)
	n++
	f.data[key] = []byte(strconv.FormatInt(n, 10))
	cmd.SetVal(n)

	return cmd
}

func TestRedisJobCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	c := NewRedisJobCache(client, 30*time.Second)

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	_, ok, err := c.Get(ctx, gen)
	require.NoError(t, err)
	assert.False(t, ok)

	posterID := uuid.New()
	jobs := []*entity.Job{
		{
			ID:        uuid.New(),
			Title:     "Go dev",
			Company:   "Acme",
			Salary:    "100k",
			PostedBy:  posterID,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Poster:    &entity.Poster{ID: posterID, Name: "A"},
		},
		{ID: uuid.New(), Title: "orphan", PostedBy: uuid.New(), CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, c.Set(ctx, gen, jobs))
	assert.Equal(t, 30*time.Second, client.ttls[jobsKey(gen)])

	got, ok, err := c.Get(ctx, gen)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, jobs, got)

	require.NoError(t, c.Invalidate(ctx))
	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)

	_, ok, err = c.Get(ctx, next)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisJobCache_SetUnderStaleGenerationIsNeverServed(t *testing.T) {
	ctx := context.Background()
	c := NewRedisJobCache(newFakeRedis(), time.Minute)

	before, err := c.Generation(ctx)
	require.NoError(t, err)

	// A job is posted between the store read and the cache write.
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, before, []*entity.Job{}))

	current, err := c.Generation(ctx)
	require.NoError(t, err)
	_, ok, err := c.Get(ctx, current)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisJobCache_Errors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	c := NewRedisJobCache(client, time.Second)

	client.data[jobsKey(0)] = []byte("not json")
	_, ok, err := c.Get(ctx, 0)
	assert.Error(t, err)
	assert.False(t, ok)

	client.data[jobsGenKey] = []byte("seven")
	_, err = c.Generation(ctx)
	assert.Error(t, err)

	client.failure = errors.New("connection refused")
	_, _, err = c.Get(ctx, 0)
	assert.ErrorContains(t, err, "connection refused")
	_, err = c.Generation(ctx)
	assert.ErrorContains(t, err, "connection refused")
	assert.Error(t, c.Set(ctx, 0, nil))
	assert.Error(t, c.Invalidate(ctx))
}

func TestNoopJobCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoopJobCache()

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, gen, []*entity.Job{{Title: "x"}}))
	_, ok, err := c.Get(ctx, gen)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestNewJobCache_SelectsImplementation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	c := NewJobCache(Params{Lifecycle: fxtest.NewLifecycle(t), Config: cfg, Logger: logger})
	assert.IsType(t, noopJobCache{}, c)

	cfg.Redis = &config.RedisConfig{Addr: "localhost:6379", JobsTTL: time.Minute}
	c = NewJobCache(Params{Lifecycle: fxtest.NewLifecycle(t), Config: cfg, Logger: logger})
	assert.IsType(t, &redisJobCache{}, c)
}
