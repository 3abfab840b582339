package mongodb

import (
	"testing"
	"time"

	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id and normalizes email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewUserRepository(mt.DB)
		user := &entity.User{Name: "A", Email: "  A@Example.com ", PasswordHash: "digest", Role: entity.RoleEmployer}

		require.NoError(mt, repo.Create(mt.Context(), user))
		assert.NotEqual(mt, uuid.Nil, user.ID)
		assert.False(mt, user.CreatedAt.IsZero())
		assert.Equal(mt, "a@example.com", user.Email)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: uniq_email",
		}))

		repo := NewUserRepository(mt.DB)
		err := repo.Create(mt.Context(), &entity.User{Name: "A", Email: "a@example.com", Role: entity.RoleJobSeeker})

		assert.ErrorIs(mt, err, domainerrors.ErrUserAlreadyExists)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		id := uuid.Must(uuid.NewV7())
		createdAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		ns := mt.DB.Name() + "." + usersCollection

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id.String()},
			{Key: "name", Value: "A"},
			{Key: "email", Value: "a@example.com"},
			{Key: "password", Value: "digest"},
			{Key: "userType", Value: "employer"},
			{Key: "createdAt", Value: createdAt},
		}))

		repo := NewUserRepository(mt.DB)
		user, err := repo.FindByEmail(mt.Context(), "A@example.com")

		require.NoError(mt, err)
		assert.Equal(mt, id, user.ID)
		assert.Equal(mt, "A", user.Name)
		assert.Equal(mt, "digest", user.PasswordHash)
		assert.Equal(mt, entity.RoleEmployer, user.Role)
		assert.True(mt, createdAt.Equal(user.CreatedAt))
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + usersCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewUserRepository(mt.DB)
		_, err := repo.FindByID(mt.Context(), uuid.Must(uuid.NewV7()))

		assert.ErrorIs(mt, err, repository.ErrUserNotFound)
	})
}

func TestJobRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id and createdAt", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewJobRepository(mt.DB)
		job := &entity.Job{Title: "Go dev", Company: "Acme", PostedBy: uuid.Must(uuid.NewV7())}

		require.NoError(mt, repo.Create(mt.Context(), job))
		assert.NotEqual(mt, uuid.Nil, job.ID)
		assert.False(mt, job.CreatedAt.IsZero())
	})

	mt.Run("list resolves posters", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + jobsCollection
		posterID := uuid.Must(uuid.NewV7())
		newer := uuid.Must(uuid.NewV7())
		orphan := uuid.Must(uuid.NewV7())
		now := time.Now().UTC().Truncate(time.Millisecond)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: newer.String()},
				{Key: "title", Value: "Go dev"},
				{Key: "description", Value: "write Go"},
				{Key: "company", Value: "Acme"},
				{Key: "location", Value: "Remote"},
				{Key: "salary", Value: "100k"},
				{Key: "postedBy", Value: posterID.String()},
				{Key: "createdAt", Value: now},
				{Key: "poster", Value: bson.D{
					{Key: "_id", Value: posterID.String()},
					{Key: "name", Value: "A"},
					{Key: "userType", Value: "employer"},
				}},
			},
			bson.D{
				{Key: "_id", Value: orphan.String()},
				{Key: "title", Value: "Old"},
				{Key: "description", Value: "gone"},
				{Key: "company", Value: "Gone Inc"},
				{Key: "location", Value: "Nowhere"},
				{Key: "postedBy", Value: uuid.Must(uuid.NewV7()).String()},
				{Key: "createdAt", Value: now.Add(-time.Hour)},
			},
		))

		repo := NewJobRepository(mt.DB)
		jobs, err := repo.List(mt.Context())

		require.NoError(mt, err)
		require.Len(mt, jobs, 2)

		assert.Equal(mt, newer, jobs[0].ID)
		assert.Equal(mt, "100k", jobs[0].Salary)
		require.NotNil(mt, jobs[0].Poster)
		assert.Equal(mt, posterID, jobs[0].Poster.ID)
		assert.Equal(mt, "A", jobs[0].Poster.Name)

		assert.Equal(mt, orphan, jobs[1].ID)
		assert.Empty(mt, jobs[1].Salary)
		assert.Nil(mt, jobs[1].Poster)
	})

	mt.Run("list empty", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + jobsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		jobs, err := NewJobRepository(mt.DB).List(mt.Context())

		require.NoError(mt, err)
		assert.Empty(mt, jobs)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates both indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		require.NoError(mt, EnsureIndexes(mt.Context(), mt.DB))
	})

	mt.Run("propagates failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index options conflict",
		}))

		assert.Error(mt, EnsureIndexes(mt.Context(), mt.DB))
	})
}

func TestListPipelineSortsNewestFirst(t *testing.T) {
	pipeline := listPipeline()
	require.NotEmpty(t, pipeline)

	assert.Equal(t, "$sort", pipeline[0][0].Key)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, pipeline[0][0].Value)
}
