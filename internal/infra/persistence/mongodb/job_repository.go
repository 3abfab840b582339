package mongodb

import (
	"context"
	"time"

	"jobboard/internal/domain/entity"
	"jobboard/internal/domain/repository"
	"jobboard/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type jobRepository struct {
	col *mongo.Collection
}

// NewJobRepository returns a JobRepository backed by the jobs collection.
func NewJobRepository(db *mongo.Database) repository.JobRepository {
	return &jobRepository{col: db.Collection(jobsCollection)}
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
		job.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	if _, err := repo.col.InsertOne(ctx, fromJobEntity(job)); err != nil {
		return errors.Wrap(err, "failed to insert job")
	}

	return nil
}

// listPipeline orders jobs newest first and joins each with its poster's
// id and name. Jobs whose poster no longer resolves keep a nil poster.
func listPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "postedBy"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "poster"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$poster"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "poster.email", Value: 0},
			{Key: "poster.password", Value: 0},
		}}},
	}
}

func (repo *jobRepository) List(ctx context.Context) ([]*entity.Job, error) {
	cur, err := repo.col.Aggregate(ctx, listPipeline())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}
	defer cur.Close(ctx)

	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode jobs")
	}

	jobs := make([]*entity.Job, 0, len(docs))
	for i := range docs {
		job, err := docs[i].toEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}
