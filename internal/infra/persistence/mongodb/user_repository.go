package mongodb

import (
	"context"
	"time"

	"jobboard/internal/domain/entity"
	domainerrors "jobboard/internal/domain/errors"
	"jobboard/internal/domain/repository"
	"jobboard/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepository struct {
	col *mongo.Collection
}

// NewUserRepository returns a UserRepository backed by the users collection.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{col: db.Collection(usersCollection)}
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()})
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"email": entity.NormalizeEmail(email)})
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDocument
	if err := repo.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return doc.toEntity()
}

// Create inserts the user, assigning an ID and creation time when unset.
// The unique email index turns a concurrent duplicate into ErrUserAlreadyExists.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "failed to generate user id")
		}
		user.ID = id
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	user.Email = entity.NormalizeEmail(user.Email)

	if _, err := repo.col.InsertOne(ctx, fromUserEntity(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrUserAlreadyExists
		}

		return errors.Wrap(err, "failed to insert user")
	}

	return nil
}
