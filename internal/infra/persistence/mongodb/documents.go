package mongodb

import (
	"time"

	"jobboard/internal/domain/entity"
	"jobboard/internal/errors"

	"github.com/google/uuid"
)

type userDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	UserType  string    `bson:"userType"`
	CreatedAt time.Time `bson:"createdAt"`
}

type jobDocument struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Company     string    `bson:"company"`
	Location    string    `bson:"location"`
	Salary      string    `bson:"salary,omitempty"`
	PostedBy    string    `bson:"postedBy"`
	CreatedAt   time.Time `bson:"createdAt"`

	// Poster is only populated by the listing pipeline.
	Poster *posterDocument `bson:"poster,omitempty"`
}

type posterDocument struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func fromUserEntity(user *entity.User) *userDocument {
	return &userDocument{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.PasswordHash,
		UserType:  user.Role.String(),
		CreatedAt: user.CreatedAt,
	}
}

func (d *userDocument) toEntity() (*entity.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid user id %q", d.ID)
	}

	return &entity.User{
		ID:           id,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         entity.Role(d.UserType),
		CreatedAt:    d.CreatedAt,
	}, nil
}

func fromJobEntity(job *entity.Job) *jobDocument {
	return &jobDocument{
		ID:          job.ID.String(),
		Title:       job.Title,
		Description: job.Description,
		Company:     job.Company,
		Location:    job.Location,
		Salary:      job.Salary,
		PostedBy:    job.PostedBy.String(),
		CreatedAt:   job.CreatedAt,
	}
}

func (d *jobDocument) toEntity() (*entity.Job, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid job id %q", d.ID)
	}

	postedBy, err := uuid.Parse(d.PostedBy)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid postedBy %q on job %s", d.PostedBy, d.ID)
	}

	job := &entity.Job{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Company:     d.Company,
		Location:    d.Location,
		Salary:      d.Salary,
		PostedBy:    postedBy,
		CreatedAt:   d.CreatedAt,
	}

	if d.Poster != nil && d.Poster.ID != "" {
		posterID, err := uuid.Parse(d.Poster.ID)
		if err == nil {
			job.Poster = &entity.Poster{ID: posterID, Name: d.Poster.Name}
		}
	}

	return job, nil
}
