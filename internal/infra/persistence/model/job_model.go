package model

import (
	"time"

	"github.com/google/uuid"
)

// JobModel mirrors the 'jobs' table. PostedBy is not a foreign key: a job
// keeps pointing at its poster's ID even when that user cannot be resolved.
type JobModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text;not null"`
	Company     string    `gorm:"type:varchar(255);not null"`
	Location    string    `gorm:"type:varchar(255);not null"`
	Salary      *string   `gorm:"type:varchar(100)"`
	PostedBy    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"index:idx_jobs_created_at,sort:desc"`

	Poster *UserModel `gorm:"foreignKey:PostedBy;references:ID"`
}

// TableName explicitly sets the table name for GORM.
func (JobModel) TableName() string {
	return "jobs"
}
