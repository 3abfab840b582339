package service

import (
	"context"
	"time"
)

// JobPostedEvent is emitted after a job is persisted.
type JobPostedEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	JobID     string    `json:"job_id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Location  string    `json:"location"`
	PostedBy  string    `json:"posted_by"`
	CreatedAt time.Time `json:"created_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishJobPosted publishes a job posted event for downstream consumers
	PublishJobPosted(ctx context.Context, event *JobPostedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
