// Package constants holds identifiers shared across layers.
package constants

// Event publisher providers selectable through pubsub.provider.
const (
	PubSubProviderLocal    = "local"
	PubSubProviderGoogle   = "google"
	PubSubProviderRabbitMQ = "rabbitmq"
)

// DefaultJobPostedQueue is used when pubsub.queue is empty.
const DefaultJobPostedQueue = "job_posted"
