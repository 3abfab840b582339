package handler

import (
	"context"
	"encoding/json"
	"log/slog"

	deliverycontext "jobboard/internal/delivery/context"
	"jobboard/internal/domain/service"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

// Outcome tells the consumer how to settle a queued delivery.
type Outcome int

const (
	// OutcomeAck removes the delivery from the queue.
	OutcomeAck Outcome = iota
	// OutcomeRequeue hands the delivery back to the broker for another attempt.
	OutcomeRequeue
	// OutcomeDiscard rejects a delivery that can never be processed.
	OutcomeDiscard
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAck:
		return "ack"
	case OutcomeRequeue:
		return "requeue"
	case OutcomeDiscard:
		return "discard"
	default:
		return "unknown"
	}
}

// QueueHandler consumes job posted events read from a RabbitMQ queue.
type QueueHandler struct {
	logger *slog.Logger
	cache  service.JobCache
}

// QueueHandlerParams holds dependencies for the QueueHandler
type QueueHandlerParams struct {
	fx.In

	Logger *slog.Logger
	Cache  service.JobCache
}

// NewQueueHandler creates a new RabbitMQ delivery handler
func NewQueueHandler(params QueueHandlerParams) *QueueHandler {
	return &QueueHandler{
		logger: params.Logger,
		cache:  params.Cache,
	}
}

// HandleDelivery processes one delivery and decides how it is settled.
// Malformed deliveries are discarded, retryable failures requeued.
func (h *QueueHandler) HandleDelivery(ctx context.Context, d amqp.Delivery) Outcome {
	var event service.JobPostedEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse queued job posted event",
			slog.String("message_id", d.MessageId),
			slog.Any("error", err),
		)

		return OutcomeDiscard
	}

	if _, err := uuid.Parse(event.JobID); err != nil {
		h.logger.Error("[Worker] Queued job posted event without a valid job id",
			slog.String("job_id", event.JobID),
		)

		return OutcomeDiscard
	}

	requestID := deliveryRequestID(d, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing job posted event",
		slog.String("job_id", event.JobID),
		slog.String("posted_by", event.PostedBy),
		slog.Bool("redelivered", d.Redelivered),
	)

	if err := processJobPosted(ctx, h.cache, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process job posted event",
			slog.String("job_id", event.JobID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return OutcomeRequeue
		}
	}

	return OutcomeAck
}

// deliveryRequestID prefers the request_id header, then the correlation id,
// then the payload, and finally generates one.
func deliveryRequestID(d amqp.Delivery, event *service.JobPostedEvent) string {
	if requestID, ok := d.Headers["request_id"].(string); ok && requestID != "" {
		return requestID
	}

	if d.CorrelationId != "" {
		return d.CorrelationId
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	return uuid.New().String()
}
