package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"jobboard/internal/domain/service"
	"jobboard/internal/errors"

	amqp "github.com/rabbitmq/amqp091-go"
)

const rabbitMQPublishTimeout = 5 * time.Second

// amqpChannel is the subset of *amqp.Channel the publisher needs.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// rabbitMQPublisher sends events to a durable queue on the default exchange.
type rabbitMQPublisher struct {
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
	logger  *slog.Logger
}

// NewRabbitMQPublisher dials the broker and declares the queue.
func NewRabbitMQPublisher(url, queue string, logger *slog.Logger) (service.EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, errors.Wrap(err, "failed to open RabbitMQ channel")
	}

	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()

		return nil, errors.Wrapf(err, "failed to declare queue %s", queue)
	}

	logger.Info("RabbitMQ publisher initialized", slog.String("queue", q.Name))

	return &rabbitMQPublisher{conn: conn, channel: ch, queue: q.Name, logger: logger}, nil
}

func (p *rabbitMQPublisher) PublishJobPosted(ctx context.Context, event *service.JobPostedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	headers := amqp.Table{}
	for k, v := range eventAttributes(event) {
		headers[k] = v
	}

	ctx, cancel := context.WithTimeout(ctx, rabbitMQPublishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     event.JobID,
			CorrelationId: event.RequestID,
			Timestamp:     event.CreatedAt,
			Headers:       headers,
			Body:          body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "failed to publish job %s", event.JobID)
	}

	p.logger.Debug("[RabbitMQ] Job posted event published",
		slog.String("queue", p.queue),
		slog.String("job_id", event.JobID),
	)

	return nil
}

func (p *rabbitMQPublisher) Close() error {
	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}

	return errors.Join(errs...)
}
