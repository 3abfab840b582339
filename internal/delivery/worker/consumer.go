package worker

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"jobboard/config"
	"jobboard/internal/delivery"
	"jobboard/internal/delivery/worker/handler"
	"jobboard/internal/domain/constants"
	"jobboard/internal/errors"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

const (
	queueConsumerTag = "jobboard-worker"
	queuePrefetch    = 10
)

// amqpConsumerChannel is the subset of *amqp.Channel the consumer needs.
type amqpConsumerChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Cancel(consumer string, noWait bool) error
	Close() error
}

// amqpDialer opens a channel and returns it with its owning connection.
type amqpDialer func(url string) (amqpConsumerChannel, io.Closer, error)

func dialRabbitMQ(url string) (amqpConsumerChannel, io.Closer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, nil, errors.Wrap(err, "failed to open RabbitMQ channel")
	}

	return ch, conn, nil
}

// queueConsumer reads job posted events from the queue the rabbitmq
// publisher writes to.
type queueConsumer struct {
	url     string
	queue   string
	logger  *slog.Logger
	handler *handler.QueueHandler
	dial    amqpDialer

	stopping chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// QueueConsumerParams holds dependencies for the RabbitMQ consumer
type QueueConsumerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	Handler *handler.QueueHandler
}

// NewQueueConsumer creates the RabbitMQ consumer. It only connects when
// pubsub.provider is rabbitmq; otherwise Serve returns at once.
func NewQueueConsumer(params QueueConsumerParams) (delivery.Delivery, error) {
	var url, queue string
	if cfg := params.Cfg.PubSub; cfg != nil && cfg.Provider == constants.PubSubProviderRabbitMQ {
		if cfg.RabbitMQURL == "" {
			return nil, errors.New("rabbitmq URL is required for rabbitmq provider")
		}
		url = cfg.RabbitMQURL
		queue = cfg.Queue
		if queue == "" {
			queue = constants.DefaultJobPostedQueue
		}
	}

	c := newQueueConsumer(url, queue, params.Logger, params.Handler, dialRabbitMQ)

	params.Lc.Append(fx.Hook{
		OnStop: c.stop,
	})

	return c, nil
}

func newQueueConsumer(url, queue string, logger *slog.Logger, h *handler.QueueHandler, dial amqpDialer) *queueConsumer {
	return &queueConsumer{
		url:      url,
		queue:    queue,
		logger:   logger,
		handler:  h,
		dial:     dial,
		stopping: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Serve consumes until stopped. A delivery channel closed by the broker is
// reported as an error so the worker exits and gets restarted.
func (c *queueConsumer) Serve(ctx context.Context) error {
	defer close(c.done)

	if c.url == "" {
		c.logger.Info("RabbitMQ consumer disabled, pubsub provider is not rabbitmq")

		return nil
	}

	ch, conn, err := c.dial(c.url)
	if err != nil {
		return errors.Wrap(err, "failed to connect to RabbitMQ")
	}
	defer func() {
		if err := ch.Cancel(queueConsumerTag, false); err != nil {
			c.logger.Debug("RabbitMQ consumer cancel failed", slog.Any("error", err))
		}
		if err := errors.Join(ch.Close(), conn.Close()); err != nil {
			c.logger.Warn("Failed to close RabbitMQ connection", slog.Any("error", err))
		}
	}()

	q, err := ch.QueueDeclare(
		c.queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to declare queue %s", c.queue)
	}

	if err := ch.Qos(queuePrefetch, 0, false); err != nil {
		return errors.Wrap(err, "failed to set RabbitMQ prefetch")
	}

	deliveries, err := ch.Consume(
		q.Name,
		queueConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to consume queue %s", q.Name)
	}

	c.logger.Info("Starting RabbitMQ consumer", slog.String("queue", q.Name))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.stopping:
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.Errorf("RabbitMQ delivery channel for %s closed", q.Name)
			}
			c.settle(ctx, d)
		}
	}
}

func (c *queueConsumer) settle(ctx context.Context, d amqp.Delivery) {
	outcome := c.handler.HandleDelivery(ctx, d)

	var err error
	switch outcome {
	case handler.OutcomeAck:
		err = d.Ack(false)
	case handler.OutcomeRequeue:
		err = d.Nack(false, true)
	default:
		err = d.Nack(false, false)
	}

	if err != nil {
		c.logger.Error("Failed to settle RabbitMQ delivery",
			slog.String("outcome", outcome.String()),
			slog.Uint64("delivery_tag", d.DeliveryTag),
			slog.Any("error", err),
		)
	}
}

// stop waits for the delivery in flight. Unacked prefetched deliveries go
// back to the queue when the channel closes.
func (c *queueConsumer) stop(ctx context.Context) error {
	c.stopOnce.Do(func() {
		c.logger.Info("Stopping RabbitMQ consumer")
		close(c.stopping)
	})

	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}
