package worker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"jobboard/config"
	"jobboard/internal/delivery/worker/handler"
	"jobboard/internal/domain/service"
	"jobboard/internal/errors"
	servicemocks "jobboard/internal/mocks/service"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type settlement struct {
	tag     uint64
	outcome string
}

// fakeChannel stands in for *amqp.Channel and acknowledges its own deliveries.
type fakeChannel struct {
	deliveries chan amqp.Delivery
	settled    chan settlement

	mu       sync.Mutex
	declared string
	consumer string
	closed   bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{
		deliveries: make(chan amqp.Delivery),
		settled:    make(chan settlement, 10),
	}
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declared = name

	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) Qos(int, int, bool) error { return nil }

func (f *fakeChannel) Consume(_, consumer string, _, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.consumer = consumer

	return f.deliveries, nil
}

func (f *fakeChannel) Cancel(string, bool) error { return nil }

func (f *fakeChannel) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true

	return nil
}

func (f *fakeChannel) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

func (f *fakeChannel) Ack(tag uint64, _ bool) error {
	f.settled <- settlement{tag: tag, outcome: "ack"}

	return nil
}

func (f *fakeChannel) Nack(tag uint64, _ bool, requeue bool) error {
	outcome := "discard"
	if requeue {
		outcome = "requeue"
	}
	f.settled <- settlement{tag: tag, outcome: outcome}

	return nil
}

func (f *fakeChannel) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

type fakeConn struct{ closed bool }

func (c *fakeConn) Close() error {
	c.closed = true

	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (f *fakeChannel) delivery(t *testing.T, tag uint64, body any) amqp.Delivery {
	t.Helper()

	raw, ok := body.([]byte)
	if !ok {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}

	return amqp.Delivery{Acknowledger: f, DeliveryTag: tag, Body: raw}
}

func nextSettlement(t *testing.T, ch *fakeChannel) settlement {
	t.Helper()

	select {
	case s := <-ch.settled:
		return s
	case <-time.After(2 * time.Second):
		require.FailNow(t, "delivery was not settled")

		return settlement{}
	}
}

func TestQueueConsumer_SettlesDeliveries(t *testing.T) {
	cache := servicemocks.NewMockJobCache(t)
	cache.EXPECT().Invalidate(mock.Anything).Return(nil).Once()
	cache.EXPECT().Invalidate(mock.Anything).Return(errors.New("redis down")).Once()

	ch := newFakeChannel()
	conn := &fakeConn{}
	var dialed string
	c := newQueueConsumer("amqp://broker", "job_posted", discardLogger(),
		handler.NewQueueHandler(handler.QueueHandlerParams{Logger: discardLogger(), Cache: cache}),
		func(url string) (amqpConsumerChannel, io.Closer, error) {
			dialed = url

			return ch, conn, nil
		},
	)

	served := make(chan error, 1)
	go func() { served <- c.Serve(context.Background()) }()

	event := &service.JobPostedEvent{JobID: uuid.NewString(), PostedBy: uuid.NewString()}
	ch.deliveries <- ch.delivery(t, 1, event)
	assert.Equal(t, settlement{tag: 1, outcome: "ack"}, nextSettlement(t, ch))

	ch.deliveries <- ch.delivery(t, 2, []byte("not json"))
	assert.Equal(t, settlement{tag: 2, outcome: "discard"}, nextSettlement(t, ch))

	ch.deliveries <- ch.delivery(t, 3, event)
	assert.Equal(t, settlement{tag: 3, outcome: "requeue"}, nextSettlement(t, ch))

	require.NoError(t, c.stop(context.Background()))
	require.NoError(t, <-served)

	assert.Equal(t, "amqp://broker", dialed)
	assert.Equal(t, "job_posted", ch.declared)
	assert.Equal(t, queueConsumerTag, ch.consumer)
	assert.True(t, ch.isClosed())
	assert.True(t, conn.closed)
}

func TestQueueConsumer_BrokerClosingDeliveriesIsAnError(t *testing.T) {
	ch := newFakeChannel()
	c := newQueueConsumer("amqp://broker", "job_posted", discardLogger(),
		handler.NewQueueHandler(handler.QueueHandlerParams{Logger: discardLogger(), Cache: servicemocks.NewMockJobCache(t)}),
		func(string) (amqpConsumerChannel, io.Closer, error) { return ch, &fakeConn{}, nil },
	)

	served := make(chan error, 1)
	go func() { served <- c.Serve(context.Background()) }()

	close(ch.deliveries)

	select {
	case err := <-served:
		assert.ErrorContains(t, err, "delivery channel")
	case <-time.After(2 * time.Second):
		require.FailNow(t, "consumer did not return")
	}
	assert.True(t, ch.isClosed())
}

func TestQueueConsumer_DialFailure(t *testing.T) {
	c := newQueueConsumer("amqp://broker", "job_posted", discardLogger(), nil,
		func(string) (amqpConsumerChannel, io.Closer, error) {
			return nil, nil, errors.New("connection refused")
		},
	)

	err := c.Serve(context.Background())

	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, c.stop(context.Background()))
}

func TestNewQueueConsumer_Configuration(t *testing.T) {
	params := func(pubsub *config.PubSubConfig) QueueConsumerParams {
		return QueueConsumerParams{
			Lc:     fxtest.NewLifecycle(t),
			Cfg:    &config.Config{PubSub: pubsub},
			Logger: discardLogger(),
		}
	}

	t.Run("other provider is disabled", func(t *testing.T) {
		d, err := NewQueueConsumer(params(&config.PubSubConfig{Provider: "google"}))
		require.NoError(t, err)

		assert.NoError(t, d.Serve(context.Background()))
		assert.NoError(t, d.(*queueConsumer).stop(context.Background()))
	})

	t.Run("rabbitmq requires a url", func(t *testing.T) {
		_, err := NewQueueConsumer(params(&config.PubSubConfig{Provider: "rabbitmq"}))

		assert.Error(t, err)
	})

	t.Run("queue defaults", func(t *testing.T) {
		d, err := NewQueueConsumer(params(&config.PubSubConfig{Provider: "rabbitmq", RabbitMQURL: "amqp://broker"}))
		require.NoError(t, err)

		assert.Equal(t, "job_posted", d.(*queueConsumer).queue)
	})
}
