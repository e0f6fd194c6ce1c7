package queue

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Publisher enqueues cleanup events.
type Publisher interface {
	PublishCleanup(ctx context.Context, event MediaCleanupEvent) error
}

// RabbitPublisher publishes persistent messages to a durable queue. The
// connection is opened lazily and reopened after the broker drops it.
type RabbitPublisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
}

func NewRabbitPublisher(url, queueName string) *RabbitPublisher {
	return &RabbitPublisher{url: url, queue: queueName}
}

func (p *RabbitPublisher) connection() (*amqp.Connection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn, nil
	}
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	p.conn = conn
	return conn, nil
}

func (p *RabbitPublisher) PublishCleanup(ctx context.Context, event MediaCleanupEvent) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	conn, err := p.connection()
	if err != nil {
		log.Error().Err(err).Str("fileId", event.FileID).Msg("media cleanup: broker unavailable")
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	log.Info().Str("fileId", event.FileID).Int("attempt", event.Attempt).Str("reason", event.Reason).Msg("media cleanup enqueued")
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	return p.conn.Close()
}

// LogPublisher records cleanup work that cannot be queued because no broker
// is configured; operators can replay it from the logs.
type LogPublisher struct{}

func (LogPublisher) PublishCleanup(_ context.Context, event MediaCleanupEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	log.Warn().Str("fileId", event.FileID).Str("reason", event.Reason).Msg("media cleanup not queued: broker disabled")
	return nil
}
