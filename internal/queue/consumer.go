package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Handler performs the cleanup for one event.
type Handler func(ctx context.Context, event MediaCleanupEvent) error

type Consumer struct {
	url         string
	queue       string
	handler     Handler
	maxAttempts int
	retryDelay  time.Duration
	prefetch    int
}

func NewConsumer(url, queueName string, maxAttempts int, handler Handler) *Consumer {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Consumer{
		url:         url,
		queue:       queueName,
		handler:     handler,
		maxAttempts: maxAttempts,
		retryDelay:  2 * time.Second,
		prefetch:    50,
	}
}

// Run keeps a consumer attached to the queue until ctx is cancelled,
// reconnecting with exponential backoff.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.Warn().Err(err).Dur("retryIn", backoff).Msg("media-janitor: failed to dial broker")
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Warn().Err(err).Msg("media-janitor: consume loop ended, reconnecting")
		if !sleep(ctx, c.retryDelay) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		log.Warn().Err(err).Msg("media-janitor: set QoS failed")
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			c.deliver(ctx, ch, d)
		}
	}
}

func (c *Consumer) deliver(ctx context.Context, ch *amqp.Channel, d amqp.Delivery) {
	outcome := c.process(ctx, d.Body)
	if outcome.retry != nil {
		body, err := encodeEvent(*outcome.retry)
		if err == nil {
			err = ch.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now().UTC(),
				Body:         body,
			})
		}
		if err != nil {
			log.Error().Err(err).Msg("media-janitor: requeue failed, returning message to broker")
			_ = d.Nack(false, true)
			return
		}
	}
	if outcome.ack {
		_ = d.Ack(false)
		return
	}
	_ = d.Nack(false, false)
}

type outcome struct {
	ack   bool
	retry *MediaCleanupEvent
}

// process runs the handler for one message body. Malformed messages and
// events out of attempts are rejected; other failures are republished with
// the attempt counter bumped.
func (c *Consumer) process(ctx context.Context, body []byte) outcome {
	ev, err := decodeEvent(body)
	if err != nil {
		log.Error().Err(err).Msg("media-janitor: dropping malformed message")
		return outcome{}
	}

	if err := c.handler(ctx, ev); err != nil {
		if ev.Attempt >= c.maxAttempts {
			log.Error().Err(err).Str("fileId", ev.FileID).Int("attempt", ev.Attempt).Msg("media-janitor: giving up")
			return outcome{}
		}
		log.Warn().Err(err).Str("fileId", ev.FileID).Int("attempt", ev.Attempt).Msg("media-janitor: cleanup failed, retrying")
		next := ev
		next.Attempt++
		return outcome{ack: true, retry: &next}
	}
	log.Info().Str("fileId", ev.FileID).Msg("media-janitor: file removed")
	return outcome{ack: true}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
