package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"dipsport/config"
	"dipsport/shared/constant"
	"dipsport/shared/timezone"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// Publisher sends persistent JSON messages to durable queues through the default exchange.
type Publisher interface {
	PublishJSON(ctx context.Context, queue string, v any) error
	Close() error
}

type publisherImpl struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       *amqp.Channel
	declared map[string]bool
}

func New(config *config.Config) (Publisher, error) {
	conn, err := amqp.Dial(config.RabbitMQ.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("open channel: %w", err)
	}

	log.Info().Msg("Connected to RabbitMQ")

	return &publisherImpl{conn: conn, ch: ch, declared: map[string]bool{}}, nil
}

func (p *publisherImpl) PublishJSON(ctx context.Context, queue string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared[queue] {
		if _, err := p.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}

		p.declared[queue] = true
	}

	err = p.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    timezone.Now(),
		Body:         body,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("Failed to publish message to RabbitMQ")

		return fmt.Errorf("publish to %s: %w", queue, err)
	}

	return nil
}

func (p *publisherImpl) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}

	return nil
}
