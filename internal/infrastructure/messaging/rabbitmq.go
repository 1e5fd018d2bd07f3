package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"job-portal/internal/config"
	"job-portal/internal/events"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrClosed = errors.New("rabbitmq publisher closed")

// RabbitMQ publishes events as persistent JSON messages to a durable queue
// through the default exchange.
type RabbitMQ struct {
	conn   *amqp.Connection
	logger *log.Logger
	queue  string

	mu      sync.Mutex
	channel *amqp.Channel
}

// NewRabbitMQ returns (nil, nil) when no URL is configured.
func NewRabbitMQ(cfg config.RabbitMQConfig, logger *log.Logger) (*RabbitMQ, error) {
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		if logger != nil {
			logger.Printf("[Messaging] RABBITMQ_URL not set, events stay in-process")
		}
		return nil, nil
	}
	queue := strings.TrimSpace(cfg.Queue)
	if queue == "" {
		queue = "application_events"
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare queue=%s: %w", queue, err)
	}

	if logger != nil {
		logger.Printf("[Messaging] RabbitMQ connected queue=%s", queue)
	}
	return &RabbitMQ{conn: conn, channel: ch, queue: queue, logger: logger}, nil
}

func (r *RabbitMQ) Publish(ctx context.Context, e events.Event) error {
	if r == nil {
		return nil
	}
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.channel == nil {
		return ErrClosed
	}

	return r.channel.PublishWithContext(
		ctx,
		"",      // exchange
		r.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         string(e.Type),
			Timestamp:    e.Timestamp,
			Body:         body,
		},
	)
}

func (r *RabbitMQ) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	ch := r.channel
	r.channel = nil
	r.mu.Unlock()

	var errs []error
	if ch != nil {
		errs = append(errs, ch.Close())
	}
	if r.conn != nil {
		errs = append(errs, r.conn.Close())
	}
	return errors.Join(errs...)
}
