package messaging

import (
	"context"
	"testing"

	"job-portal/internal/config"
	"job-portal/internal/events"

	"github.com/google/uuid"
)

func TestNewRabbitMQ_DisabledWithoutURL(t *testing.T) {
	r, err := NewRabbitMQ(config.RabbitMQConfig{Queue: "application_events"}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil publisher without URL")
	}
	if err := r.Publish(context.Background(), events.New(events.TypeJobPosted, uuid.New())); err != nil {
		t.Fatalf("nil publisher should drop events, got %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestPublish_AfterClose(t *testing.T) {
	r := &RabbitMQ{queue: "q"}
	if err := r.Publish(context.Background(), events.Event{}); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
