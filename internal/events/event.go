package events

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeJobPosted                Type = "job.posted"
	TypeApplicationCreated       Type = "application.created"
	TypeApplicationStatusUpdated Type = "application.status_updated"
)

// Event is the payload sent to both the queue and websocket clients.
// Audience limits websocket delivery to those users; empty means every
// connected user. It is not serialized.
type Event struct {
	Type          Type        `json:"type"`
	JobID         uuid.UUID   `json:"job_id"`
	ApplicationID *uuid.UUID  `json:"application_id,omitempty"`
	UserID        *uuid.UUID  `json:"user_id,omitempty"`
	Status        string      `json:"status,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
	Audience      []uuid.UUID `json:"-"`
}

func New(t Type, jobID uuid.UUID) Event {
	return Event{Type: t, JobID: jobID, Timestamp: time.Now().UTC()}
}

func (e Event) WithApplication(id uuid.UUID) Event {
	e.ApplicationID = &id
	return e
}

func (e Event) WithUser(id uuid.UUID) Event {
	e.UserID = &id
	return e
}

func (e Event) WithStatus(status string) Event {
	e.Status = status
	return e
}

func (e Event) WithAudience(ids ...uuid.UUID) Event {
	e.Audience = append([]uuid.UUID(nil), ids...)
	return e
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type PublisherFunc func(ctx context.Context, e Event) error

func (f PublisherFunc) Publish(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Fanout delivers every event to all sinks. A failing sink does not stop the
// others; the joined error is returned.
type Fanout struct {
	sinks  []Publisher
	logger *log.Logger
}

func NewFanout(logger *log.Logger, sinks ...Publisher) *Fanout {
	out := make([]Publisher, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Fanout{sinks: out, logger: logger}
}

func (f *Fanout) Publish(ctx context.Context, e Event) error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publish(ctx, e); err != nil {
			if f.logger != nil {
				f.logger.Printf("[Events] publish failed type=%s job_id=%s err=%v", e.Type, e.JobID, err)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
