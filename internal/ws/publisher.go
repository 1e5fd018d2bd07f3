package ws

import (
	"context"
	"encoding/json"

	"job-portal/internal/events"
)

// Publisher delivers events to the connected websocket clients in the
// event's audience.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) Publish(_ context.Context, e events.Event) error {
	if p == nil || p.hub == nil {
		return nil
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	p.hub.Broadcast(b, e.Audience...)
	return nil
}
