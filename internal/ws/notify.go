package ws

import (
	"context"
	"encoding/json"
	"errors"

	"resume-coach/internal/infrastructure/events"
)

var errEventDropped = errors.New("ws event dropped")

// Publisher forwards domain events to the owner's WebSocket clients.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) Publish(_ context.Context, evt events.Event) error {
	if p == nil || p.hub == nil {
		return nil
	}
	if p.hub.ClientCount() == 0 {
		return nil
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	if !p.hub.Send(evt.UserID, b) {
		return errEventDropped
	}
	return nil
}

var _ events.Publisher = (*Publisher)(nil)
