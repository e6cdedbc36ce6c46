// internal/app/system/pushhub/sink.go
package pushhub

import (
	"context"

	"github.com/dalemusser/meethub/internal/app/system/notify"
	"github.com/dalemusser/meethub/internal/domain/models"
)

// Notification is the frame delivered to push clients.
type Notification struct {
	Meeting models.MeetingSnapshot `json:"meeting"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Type    string                 `json:"type"`
}

// Sink adapts the hub to the dispatcher's sink slot: each event is routed
// to the meeting owner's authenticated sessions.
type Sink struct {
	hub *Hub
}

// NewSink wraps hub for the dispatcher.
func NewSink(hub *Hub) *Sink {
	return &Sink{hub: hub}
}

// Deliver routes the event by owner user id. A user with no live sessions
// gets nothing; that is a silent drop, not a failure.
func (s *Sink) Deliver(ctx context.Context, ev notify.Event) error {
	s.hub.Route(ev.Meeting.OwnerUserID, Notification{
		Meeting: ev.Meeting,
		Title:   ev.Title,
		Message: ev.Message,
		Type:    ev.Kind.String(),
	})
	return nil
}
