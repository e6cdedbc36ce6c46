// internal/app/system/mailer/sink.go
package mailer

import (
	"context"

	"github.com/dalemusser/meethub/internal/app/system/notify"
	"go.uber.org/zap"
)

// Sink adapts the mail sender to the dispatcher's email slot. Per the
// notification contract it never reports failure upward; a dead SMTP server
// degrades silently behind a log line.
type Sink struct {
	sender Sender
	log    *zap.Logger
}

// NewSink wraps sender for the dispatcher.
func NewSink(sender Sender, logger *zap.Logger) *Sink {
	return &Sink{sender: sender, log: logger}
}

// Deliver mails the meeting owner about the event.
func (s *Sink) Deliver(ctx context.Context, ev notify.Event) error {
	if ev.Meeting.OwnerEmail == "" {
		s.log.Warn("meeting event without owner email, skipping mail",
			zap.String("meeting_id", ev.Meeting.ID))
		return nil
	}
	if err := s.sender.Send(ctx, BuildMeetingEmail(ev)); err != nil {
		s.log.Error("meeting email failed",
			zap.String("to", ev.Meeting.OwnerEmail),
			zap.Stringer("kind", ev.Kind),
			zap.Error(err))
	}
	return nil
}
