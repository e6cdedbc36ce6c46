// internal/app/system/workers/reminder_test.go
package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/meethub/internal/app/system/notify"
	"github.com/dalemusser/meethub/internal/domain/models"
)

// stubSource filters a fixed meeting set the same way the store query does:
// start within [from, from+window], inclusive on both ends.
type stubSource struct {
	meetings []models.Meeting
	err      error
}

func (s *stubSource) ListStartingWithin(_ context.Context, from time.Time, window time.Duration) ([]models.Meeting, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Meeting
	until := from.Add(window)
	for _, m := range s.meetings {
		if !m.Start.Before(from) && !m.Start.After(until) {
			out = append(out, m)
		}
	}
	return out, nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (p *capturePublisher) Publish(ev notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *capturePublisher) all() []notify.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notify.Event(nil), p.events...)
}

func meetingAt(id string, start time.Time) models.Meeting {
	return models.Meeting{
		MeetingID:   id,
		OwnerUserID: "user-1",
		Title:       "m-" + id,
		Start:       start,
		End:         start.Add(time.Hour),
	}
}

func TestScanWindowBoundaries(t *testing.T) {
	now := time.Now()
	window := time.Minute

	src := &stubSource{meetings: []models.Meeting{
		meetingAt("at-now", now),
		meetingAt("inside", now.Add(30*time.Second)),
		meetingAt("at-edge", now.Add(window)),
		meetingAt("past", now.Add(-time.Millisecond)),
		meetingAt("beyond", now.Add(window+time.Millisecond)),
	}}
	pub := &capturePublisher{}
	w := NewReminder(src, pub, zap.NewNop(), window)

	if got := w.scanOnce(now); got != 3 {
		t.Fatalf("scanOnce: published %d reminders, want 3", got)
	}

	events := pub.all()
	want := map[string]bool{"at-now": true, "inside": true, "at-edge": true}
	for _, ev := range events {
		if !want[ev.Meeting.ID] {
			t.Errorf("unexpected reminder for %q", ev.Meeting.ID)
		}
		if ev.Kind != notify.KindReminder {
			t.Errorf("kind: got %v, want reminder", ev.Kind)
		}
		if ev.Message != "You have a meeting in 1 minute" {
			t.Errorf("message: got %q", ev.Message)
		}
	}
}

func TestScanSourceFailure(t *testing.T) {
	src := &stubSource{err: errors.New("db down")}
	pub := &capturePublisher{}
	w := NewReminder(src, pub, zap.NewNop(), time.Minute)

	if got := w.scanOnce(time.Now()); got != 0 {
		t.Errorf("scanOnce after source failure: got %d, want 0", got)
	}
	if len(pub.all()) != 0 {
		t.Error("events published despite source failure")
	}
}

func TestStartStop(t *testing.T) {
	src := &stubSource{}
	pub := &capturePublisher{}
	w := NewReminder(src, pub, zap.NewNop(), 10*time.Millisecond)

	w.Start()
	time.Sleep(35 * time.Millisecond)
	w.Stop()

	// Stop must not hang and a second scan cycle must have run cleanly.
	if len(pub.all()) != 0 {
		t.Error("empty source produced events")
	}
}
