// internal/app/system/workers/reminder.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/meethub/internal/app/system/notify"
	"github.com/dalemusser/meethub/internal/domain/models"
)

// MeetingSource yields meetings starting inside a time window. The meetings
// store satisfies it; tests substitute a stub.
type MeetingSource interface {
	ListStartingWithin(ctx context.Context, from time.Time, window time.Duration) ([]models.Meeting, error)
}

// Reminder is a background worker that publishes a reminder event for every
// meeting starting within the next window.
//
// The scan window equals the tick interval and both boundaries are
// inclusive, so a meeting starting exactly on a tick can be picked up by two
// consecutive scans. Reminders are at-least-once; clients tolerate a
// duplicate.
type Reminder struct {
	meetings MeetingSource
	events   notify.Publisher
	log      *zap.Logger
	window   time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewReminder creates a reminder worker that scans every window for
// meetings starting within the next window.
func NewReminder(meetings MeetingSource, events notify.Publisher, logger *zap.Logger, window time.Duration) *Reminder {
	return &Reminder{
		meetings: meetings,
		events:   events,
		log:      logger,
		window:   window,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background scan loop.
func (w *Reminder) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("reminder worker started", zap.Duration("window", w.window))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *Reminder) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("reminder worker stopped")
}

func (w *Reminder) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.window)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.scanOnce(time.Now())
		}
	}
}

// scanOnce publishes a reminder for every meeting starting in
// [now, now+window] and returns how many it published.
func (w *Reminder) scanOnce(now time.Time) int {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	meetings, err := w.meetings.ListStartingWithin(ctx, now, w.window)
	if err != nil {
		w.log.Error("reminder scan failed", zap.Error(err))
		return 0
	}

	for _, m := range meetings {
		w.events.Publish(notify.Reminder(m.Snapshot(), w.window))
	}

	if len(meetings) > 0 {
		w.log.Info("published reminders", zap.Int("count", len(meetings)))
	}
	return len(meetings)
}
