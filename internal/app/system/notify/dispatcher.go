// internal/app/system/notify/dispatcher.go

// Package notify is the in-process fan-out bus for meeting notifications.
//
// The subscriber set is fixed and enumerated: an email sink and a push sink.
// Delivery is best-effort, at-most-attempted-once per sink per event, with
// no retry and no dead-lettering. A sink failure is logged and never reaches
// the caller that produced the event.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Sink is a terminal consumer of notification events. Returned errors are
// logged by the dispatcher and go no further.
type Sink interface {
	Deliver(ctx context.Context, ev Event) error
}

// Publisher is the event-submission entry point the store and the reminder
// scanner depend on.
type Publisher interface {
	Publish(ev Event)
}

// Dispatcher fans each published event out to the email and push sinks.
//
// A single dispatch goroutine drains the queue, so events are delivered in
// the order they were produced; the two sinks for one event run concurrently
// with each other and must not share mutable state.
type Dispatcher struct {
	email Sink
	push  Sink
	log   *zap.Logger

	queue  chan Event
	stopCh chan struct{}
	wg     sync.WaitGroup
}

const queueDepth = 256

// NewDispatcher wires the two sink slots. Call Start before publishing.
func NewDispatcher(email, push Sink, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		email:  email,
		push:   push,
		log:    logger,
		queue:  make(chan Event, queueDepth),
		stopCh: make(chan struct{}),
	}
}

// Start begins the dispatch loop.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go d.run()
	d.log.Info("notification dispatcher started")
}

// Stop shuts the loop down after the event in flight, if any, finishes.
// Queued events that were not yet picked up are dropped.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	d.wg.Wait()
	d.log.Info("notification dispatcher stopped")
}

// Publish enqueues an event and returns immediately. When the queue is full
// the event is dropped; the mutation that produced it has already succeeded
// and must not be held up or failed by notification delivery.
func (d *Dispatcher) Publish(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			zap.Stringer("kind", ev.Kind),
			zap.String("meeting_id", ev.Meeting.ID))
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case <-d.stopCh:
			return
		case ev := <-d.queue:
			d.dispatch(ev)
		}
	}
}

// dispatch delivers one event to both sinks concurrently and waits for both
// before the next event, which is what preserves per-meeting ordering.
func (d *Dispatcher) dispatch(ev Event) {
	ctx := context.Background()

	var wg sync.WaitGroup
	for name, sink := range map[string]Sink{"email": d.email, "push": d.push} {
		wg.Add(1)
		go func(name string, sink Sink) {
			defer wg.Done()
			if err := sink.Deliver(ctx, ev); err != nil {
				d.log.Error("notification delivery failed",
					zap.String("sink", name),
					zap.Stringer("kind", ev.Kind),
					zap.String("meeting_id", ev.Meeting.ID),
					zap.Error(err))
			}
		}(name, sink)
	}
	wg.Wait()
}
