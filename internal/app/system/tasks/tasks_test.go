// internal/app/system/tasks/tasks_test.go
package tasks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestRunnerRunsJob(t *testing.T) {
	r := NewRunner(zap.NewNop())

	var runs atomic.Int32
	err := r.Add(Job{
		Name:     "counter",
		Interval: 50 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	r.Start()
	time.Sleep(180 * time.Millisecond)
	r.Stop()

	if got := runs.Load(); got < 2 {
		t.Errorf("job ran %d times, want at least 2", got)
	}
}

func TestRunnerSurvivesFailingJob(t *testing.T) {
	r := NewRunner(zap.NewNop())

	var failing, healthy atomic.Int32
	_ = r.Add(Job{
		Name:     "failing",
		Interval: 50 * time.Millisecond,
		Run: func(ctx context.Context) error {
			failing.Add(1)
			return errors.New("boom")
		},
	})
	_ = r.Add(Job{
		Name:     "healthy",
		Interval: 50 * time.Millisecond,
		Run: func(ctx context.Context) error {
			healthy.Add(1)
			return nil
		},
	})

	r.Start()
	time.Sleep(180 * time.Millisecond)
	r.Stop()

	if failing.Load() < 2 {
		t.Errorf("failing job was not retried: %d runs", failing.Load())
	}
	if healthy.Load() < 2 {
		t.Errorf("healthy job starved by failing one: %d runs", healthy.Load())
	}
}

func TestStopWaitsForInFlightJob(t *testing.T) {
	r := NewRunner(zap.NewNop())

	done := make(chan struct{})
	var once sync.Once
	_ = r.Add(Job{
		Name:     "slow",
		Interval: 20 * time.Millisecond,
		Run: func(ctx context.Context) error {
			time.Sleep(60 * time.Millisecond)
			once.Do(func() { close(done) })
			return nil
		},
	})

	r.Start()
	time.Sleep(30 * time.Millisecond) // let one run begin
	r.Stop()

	select {
	case <-done:
	default:
		t.Error("Stop returned before the in-flight job finished")
	}
}
