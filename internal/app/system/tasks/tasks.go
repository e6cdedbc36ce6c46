// internal/app/system/tasks/tasks.go
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a named maintenance task run on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner schedules jobs on a shared cron instance. Each run gets its own
// timeout-bounded context; a failing job is logged and retried on the next
// tick.
type Runner struct {
	cron *cron.Cron
	log  *zap.Logger
}

// NewRunner creates an idle Runner. Call Add for each job, then Start.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{
		cron: cron.New(),
		log:  logger,
	}
}

// Add registers a job with the scheduler.
func (r *Runner) Add(job Job) error {
	spec := fmt.Sprintf("@every %s", job.Interval)
	_, err := r.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := job.Run(ctx); err != nil {
			r.log.Error("maintenance job failed",
				zap.String("job", job.Name),
				zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule job %s: %w", job.Name, err)
	}
	r.log.Info("maintenance job scheduled",
		zap.String("job", job.Name),
		zap.Duration("interval", job.Interval))
	return nil
}

// Start begins running scheduled jobs in the background.
func (r *Runner) Start() {
	r.cron.Start()
}

// Stop halts scheduling and waits for in-flight jobs to finish.
func (r *Runner) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info("maintenance runner stopped")
}
