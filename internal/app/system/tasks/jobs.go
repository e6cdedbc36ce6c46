// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"

	userstore "github.com/dalemusser/meethub/internal/app/store/users"
	"github.com/dalemusser/meethub/internal/app/system/pushhub"
)

// ResetTokenCleanupJob removes expired password reset tokens so a stale
// token cannot linger in the collection indefinitely.
func ResetTokenCleanupJob(users *userstore.Store, logger *zap.Logger) Job {
	return Job{
		Name:     "reset-token-cleanup",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			count, err := users.CleanupExpiredResetTokens(ctx)
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("cleaned up expired reset tokens", zap.Int64("count", count))
			}
			return nil
		},
	}
}

// PushSessionStatsJob periodically logs push session registry counters so
// operators can see connection churn without a metrics stack.
func PushSessionStatsJob(hub *pushhub.Hub, logger *zap.Logger) Job {
	return Job{
		Name:     "push-session-stats",
		Interval: 5 * time.Minute,
		Run: func(ctx context.Context) error {
			logger.Info("push session stats",
				zap.Int("active", hub.Len()),
				zap.Int64("swept_total", hub.SweptCount()))
			return nil
		},
	}
}
