// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown tears down the background workers, the notification pipeline and
// the DB connection, in dependency order: producers stop before the
// dispatcher so no event is published into a stopped queue.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if services.runner != nil {
		services.runner.Stop()
	}
	if services.reminder != nil {
		services.reminder.Stop()
	}
	if services.dispatcher != nil {
		services.dispatcher.Stop()
	}

	if deps.MeetHubMongoClient != nil {
		logger.Info("disconnecting MeetHub MongoDB client")
		if err := deps.MeetHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
