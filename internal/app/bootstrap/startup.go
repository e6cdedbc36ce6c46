// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	meetingstore "github.com/dalemusser/meethub/internal/app/store/meetings"
	userstore "github.com/dalemusser/meethub/internal/app/store/users"
	"github.com/dalemusser/meethub/internal/app/system/auth"
	"github.com/dalemusser/meethub/internal/app/system/mailer"
	"github.com/dalemusser/meethub/internal/app/system/notify"
	"github.com/dalemusser/meethub/internal/app/system/pushhub"
	"github.com/dalemusser/meethub/internal/app/system/tasks"
	"github.com/dalemusser/meethub/internal/app/system/workers"
)

// services carries the long-lived components built in Startup, used by
// BuildHandler and torn down in Shutdown. WAFFLE runs the hooks in that
// order, so access needs no locking.
var services struct {
	tokens     *auth.TokenService
	hub        *pushhub.Hub
	mail       mailer.Sender
	dispatcher *notify.Dispatcher
	users      *userstore.Store
	meetings   *meetingstore.Store
	reminder   *workers.Reminder
	runner     *tasks.Runner
}

// Startup builds the notification pipeline and background workers after DB
// connections and schema setup are complete, but before the HTTP handler is
// built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	tokens, err := auth.NewTokenService(appCfg.TokenKey, appCfg.TokenExpiry)
	if err != nil {
		return err
	}
	services.tokens = tokens

	services.hub = pushhub.NewHub(tokens, logger)
	if appCfg.MailSMTPHost == "" {
		logger.Warn("smtp host not configured, outbound mail disabled")
		services.mail = mailer.NopSender{}
	} else {
		services.mail = mailer.NewSMTPSender(mailer.Config{
			Host:     appCfg.MailSMTPHost,
			Port:     appCfg.MailSMTPPort,
			Username: appCfg.MailSMTPUser,
			Password: appCfg.MailSMTPPass,
			From:     appCfg.MailFrom,
			FromName: appCfg.MailFromName,
		}, logger)
	}

	services.dispatcher = notify.NewDispatcher(
		mailer.NewSink(services.mail, logger),
		pushhub.NewSink(services.hub),
		logger,
	)
	services.dispatcher.Start()

	db := deps.MeetHubMongoDatabase
	services.users = userstore.New(db)
	services.meetings = meetingstore.New(db, services.users, services.dispatcher)

	services.reminder = workers.NewReminder(services.meetings, services.dispatcher, logger, appCfg.ReminderWindow)
	services.reminder.Start()

	services.runner = tasks.NewRunner(logger)
	if err := services.runner.Add(tasks.ResetTokenCleanupJob(services.users, logger)); err != nil {
		return err
	}
	if err := services.runner.Add(tasks.PushSessionStatsJob(services.hub, logger)); err != nil {
		return err
	}
	services.runner.Start()

	return nil
}
