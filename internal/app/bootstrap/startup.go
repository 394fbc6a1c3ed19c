// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/punxlabs/teampulse/internal/app/store/audit"
	engagementstore "github.com/punxlabs/teampulse/internal/app/store/engagement"
	"github.com/punxlabs/teampulse/internal/app/system/auditlog"
	"github.com/punxlabs/teampulse/internal/app/system/mailer"
	"github.com/punxlabs/teampulse/internal/app/system/workers"
)

// Shared between Startup, BuildHandler, and Shutdown. WAFFLE calls the
// hooks sequentially from one goroutine, so plain package vars are fine.
var (
	auditLogger  *auditlog.Logger
	digestWorker *workers.Digest
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// It wires the audit logger and, when SMTP is configured, starts the
// background digest worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	auditLogger = auditlog.New(audit.New(deps.MongoDatabase), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	if appCfg.MailSMTPHost == "" {
		logger.Info("smtp not configured; digest emails disabled")
		return nil
	}

	sender := mailer.NewSender(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
	}, logger)

	digestWorker = workers.NewDigest(
		engagementstore.New(deps.MongoDatabase),
		sender,
		auditLogger,
		logger,
		appCfg.SiteName,
		appCfg.BaseURL,
		appCfg.DigestInterval,
	)
	digestWorker.Start()

	return nil
}
