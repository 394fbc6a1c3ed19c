// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	assessmentfeature "github.com/punxlabs/teampulse/internal/app/features/assessment"
	authgooglefeature "github.com/punxlabs/teampulse/internal/app/features/authgoogle"
	errorsfeature "github.com/punxlabs/teampulse/internal/app/features/errors"
	healthfeature "github.com/punxlabs/teampulse/internal/app/features/health"
	logoutfeature "github.com/punxlabs/teampulse/internal/app/features/logout"
	supervisorfeature "github.com/punxlabs/teampulse/internal/app/features/supervisor"
	trackfeature "github.com/punxlabs/teampulse/internal/app/features/track"
	"github.com/punxlabs/teampulse/internal/app/store/oauthstate"
	"github.com/punxlabs/teampulse/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connection, schema setup,
// and Startup have completed, so the audit logger package var is set.
// It builds the session layer, then mounts each feature router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged
	// in, making the current user available via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Tracking pixel for digest email opens; must stay public and
	// unauthenticated since it is fetched by mail clients.
	trackHandler := trackfeature.NewHandler(db, logger)
	r.Mount("/track", trackfeature.Routes(trackHandler))

	// Authentication
	googleHandler := authgooglefeature.NewHandler(
		oauthstate.New(db), sessionMgr, auditLogger, errLog,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		appCfg.SupervisorEmails, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, auditLogger, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Employee self-assessment
	assessmentHandler := assessmentfeature.NewHandler(db, auditLogger, errLog, logger)
	r.Mount("/assessment", assessmentfeature.Routes(assessmentHandler))

	// Supervisor dashboard
	supervisorHandler := supervisorfeature.NewHandler(db, auditLogger, errLog, logger)
	r.Mount("/supervisor", supervisorfeature.Routes(supervisorHandler))

	return r, nil
}
