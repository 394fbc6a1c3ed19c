// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, timeouts); AppConfig carries everything specific to
// TeamPulse. Values come from config files, TEAMPULSE_* environment
// variables, or command-line flags, loaded in LoadConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret for signing session cookies, must be strong in production
	SessionName   string
	SessionDomain string // blank means current host

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// SupervisorEmails lists accounts that sign in with the supervisor
	// role. Comma-separated in config; everyone else is an employee.
	SupervisorEmails []string

	// Email/SMTP configuration for the check-in digests
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string

	// SiteName appears in digest subjects and bodies.
	SiteName string

	// BaseURL is the externally visible origin, used for OAuth
	// callbacks and tracking-pixel links in emails.
	BaseURL string

	// DigestInterval is how often the digest worker checks for due
	// check-in emails.
	DigestInterval time.Duration

	// Audit logging destinations: "all" (db+log), "db", "log", or "off"
	AuditLogAuth  string
	AuditLogAdmin string
}
