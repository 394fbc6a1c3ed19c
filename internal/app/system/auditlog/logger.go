// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/punxlabs/teampulse/internal/app/store/audit"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for sign-in and sign-out events.
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for supervisor dashboard actions
	// (linking, tag edits, notes, purges).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.ActorID != "" {
		fields = append(fields, zap.String("actor_id", event.ActorID))
	}
	if event.EmployeeID != "" {
		fields = append(fields, zap.String("employee_id", event.EmployeeID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication events ---

// SignedIn logs a completed Google sign-in.
func (l *Logger) SignedIn(ctx context.Context, r *http.Request, userID, email, role string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventSignedIn,
		ActorID:   userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"email": email,
			"role":  role,
		},
	})
}

// SignedOut logs a sign-out.
func (l *Logger) SignedOut(ctx context.Context, r *http.Request, userID string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventSignedOut,
		ActorID:   userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// --- Supervisor dashboard events ---

// EmployeeLinked logs an employee being added to a supervisor's roster.
func (l *Logger) EmployeeLinked(ctx context.Context, r *http.Request, supervisorID, employeeID, method string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventEmployeeLinked,
		ActorID:    supervisorID,
		EmployeeID: employeeID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
		Details: map[string]string{
			"method": method,
		},
	})
}

// EmployeeUnlinked logs an employee being removed from a supervisor's roster.
func (l *Logger) EmployeeUnlinked(ctx context.Context, r *http.Request, supervisorID, employeeID string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventEmployeeUnlinked,
		ActorID:    supervisorID,
		EmployeeID: employeeID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// TagFieldUpdated logs a supervisor overwriting one tag field on a profile.
func (l *Logger) TagFieldUpdated(ctx context.Context, r *http.Request, supervisorID, employeeID, field string, count int) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventTagFieldUpdated,
		ActorID:    supervisorID,
		EmployeeID: employeeID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
		Details: map[string]string{
			"field": field,
			"count": intToString(count),
		},
	})
}

// NotesSaved logs a supervisor saving annotation notes for an employee.
func (l *Logger) NotesSaved(ctx context.Context, r *http.Request, supervisorID, employeeID string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventNotesSaved,
		ActorID:    supervisorID,
		EmployeeID: employeeID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// ProfilePurged logs a permanent profile deletion.
func (l *Logger) ProfilePurged(ctx context.Context, r *http.Request, supervisorID, employeeID string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventProfilePurged,
		ActorID:    supervisorID,
		EmployeeID: employeeID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

// DigestSent logs a background check-in email send. It originates from
// the digest worker, not a request, so there are no client details.
func (l *Logger) DigestSent(ctx context.Context, employeeID, eventID string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventDigestSent,
		ActorID:    "system",
		EmployeeID: employeeID,
		Success:    true,
		Details:    map[string]string{"event_id": eventID},
	})
}

// ProfileSubmitted logs an employee saving their own assessment.
func (l *Logger) ProfileSubmitted(ctx context.Context, r *http.Request, employeeID string) {
	l.Log(ctx, audit.Event{
		Category:   audit.CategoryAdmin,
		EventType:  audit.EventProfileSubmitted,
		ActorID:    employeeID,
		EmployeeID: employeeID,
		IP:         getClientIP(r),
		UserAgent:  r.UserAgent(),
		Success:    true,
	})
}

func intToString(n int) string {
	return strconv.Itoa(n)
}
