package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/zyna-b/portfolio/audit"
)

// AuditEvent identifies the type of security-relevant action being logged.
type AuditEvent string

const (
	AuditLoginSuccess     AuditEvent = "login_success"
	AuditLoginFailure     AuditEvent = "login_failure"
	AuditLoginRateLimited AuditEvent = "login_rate_limited"
	AuditLogout           AuditEvent = "logout"
	AuditContentSaved     AuditEvent = "content_saved"
	AuditBlogUpserted     AuditEvent = "blog_upserted"
	AuditBlogDeleted      AuditEvent = "blog_deleted"
	AuditFileUploaded     AuditEvent = "file_uploaded"
	AuditContactMessage   AuditEvent = "contact_message"
)

// auditLogger writes structured security audit entries and, when a trail
// store is attached, persists them for the dashboard.
type auditLogger struct {
	logger  *slog.Logger
	trail   *audit.Store
	metrics *metricsCollector
}

func newAuditLogger(logger *slog.Logger, trail *audit.Store) *auditLogger {
	return &auditLogger{
		logger: logger.With("component", "audit"),
		trail:  trail,
	}
}

// log writes a structured audit log entry. The actor is the admin email or
// empty for anonymous events; never log passwords or session tokens.
func (al *auditLogger) log(event AuditEvent, r *http.Request, actor, detail string) {
	al.logger.LogAttrs(r.Context(), slog.LevelInfo, "audit",
		slog.String("event", string(event)),
		slog.String("actor", actor),
		slog.String("detail", detail),
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
	if al.trail != nil {
		if err := al.trail.Append(audit.Entry{
			Event:      string(event),
			Actor:      actor,
			Detail:     detail,
			RemoteAddr: r.RemoteAddr,
		}); err != nil {
			al.logger.Error("appending audit trail", "error", err)
		}
	}
	if al.metrics != nil {
		al.metrics.recordEvent(event)
	}
}
