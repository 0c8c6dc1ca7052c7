package predict

import (
	"context"
	"time"

	"github.com/couchcryptid/disaster-predict/internal/domain"
)

// AuditEvent records one successful prediction for the audit trail.
type AuditEvent struct {
	Endpoint    string         `json:"endpoint"`
	Request     domain.Payload `json:"request"`
	Response    any            `json:"response"`
	ProcessedAt time.Time      `json:"processed_at"`
}

// AuditPublisher delivers audit events to an external sink. Publishing is
// best-effort: failures are logged and counted, never surfaced to callers.
type AuditPublisher interface {
	Publish(ctx context.Context, event AuditEvent) error
}
