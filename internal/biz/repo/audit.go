package repo

import (
	"context"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
)

// AuditRepo appends rows to the two follow-up logs.
// Rows are write-once; this system never updates or deletes them.
type AuditRepo interface {
	// AppendEscalation records a human-handoff request
	AppendEscalation(ctx context.Context, rec domain.AuditRecord) error

	// AppendInterest records an inquiry answered by the generative responder
	AppendInterest(ctx context.Context, rec domain.AuditRecord) error

	Close() error
}
