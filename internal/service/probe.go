package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kudobolivia/frontdesk/internal/biz/domain"
	"github.com/kudobolivia/frontdesk/internal/biz/repo"
)

// AuditProbe writes a marker row to check audit log connectivity
type AuditProbe struct {
	auditRepo repo.AuditRepo
	now       func() time.Time
}

// NewAuditProbe creates a new audit probe
func NewAuditProbe(auditRepo repo.AuditRepo) *AuditProbe {
	return &AuditProbe{auditRepo: auditRepo, now: time.Now}
}

// Probe appends ["TEST", "Prueba manual", now] to the interest log
func (p *AuditProbe) Probe(ctx context.Context) error {
	rec := domain.AuditRecord{Sender: "TEST", Text: "Prueba manual", Timestamp: p.now()}
	if err := p.auditRepo.AppendInterest(ctx, rec); err != nil {
		return fmt.Errorf("audit probe: %w", err)
	}
	return nil
}
