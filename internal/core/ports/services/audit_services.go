package services

import (
	"context"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
)

// AuditSvcFacade runs the read-only ledger health audit.
type AuditSvcFacade interface {
	// RunAudit scans accounts, posted journals, and open billing documents of a
	// branch and reports every structural issue found. CRITICAL issues block
	// period locking; WARNING issues are advisory.
	RunAudit(ctx context.Context, branchID string) ([]domain.HealthIssue, error)
}
