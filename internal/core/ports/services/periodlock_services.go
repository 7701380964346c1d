package services

import (
	"context"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
)

// PeriodLockSvcFacade owns the single mutable lock date and the
// unlock/post/relock protocol for retroactive adjustments.
type PeriodLockSvcFacade interface {
	// GetLockDate returns the current lock date, or nil if the ledger is fully open.
	GetLockDate(ctx context.Context) (*domain.Date, error)

	// LockPeriod unconditionally sets the lock date. Callers are expected to have
	// run the health audit and obtained a CRITICAL-clean result first; the service
	// itself does not re-check.
	LockPeriod(ctx context.Context, lockDate domain.Date, userID string) error

	// UnlockPeriod clears the lock date, reopening the ledger.
	UnlockPeriod(ctx context.Context, userID string) error

	// WithTemporaryUnlock clears the lock date, runs fn, and restores the original
	// lock date. The restore is attempted exactly once per invocation (with a single
	// retry on failure) even when fn fails; a partial sequence is reported as a
	// *services.AdjustmentSequenceError carrying both outcomes. It never returns
	// success while the lock state is ambiguous.
	WithTemporaryUnlock(ctx context.Context, userID string, fn func(ctx context.Context) error) error
}
