package repositories

import (
	"context"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
)

// BillingReader exposes the billing collaborator's open documents to the
// ledger health audit. The core never writes billing documents.
type BillingReader interface {
	// ListOpenInvoices retrieves invoices in DRAFT or SENT status for a branch.
	ListOpenInvoices(ctx context.Context, branchID string) ([]domain.Invoice, error)

	// ListOpenBills retrieves bills in DRAFT or SENT status for a branch.
	ListOpenBills(ctx context.Context, branchID string) ([]domain.Bill, error)
}
