package pgsql

import (
	"context"
	"time"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	"github.com/parceldesk/ledger_core_app/internal/models"
	"github.com/parceldesk/ledger_core_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBillingRepository reads billing documents written by the billing service.
// The ledger core never inserts or updates these tables.
type PgxBillingRepository struct {
	pool *pgxpool.Pool
}

// newPgxBillingRepository creates a new read-only repository for billing documents.
func newPgxBillingRepository(pool *pgxpool.Pool) portsrepo.BillingReader {
	return &PgxBillingRepository{pool: pool}
}

// Ensure PgxBillingRepository implements portsrepo.BillingReader
var _ portsrepo.BillingReader = (*PgxBillingRepository)(nil)

// ListOpenInvoices retrieves invoices in DRAFT or SENT status for a branch.
func (r *PgxBillingRepository) ListOpenInvoices(ctx context.Context, branchID string) ([]domain.Invoice, error) {
	query := `
		SELECT invoice_id, branch_id, invoice_no, customer_name, status, issue_date, due_date, total,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM invoices
		WHERE branch_id = $1 AND status IN ('DRAFT', 'SENT')
		ORDER BY due_date;
	`
	rows, err := r.pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open invoices for branch "+branchID, err)
	}
	defer rows.Close()

	modelInvoices := []models.Invoice{}
	for rows.Next() {
		var m models.Invoice
		var issueDate, dueDate time.Time
		if scanErr := rows.Scan(
			&m.InvoiceID,
			&m.BranchID,
			&m.InvoiceNo,
			&m.CustomerName,
			&m.Status,
			&issueDate,
			&dueDate,
			&m.Total,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row for branch "+branchID, scanErr)
		}
		m.IssueDate = issueDate.Format("2006-01-02")
		m.DueDate = dueDate.Format("2006-01-02")
		modelInvoices = append(modelInvoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows for branch "+branchID, err)
	}
	return mapping.ToDomainInvoiceSlice(modelInvoices), nil
}

// ListOpenBills retrieves bills in DRAFT or SENT status for a branch.
func (r *PgxBillingRepository) ListOpenBills(ctx context.Context, branchID string) ([]domain.Bill, error) {
	query := `
		SELECT bill_id, branch_id, bill_no, vendor_name, status, issue_date, due_date, total,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM bills
		WHERE branch_id = $1 AND status IN ('DRAFT', 'SENT')
		ORDER BY due_date;
	`
	rows, err := r.pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open bills for branch "+branchID, err)
	}
	defer rows.Close()

	modelBills := []models.Bill{}
	for rows.Next() {
		var m models.Bill
		var issueDate, dueDate time.Time
		if scanErr := rows.Scan(
			&m.BillID,
			&m.BranchID,
			&m.BillNo,
			&m.VendorName,
			&m.Status,
			&issueDate,
			&dueDate,
			&m.Total,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill row for branch "+branchID, scanErr)
		}
		m.IssueDate = issueDate.Format("2006-01-02")
		m.DueDate = dueDate.Format("2006-01-02")
		modelBills = append(modelBills, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bill rows for branch "+branchID, err)
	}
	return mapping.ToDomainBillSlice(modelBills), nil
}
