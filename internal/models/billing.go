package models

import "github.com/shopspring/decimal"

// DocumentStatus is the lifecycle state of a billing document.
type DocumentStatus string

const (
	DocumentDraft DocumentStatus = "DRAFT"
	DocumentSent  DocumentStatus = "SENT"
	DocumentPaid  DocumentStatus = "PAID"
	DocumentVoid  DocumentStatus = "VOID"
)

// Invoice is a customer billing document row, read-only for the ledger core.
type Invoice struct {
	InvoiceID    string          `db:"invoice_id"`
	BranchID     string          `db:"branch_id"`
	InvoiceNo    string          `db:"invoice_no"`
	CustomerName string          `db:"customer_name"`
	Status       DocumentStatus  `db:"status"`
	IssueDate    string          `db:"issue_date"` // YYYY-MM-DD
	DueDate      string          `db:"due_date"`   // YYYY-MM-DD
	Total        decimal.Decimal `db:"total"`
	AuditFields
}

// Bill is a vendor billing document row, read-only for the ledger core.
type Bill struct {
	BillID     string          `db:"bill_id"`
	BranchID   string          `db:"branch_id"`
	BillNo     string          `db:"bill_no"`
	VendorName string          `db:"vendor_name"`
	Status     DocumentStatus  `db:"status"`
	IssueDate  string          `db:"issue_date"` // YYYY-MM-DD
	DueDate    string          `db:"due_date"`   // YYYY-MM-DD
	Total      decimal.Decimal `db:"total"`
	AuditFields
}
