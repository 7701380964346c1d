package domain

import "github.com/shopspring/decimal"

// DocumentStatus is the lifecycle state of a billing document.
type DocumentStatus string

const (
	DocumentDraft DocumentStatus = "DRAFT"
	DocumentSent  DocumentStatus = "SENT"
	DocumentPaid  DocumentStatus = "PAID"
	DocumentVoid  DocumentStatus = "VOID"
)

// Invoice is a customer billing document owned by the billing collaborator.
// The ledger core only reads invoices to judge period-closing readiness.
type Invoice struct {
	InvoiceID    string          `json:"invoiceID"`
	BranchID     string          `json:"branchID"`
	InvoiceNo    string          `json:"invoiceNo"`
	CustomerName string          `json:"customerName"`
	Status       DocumentStatus  `json:"status"`
	IssueDate    Date            `json:"issueDate"`
	DueDate      Date            `json:"dueDate"`
	Total        decimal.Decimal `json:"total"`
	AuditFields
}

// Bill is a vendor billing document, mirrored from the payables collaborator.
type Bill struct {
	BillID     string          `json:"billID"`
	BranchID   string          `json:"branchID"`
	BillNo     string          `json:"billNo"`
	VendorName string          `json:"vendorName"`
	Status     DocumentStatus  `json:"status"`
	IssueDate  Date            `json:"issueDate"`
	DueDate    Date            `json:"dueDate"`
	Total      decimal.Decimal `json:"total"`
	AuditFields
}

// IsOpen reports whether the document still awaits posting or settlement.
func (s DocumentStatus) IsOpen() bool {
	return s == DocumentDraft || s == DocumentSent
}
