package mapping

import (
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/parceldesk/ledger_core_app/internal/models"
)

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:    m.InvoiceID,
		BranchID:     m.BranchID,
		InvoiceNo:    m.InvoiceNo,
		CustomerName: m.CustomerName,
		Status:       domain.DocumentStatus(m.Status),
		IssueDate:    domain.Date(m.IssueDate),
		DueDate:      domain.Date(m.DueDate),
		Total:        m.Total,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to a slice of domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:      m.BillID,
		BranchID:    m.BranchID,
		BillNo:      m.BillNo,
		VendorName:  m.VendorName,
		Status:      domain.DocumentStatus(m.Status),
		IssueDate:   domain.Date(m.IssueDate),
		DueDate:     domain.Date(m.DueDate),
		Total:       m.Total,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBillSlice converts a slice of model Bills to a slice of domain Bills
func ToDomainBillSlice(ms []models.Bill) []domain.Bill {
	ds := make([]domain.Bill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBill(m)
	}
	return ds
}
