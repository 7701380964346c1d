package mapping

import (
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/parceldesk/ledger_core_app/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:    d.JournalID,
		BranchID:     d.BranchID,
		JournalDate:  d.JournalDate.String(),
		Description:  d.Description,
		Reference:    d.Reference,
		CurrencyCode: d.CurrencyCode,
		ExchangeRate: d.ExchangeRate,
		Status:       models.JournalStatus(d.Status),
		Amount:       d.Amount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:    m.JournalID,
		BranchID:     m.BranchID,
		JournalDate:  domain.Date(m.JournalDate),
		Description:  m.Description,
		Reference:    m.Reference,
		CurrencyCode: m.CurrencyCode,
		ExchangeRate: m.ExchangeRate,
		Status:       domain.JournalStatus(m.Status),
		Amount:       m.Amount,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		JournalID:       d.JournalID,
		AccountID:       d.AccountID,
		BaseAmount:      d.Amount.BaseAmount,
		OriginalAmount:  d.Amount.OriginalAmount,
		CurrencyCode:    d.Amount.CurrencyCode,
		ExchangeRate:    d.Amount.ExchangeRate,
		TransactionType: models.TransactionType(d.TransactionType),
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		JournalID:     m.JournalID,
		AccountID:     m.AccountID,
		Amount: domain.Money{
			BaseAmount:     m.BaseAmount,
			OriginalAmount: m.OriginalAmount,
			CurrencyCode:   m.CurrencyCode,
			ExchangeRate:   m.ExchangeRate,
		},
		TransactionType: domain.TransactionType(m.TransactionType),
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransactionSlice converts a slice of domain Transactions to a slice of model Transactions
func ToModelTransactionSlice(ds []domain.Transaction) []models.Transaction {
	ms := make([]models.Transaction, len(ds))
	for i, d := range ds {
		ms[i] = ToModelTransaction(d)
	}
	return ms
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
