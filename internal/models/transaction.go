package models

import "github.com/shopspring/decimal"

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction represents a single line item within a Journal, affecting one account.
// Both the transaction-currency amount and the derived base-currency amount are
// persisted so audits never re-derive historical conversions.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`   // Primary Key (e.g., UUID)
	JournalID       string          `json:"journalID"`       // FK -> Journal.journalID (Not Null)
	AccountID       string          `json:"accountID"`       // FK -> Account.accountID (Not Null)
	BaseAmount      decimal.Decimal `json:"baseAmount"`      // Positive; ledger base currency
	OriginalAmount  decimal.Decimal `json:"originalAmount"`  // Positive; transaction currency
	CurrencyCode    string          `json:"currencyCode"`    // Must match Journal currency (Not Null)
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`    // Copied from the journal at write time
	TransactionType TransactionType `json:"transactionType"` // DEBIT or CREDIT (Not Null)
	Notes           string          `json:"notes"`           // Nullable
	AuditFields
}
