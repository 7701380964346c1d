package models

import "github.com/shopspring/decimal"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// Journal represents a single, balanced financial event composed of multiple transactions.
// The journal date is stored as a plain YYYY-MM-DD string to keep lock-date
// comparisons free of timezone drift.
type Journal struct {
	JournalID    string          `json:"journalID"`    // Primary Key (e.g., UUID)
	BranchID     string          `json:"branchID"`     // FK -> branches.branch_id (Not Null)
	JournalDate  string          `json:"journalDate"`  // Calendar date, YYYY-MM-DD
	Description  string          `json:"description"`  // Nullable user description
	Reference    string          `json:"reference"`    // Caller-supplied document reference
	CurrencyCode string          `json:"currencyCode"` // Transaction currency of the Journal (Not Null)
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // Units of transaction currency per base unit
	Status       JournalStatus   `json:"status"`       // DRAFT until explicitly posted
	Amount       decimal.Decimal `json:"amount"`       // Total base-currency debits
	AuditFields
}
