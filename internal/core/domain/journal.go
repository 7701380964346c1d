package domain

import "github.com/shopspring/decimal"

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// PostingMode controls how the period lock applies to a journal being posted.
type PostingMode string

const (
	// ModeNormal rejects journals dated on or before the lock date.
	ModeNormal PostingMode = "NORMAL"
	// ModeAdjustment bypasses the lock check; the caller routes the journal
	// through the temporary-unlock sequence of the period lock service.
	ModeAdjustment PostingMode = "ADJUSTMENT"
)

// Journal represents a single, balanced financial event composed of multiple transactions.
type Journal struct {
	JournalID    string          `json:"journalID"`    // Primary Key (e.g., UUID)
	BranchID     string          `json:"branchID"`     // FK -> branches.branch_id (Not Null)
	JournalDate  Date            `json:"journalDate"`  // Calendar date the event occurred
	Description  string          `json:"description"`  // Nullable user description
	Reference    string          `json:"reference"`    // Caller-supplied document reference
	CurrencyCode string          `json:"currencyCode"` // Transaction currency of the Journal (Not Null)
	ExchangeRate decimal.Decimal `json:"exchangeRate"` // Rate to the ledger base currency
	Status       JournalStatus   `json:"status"`       // DRAFT until explicitly posted
	Amount       decimal.Decimal `json:"amount"`       // Total base-currency debits; the journal's economic value
	Transactions []Transaction   `json:"transactions,omitempty"`
	AuditFields
}

// IsPosted reports whether the journal counts as posted ledger activity.
// Draft journals are work in progress and are exempt from the balance
// invariant; they never contribute to closing sums or audit totals.
func (j Journal) IsPosted() bool {
	return j.Status == Posted
}
