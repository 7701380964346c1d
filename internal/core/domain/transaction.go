package domain

import "github.com/shopspring/decimal"

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction represents a single line item within a Journal, affecting one account.
// Amounts are positive; the side is carried by TransactionType, and the Money value
// object carries both the transaction-currency amount and its base-currency value.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (e.g., UUID)
	JournalID       string          `json:"journalID"`     // FK -> Journal.journalID (Not Null)
	AccountID       string          `json:"accountID"`     // FK -> Account.accountID (Not Null)
	Amount          Money           `json:"amount"`        // Positive; base and original currency values
	TransactionType TransactionType `json:"transactionType"`
	Notes           string          `json:"notes"` // Nullable
	AuditFields

	// Denormalized journal context, populated on reads that join the journal.
	JournalDate        Date   `json:"journalDate,omitempty"`
	JournalDescription string `json:"journalDescription,omitempty"`
}

// BaseAmount returns the line amount in the ledger base currency.
func (t Transaction) BaseAmount() decimal.Decimal {
	return t.Amount.BaseAmount
}
