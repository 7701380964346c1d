package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account represents a chart-of-accounts entry within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (e.g., UUID)
	BranchID     string          `json:"branchID"`     // FK -> branches.branch_id (NON-NULL)
	Code         string          `json:"code"`         // Short account code, unique per branch (e.g., "3020")
	Name         string          `json:"name"`         // User-defined name
	AccountType  AccountType     `json:"accountType"`  // ASSET, LIABILITY, etc.
	IsHeader     bool            `json:"isHeader"`     // Aggregation-only accounts never receive postings
	CurrencyCode string          `json:"currencyCode"` // Optional currency restriction; empty means any
	Description  string          `json:"description"`  // Nullable user description
	IsActive     bool            `json:"isActive"`     // Soft delete or status flag
	AuditFields                  // Embed CreatedAt, CreatedBy, etc.
	Balance      decimal.Decimal `json:"balance"` // Persisted base-currency balance
}

// IsPostable reports whether journal lines may target this account.
func (a Account) IsPostable() bool {
	return !a.IsHeader && a.IsActive
}
