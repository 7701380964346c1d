package models

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

// Account represents a chart-of-accounts row.
type Account struct {
	AccountID    string          `db:"account_id"`
	BranchID     string          `db:"branch_id"`
	Code         string          `db:"code"` // Unique per branch
	Name         string          `db:"name"`
	AccountType  AccountType     `db:"account_type"`
	IsHeader     bool            `db:"is_header"`
	CurrencyCode string          `db:"currency_code"` // Nullable; empty means any currency
	Description  string          `db:"description"`
	IsActive     bool            `db:"is_active"`
	AuditFields                  // Embed common audit fields
	Balance      decimal.Decimal `db:"balance"` // Persisted base-currency balance
}
