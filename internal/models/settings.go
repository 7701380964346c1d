package models

// SystemSettings is the singleton configuration row for a ledger.
// LockDate is a nullable YYYY-MM-DD string.
type SystemSettings struct {
	LockDate         *string `db:"lock_date"`
	BaseCurrencyCode string  `db:"base_currency_code"`
	AuditFields
}
