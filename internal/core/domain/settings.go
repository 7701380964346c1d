package domain

// SystemSettings is the singleton configuration row for a ledger.
// LockDate is the period boundary: journals dated on or before it are frozen
// for normal posting. A nil LockDate means the ledger is fully open.
type SystemSettings struct {
	LockDate         *Date  `json:"lockDate,omitempty"`
	BaseCurrencyCode string `json:"baseCurrencyCode"`
	AuditFields
}
