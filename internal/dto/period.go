package dto

import "github.com/parceldesk/ledger_core_app/internal/core/domain"

// LockPeriodRequest defines the payload for locking the ledger up to a date.
type LockPeriodRequest struct {
	LockDate domain.Date `json:"lockDate" binding:"required,ledgerdate"`
}

// LockStatusResponse reports the current period lock state.
type LockStatusResponse struct {
	LockDate *domain.Date `json:"lockDate"` // nil when the ledger is fully open
}

// GenerateClosingRequest defines the payload for synthesizing a period-closing journal.
type GenerateClosingRequest struct {
	StartDate                 domain.Date `json:"startDate" binding:"required,ledgerdate"`
	EndDate                   domain.Date `json:"endDate" binding:"required,ledgerdate"`
	RetainedEarningsAccountID string      `json:"retainedEarningsAccountID" binding:"required"`
}
