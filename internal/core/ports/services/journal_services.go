package services

import (
	"context"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/parceldesk/ledger_core_app/internal/dto"
)

// JournalSvcFacade defines journal posting and retrieval operations.
type JournalSvcFacade interface {
	// CreateJournal validates and persists a journal in NORMAL mode: a journal
	// dated on or before the period lock date is rejected.
	CreateJournal(ctx context.Context, branchID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// PostAdjustmentJournal validates the journal in ADJUSTMENT mode and posts it
	// into a locked period through the temporary-unlock sequence of the period
	// lock service. The lock date is restored afterwards in every outcome.
	PostAdjustmentJournal(ctx context.Context, branchID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// PostDraftJournal transitions a DRAFT journal to POSTED after re-running
	// full validation against the current lock state.
	PostDraftJournal(ctx context.Context, branchID string, journalID string, userID string) (*domain.Journal, error)

	// GetJournalByID retrieves a journal and its transactions.
	GetJournalByID(ctx context.Context, branchID string, journalID string) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals for a branch.
	ListJournals(ctx context.Context, branchID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// ListTransactionsByAccount retrieves a paginated list of an account's transactions.
	ListTransactionsByAccount(ctx context.Context, branchID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
