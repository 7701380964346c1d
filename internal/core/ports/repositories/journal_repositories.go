package repositories

import (
	"context"
	"time"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournalsByBranch retrieves a paginated list of journals for a branch using
	// token-based pagination. It returns the journals, a token for the next page, and an error.
	ListJournalsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Journal, *string, error)

	// FindPostedJournalsInRange retrieves every POSTED journal of a branch whose date
	// falls in [startDate, endDate] inclusive, with transactions populated.
	FindPostedJournalsInRange(ctx context.Context, branchID string, startDate, endDate domain.Date) ([]domain.Journal, error)

	// FindPostedJournals retrieves every POSTED journal of a branch regardless of
	// date, with transactions populated. Used by the ledger health audit.
	FindPostedJournals(ctx context.Context, branchID string) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournal persists a journal and its transactions within a database transaction.
	// balanceChanges carries the signed base-currency deltas per account and is applied
	// only for POSTED journals; drafts leave account balances untouched.
	SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// MarkJournalPosted transitions a DRAFT journal to POSTED and applies the
	// account balance deltas atomically.
	MarkJournalPosted(ctx context.Context, journalID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionsByJournalID retrieves all transactions associated with a single journal ID.
	FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a paginated list of transactions for a specific
	// account using token-based pagination.
	ListTransactionsByAccountID(ctx context.Context, branchID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// CountTransactionsByAccount returns, for every account of the branch that has ever
	// been referenced by a journal line, the number of referencing lines.
	CountTransactionsByAccount(ctx context.Context, branchID string) (map[string]int, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	TransactionReader
}
