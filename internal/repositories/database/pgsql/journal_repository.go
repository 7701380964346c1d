package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	"github.com/parceldesk/ledger_core_app/internal/models"
	"github.com/parceldesk/ledger_core_app/internal/utils/mapping"
	"github.com/parceldesk/ledger_core_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal and transaction data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, branch_id, journal_date, description, reference, currency_code, exchange_rate, status, amount, created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `transaction_id, journal_id, account_id, base_amount, original_amount, currency_code, exchange_rate, transaction_type, notes, created_at, created_by, last_updated_at, last_updated_by`

// scanJournal scans one journals row. journal_date comes back as a DATE and is
// reformatted to YYYY-MM-DD; reference and description are nullable.
func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	var journalDate time.Time
	var description sql.NullString
	var reference sql.NullString

	err := row.Scan(
		&m.JournalID,
		&m.BranchID,
		&journalDate,
		&description,
		&reference,
		&m.CurrencyCode,
		&m.ExchangeRate,
		&m.Status,
		&m.Amount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Journal{}, err
	}
	m.JournalDate = journalDate.Format("2006-01-02")
	m.Description = description.String
	m.Reference = reference.String
	return m, nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	var notes sql.NullString

	err := row.Scan(
		&t.TransactionID,
		&t.JournalID,
		&t.AccountID,
		&t.BaseAmount,
		&t.OriginalAmount,
		&t.CurrencyCode,
		&t.ExchangeRate,
		&t.TransactionType,
		&notes,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return models.Transaction{}, err
	}
	t.Notes = notes.String
	return t, nil
}

// SaveJournal saves a journal, updates account balances, and saves associated
// transactions within a DB transaction. balanceChanges is empty for drafts, so
// a draft save touches no account rows.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, transactions []domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after a successful commit

	now := journal.CreatedAt
	userID := journal.CreatedBy

	modelJournal := mapping.ToModelJournal(journal)
	journalQuery := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, journalQuery,
		modelJournal.JournalID,
		modelJournal.BranchID,
		modelJournal.JournalDate,
		modelJournal.Description,
		modelJournal.Reference,
		modelJournal.CurrencyCode,
		modelJournal.ExchangeRate,
		modelJournal.Status,
		modelJournal.Amount,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+modelJournal.JournalID, err)
	}

	if len(balanceChanges) > 0 {
		accountIDs := make([]string, 0, len(balanceChanges))
		for accID := range balanceChanges {
			accountIDs = append(accountIDs, accID)
		}
		sort.Strings(accountIDs) // consistent lock order across concurrent posts

		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return apperrors.NewAppError(500, "failed to lock accounts for update", err)
		}
		if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
			return apperrors.NewAppError(500, "failed to update account balances", err)
		}
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for _, txn := range transactions {
		modelTxn := mapping.ToModelTransaction(txn)
		modelTxn.CreatedAt = now
		modelTxn.LastUpdatedAt = now
		modelTxn.CreatedBy = userID
		modelTxn.LastUpdatedBy = userID

		batch.Queue(txnQuery,
			modelTxn.TransactionID,
			modelTxn.JournalID,
			modelTxn.AccountID,
			modelTxn.BaseAmount,
			modelTxn.OriginalAmount,
			modelTxn.CurrencyCode,
			modelTxn.ExchangeRate,
			modelTxn.TransactionType,
			modelTxn.Notes,
			modelTxn.CreatedAt,
			modelTxn.CreatedBy,
			modelTxn.LastUpdatedAt,
			modelTxn.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute transaction batch for journal "+modelJournal.JournalID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction for journal "+modelJournal.JournalID, err)
	}
	return nil
}

// MarkJournalPosted transitions a DRAFT journal to POSTED and applies the
// account balance deltas atomically.
func (r *PgxJournalRepository) MarkJournalPosted(ctx context.Context, journalID string, balanceChanges map[string]decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journals
		SET status = 'POSTED', last_updated_at = $2, last_updated_by = $3
		WHERE journal_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query, journalID, updatedAt, updatedByUserID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal "+journalID+" posted", err)
	}
	if tag.RowsAffected() == 0 {
		// Either the journal is gone or it was posted concurrently.
		return apperrors.ErrConflict
	}

	if len(balanceChanges) > 0 {
		accountIDs := make([]string, 0, len(balanceChanges))
		for accID := range balanceChanges {
			accountIDs = append(accountIDs, accID)
		}
		sort.Strings(accountIDs)

		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
			return apperrors.NewAppError(500, "failed to lock accounts for update", err)
		}
		if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, updatedByUserID, updatedAt); err != nil {
			return apperrors.NewAppError(500, "failed to update account balances", err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return apperrors.NewAppError(500, "failed to commit posting of journal "+journalID, err)
	}
	return nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	modelJournal, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}

	domainJournal := mapping.ToDomainJournal(modelJournal)
	return &domainJournal, nil
}

// FindTransactionsByJournalID retrieves all transactions associated with a specific journal.
func (r *PgxJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE journal_id = $1
		ORDER BY transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for journal "+journalID, err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row for journal "+journalID, scanErr)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows for journal "+journalID, err)
	}

	return mapping.ToDomainTransactionSlice(transactions), nil
}

// ListJournalsByBranch retrieves a paginated list of journals for a specific branch
// using token-based keyset pagination ordered by journal_date DESC, created_at DESC.
func (r *PgxJournalRepository) ListJournalsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there is a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals`
	filterClause := `WHERE branch_id = $1`
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{branchID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}

		cursorClause := `AND (journal_date, created_at) < ($2, $3)`
		args = append(args, lastDate.String(), lastCreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for branch "+branchID, err)
	}
	defer rows.Close()

	modelJournals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row for branch "+branchID, scanErr)
		}
		modelJournals = append(modelJournals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows for branch "+branchID, err)
	}

	var nextTokenVal *string
	results := modelJournals
	if len(modelJournals) > limit {
		lastJournal := modelJournals[limit-1]
		newToken := pagination.EncodeToken(domain.Date(lastJournal.JournalDate), lastJournal.CreatedAt)
		nextTokenVal = &newToken
		results = modelJournals[:limit]
	}

	domainJournals := make([]domain.Journal, len(results))
	for i, m := range results {
		domainJournals[i] = mapping.ToDomainJournal(m)
	}
	return domainJournals, nextTokenVal, nil
}

// findJournalsWithTransactions loads journals matching the filter clause and
// attaches every transaction of each journal. Shared by the closing and audit
// range reads.
func (r *PgxJournalRepository) findJournalsWithTransactions(ctx context.Context, filterClause string, args ...interface{}) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals ` + filterClause + ` ORDER BY journal_date, created_at;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journals", err)
	}
	defer rows.Close()

	modelJournals := []models.Journal{}
	for rows.Next() {
		m, scanErr := scanJournal(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal row", scanErr)
		}
		modelJournals = append(modelJournals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}

	if len(modelJournals) == 0 {
		return []domain.Journal{}, nil
	}

	journalIDs := make([]string, len(modelJournals))
	for i, m := range modelJournals {
		journalIDs[i] = m.JournalID
	}

	txnQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE journal_id = ANY($1)
		ORDER BY journal_id, transaction_id;
	`
	txnRows, err := r.Pool.Query(ctx, txnQuery, journalIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for journals", err)
	}
	defer txnRows.Close()

	transactionsByJournal := make(map[string][]models.Transaction, len(journalIDs))
	for txnRows.Next() {
		t, scanErr := scanTransaction(txnRows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", scanErr)
		}
		transactionsByJournal[t.JournalID] = append(transactionsByJournal[t.JournalID], t)
	}
	if err := txnRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	domainJournals := make([]domain.Journal, len(modelJournals))
	for i, m := range modelJournals {
		j := mapping.ToDomainJournal(m)
		j.Transactions = mapping.ToDomainTransactionSlice(transactionsByJournal[m.JournalID])
		domainJournals[i] = j
	}
	return domainJournals, nil
}

// FindPostedJournalsInRange retrieves every POSTED journal of a branch whose date
// falls in [startDate, endDate] inclusive, with transactions populated.
func (r *PgxJournalRepository) FindPostedJournalsInRange(ctx context.Context, branchID string, startDate, endDate domain.Date) ([]domain.Journal, error) {
	return r.findJournalsWithTransactions(ctx,
		`WHERE branch_id = $1 AND status = 'POSTED' AND journal_date >= $2 AND journal_date <= $3`,
		branchID, startDate.String(), endDate.String())
}

// FindPostedJournals retrieves every POSTED journal of a branch with transactions populated.
func (r *PgxJournalRepository) FindPostedJournals(ctx context.Context, branchID string) ([]domain.Journal, error) {
	return r.findJournalsWithTransactions(ctx,
		`WHERE branch_id = $1 AND status = 'POSTED'`,
		branchID)
}

// ListTransactionsByAccountID retrieves a paginated list of transactions for a
// specific account using token-based pagination. Only POSTED journal lines are
// returned; drafts are not ledger activity.
func (r *PgxJournalRepository) ListTransactionsByAccountID(ctx context.Context, branchID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT t.transaction_id, t.journal_id, t.account_id, t.base_amount, t.original_amount,
		       t.currency_code, t.exchange_rate, t.transaction_type, t.notes,
		       t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
		       j.journal_date, j.description
		FROM transactions t
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE t.account_id = $1 AND j.branch_id = $2 AND j.status = 'POSTED'
	`
	orderByClause := `ORDER BY j.journal_date DESC, t.created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{accountID, branchID}

	if nextToken != nil && *nextToken != "" {
		lastJournalDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}

		cursorClause := `AND (j.journal_date, t.created_at) < ($3, $4)`
		args = append(args, lastJournalDate.String(), lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	type accountLine struct {
		transaction models.Transaction
		journalDate time.Time
		description sql.NullString
	}

	lines := make([]accountLine, 0, fetchLimit)
	for rows.Next() {
		var line accountLine
		var notes sql.NullString
		scanErr := rows.Scan(
			&line.transaction.TransactionID,
			&line.transaction.JournalID,
			&line.transaction.AccountID,
			&line.transaction.BaseAmount,
			&line.transaction.OriginalAmount,
			&line.transaction.CurrencyCode,
			&line.transaction.ExchangeRate,
			&line.transaction.TransactionType,
			&notes,
			&line.transaction.CreatedAt,
			&line.transaction.CreatedBy,
			&line.transaction.LastUpdatedAt,
			&line.transaction.LastUpdatedBy,
			&line.journalDate,
			&line.description,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for account "+accountID, scanErr)
		}
		line.transaction.Notes = notes.String
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for account "+accountID, err)
	}

	var nextTokenVal *string
	if len(lines) > limit {
		last := lines[limit-1]
		token := pagination.EncodeToken(domain.NewDateFromTime(last.journalDate), last.transaction.CreatedAt)
		nextTokenVal = &token
		lines = lines[:limit]
	}

	results := make([]domain.Transaction, len(lines))
	for i, line := range lines {
		txn := mapping.ToDomainTransaction(line.transaction)
		txn.JournalDate = domain.NewDateFromTime(line.journalDate)
		txn.JournalDescription = line.description.String
		results[i] = txn
	}
	return results, nextTokenVal, nil
}

// CountTransactionsByAccount returns the number of journal lines per account
// for a branch. Accounts with no lines are absent from the map.
func (r *PgxJournalRepository) CountTransactionsByAccount(ctx context.Context, branchID string) (map[string]int, error) {
	query := `
		SELECT t.account_id, COUNT(*)
		FROM transactions t
		JOIN journals j ON t.journal_id = j.journal_id
		WHERE j.branch_id = $1
		GROUP BY t.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count transactions per account for branch "+branchID, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var accountID string
		var count int
		if scanErr := rows.Scan(&accountID, &count); scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction count row", scanErr)
		}
		counts[accountID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction count rows", err)
	}
	return counts, nil
}
