package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/dto"
	"github.com/parceldesk/ledger_core_app/internal/middleware"
	"github.com/parceldesk/ledger_core_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalUnbalanced    = errors.New("journal debits and credits do not balance")
	ErrJournalMinEntries    = errors.New("journal must have at least two transaction entries")
	ErrJournalMinAccounts   = errors.New("journal must affect at least two different accounts")
	ErrAccountNotFound      = errors.New("account not found")
	ErrHeaderAccountPosting = errors.New("journal line targets a header account")
	ErrPeriodLocked         = errors.New("journal date falls within the locked period")
	ErrCurrencyMismatch     = errors.New("account currency does not match journal currency")
	ErrNotDraft             = errors.New("journal must be a draft to be posted")
	ErrDescriptionMissing   = errors.New("journal description is required")
)

// ValidateJournal decides whether a journal is internally consistent and postable.
// accounts must contain every account referenced by the journal's transactions.
// The period-lock check only applies in NORMAL mode; in ADJUSTMENT mode the caller
// has obtained operator confirmation and routes the journal through the
// temporary-unlock sequence of the period lock service instead.
func ValidateJournal(journal domain.Journal, accounts map[string]domain.Account, lockDate *domain.Date, mode domain.PostingMode, epsilon decimal.Decimal) error {
	if len(journal.Transactions) < 2 {
		return ErrJournalMinEntries
	}

	accountSet := make(map[string]struct{})
	for _, txn := range journal.Transactions {
		accountSet[txn.AccountID] = struct{}{}
	}
	if len(accountSet) < 2 {
		return ErrJournalMinAccounts
	}

	for _, txn := range journal.Transactions {
		acc, found := accounts[txn.AccountID]
		if !found {
			return fmt.Errorf("%w: ID %s", ErrAccountNotFound, txn.AccountID)
		}
		if acc.IsHeader {
			return fmt.Errorf("%w: account %s (%s)", ErrHeaderAccountPosting, acc.Code, acc.AccountID)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.AccountID)
		}
		if acc.CurrencyCode != "" && acc.CurrencyCode != journal.CurrencyCode {
			return fmt.Errorf("%w: account currency %s does not match journal currency %s for account %s", ErrCurrencyMismatch, acc.CurrencyCode, journal.CurrencyCode, acc.AccountID)
		}
		if txn.Amount.OriginalAmount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: transaction amount must be positive for account %s", apperrors.ErrValidation, txn.AccountID)
		}
	}

	// Drafts are work in progress and exempt from the balance invariant.
	if journal.IsPosted() {
		if delta := accounting.BalanceDelta(journal.Transactions); delta.GreaterThan(epsilon) {
			debits, credits := accounting.DebitCreditTotals(journal.Transactions)
			return fmt.Errorf("%w: debits sum is %s and credits sum is %s", ErrJournalUnbalanced, debits.String(), credits.String())
		}
	}

	if mode == domain.ModeNormal && lockDate != nil && journal.JournalDate.OnOrBefore(*lockDate) {
		return fmt.Errorf("%w: journal date %s is on or before lock date %s", ErrPeriodLocked, journal.JournalDate, *lockDate)
	}

	if journal.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", domain.ErrInvalidExchangeRate, journal.ExchangeRate.String())
	}

	return nil
}

// journalService provides core journal and transaction operations.
type journalService struct {
	journalRepo   portsrepo.JournalRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
	currencySvc   portssvc.CurrencySvcFacade
	periodLockSvc portssvc.PeriodLockSvcFacade
	epsilon       decimal.Decimal
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, currencySvc portssvc.CurrencySvcFacade, periodLockSvc portssvc.PeriodLockSvcFacade, balanceEpsilon decimal.Decimal) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:   journalRepo,
		accountSvc:    accountSvc,
		currencySvc:   currencySvc,
		periodLockSvc: periodLockSvc,
		epsilon:       balanceEpsilon,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildJournal converts a create request into domain objects. The exchange rate
// is checked up front so Money construction cannot fail below.
func (s *journalService) buildJournal(branchID string, req dto.CreateJournalRequest, creatorUserID string) (domain.Journal, error) {
	if req.Description == "" {
		return domain.Journal{}, ErrDescriptionMissing
	}
	if len(req.Transactions) < 2 {
		return domain.Journal{}, ErrJournalMinEntries
	}
	if req.ExchangeRate.LessThanOrEqual(decimal.Zero) {
		return domain.Journal{}, fmt.Errorf("%w: got %s", domain.ErrInvalidExchangeRate, req.ExchangeRate.String())
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	status := req.Status
	if status == "" {
		status = domain.Posted
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	transactions := make([]domain.Transaction, len(req.Transactions))
	for i, txnReq := range req.Transactions {
		if txnReq.Amount.LessThanOrEqual(decimal.Zero) {
			return domain.Journal{}, fmt.Errorf("%w: transaction amount must be positive for account %s", apperrors.ErrValidation, txnReq.AccountID)
		}
		amount, err := domain.NewMoney(txnReq.Amount, req.CurrencyCode, req.ExchangeRate)
		if err != nil {
			return domain.Journal{}, err
		}
		transactions[i] = domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       txnReq.AccountID,
			Amount:          amount,
			TransactionType: txnReq.TransactionType,
			Notes:           txnReq.Notes,
			AuditFields:     audit,
		}
	}

	journal := domain.Journal{
		JournalID:    journalID,
		BranchID:     branchID,
		JournalDate:  req.Date,
		Description:  req.Description,
		Reference:    req.Reference,
		CurrencyCode: req.CurrencyCode,
		ExchangeRate: req.ExchangeRate,
		Status:       status,
		Transactions: transactions,
		AuditFields:  audit,
	}

	debits, _ := accounting.DebitCreditTotals(transactions)
	journal.Amount = debits

	return journal, nil
}

// fetchAccounts loads and branch-checks every account referenced by the journal.
func (s *journalService) fetchAccounts(ctx context.Context, branchID string, journal domain.Journal) (map[string]domain.Account, error) {
	ids := make([]string, 0, len(journal.Transactions))
	seen := make(map[string]struct{}, len(journal.Transactions))
	for _, txn := range journal.Transactions {
		if _, ok := seen[txn.AccountID]; ok {
			continue
		}
		seen[txn.AccountID] = struct{}{}
		ids = append(ids, txn.AccountID)
	}

	accounts, err := s.accountSvc.GetAccountByIDs(ctx, branchID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		if _, found := accounts[id]; !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
	}
	return accounts, nil
}

// balanceChanges computes the signed base-currency delta per account.
func (s *journalService) balanceChanges(journal domain.Journal, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal)
	for _, txn := range journal.Transactions {
		acc := accounts[txn.AccountID]
		signedAmount, err := accounting.CalculateSignedAmount(txn, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
		}
		changes[txn.AccountID] = changes[txn.AccountID].Add(signedAmount)
	}
	return changes, nil
}

// validateAndPrepare runs the full validation path for a candidate journal and
// returns the balance deltas to apply if it posts.
func (s *journalService) validateAndPrepare(ctx context.Context, branchID string, journal domain.Journal, mode domain.PostingMode) (map[string]decimal.Decimal, error) {
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, journal.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not registered", apperrors.ErrValidation, journal.CurrencyCode)
		}
		return nil, fmt.Errorf("failed to validate currency '%s': %w", journal.CurrencyCode, err)
	}

	accounts, err := s.fetchAccounts(ctx, branchID, journal)
	if err != nil {
		return nil, err
	}

	lockDate, err := s.periodLockSvc.GetLockDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read period lock state: %w", err)
	}

	if err := ValidateJournal(journal, accounts, lockDate, mode, s.epsilon); err != nil {
		return nil, err
	}

	if !journal.IsPosted() {
		// Drafts do not touch account balances.
		return map[string]decimal.Decimal{}, nil
	}
	return s.balanceChanges(journal, accounts)
}

// CreateJournal creates a new journal entry with its transactions after validation.
// Implements portssvc.JournalSvcFacade
func (s *journalService) CreateJournal(ctx context.Context, branchID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.buildJournal(branchID, req, creatorUserID)
	if err != nil {
		return nil, err
	}

	changes, err := s.validateAndPrepare(ctx, branchID, journal, domain.ModeNormal)
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournal(ctx, journal, journal.Transactions, changes); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal created successfully", slog.String("journal_id", journal.JournalID), slog.String("branch_id", branchID), slog.String("status", string(journal.Status)))
	journal.Transactions = nil
	return &journal, nil
}

// PostAdjustmentJournal posts a journal into a locked period via the
// unlock/post/relock sequence. Validation runs in ADJUSTMENT mode, which skips
// the lock-date rejection; everything else (balance, header accounts, rate)
// still applies. Implements portssvc.JournalSvcFacade
func (s *journalService) PostAdjustmentJournal(ctx context.Context, branchID string, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Adjustments are always posted; a draft needs no lock bypass.
	req.Status = domain.Posted

	journal, err := s.buildJournal(branchID, req, creatorUserID)
	if err != nil {
		return nil, err
	}

	changes, err := s.validateAndPrepare(ctx, branchID, journal, domain.ModeAdjustment)
	if err != nil {
		return nil, err
	}

	err = s.periodLockSvc.WithTemporaryUnlock(ctx, creatorUserID, func(ctx context.Context) error {
		return s.journalRepo.SaveJournal(ctx, journal, journal.Transactions, changes)
	})
	if err != nil {
		logger.Error("Failed to post adjustment journal", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, err
	}

	logger.Info("Adjustment journal posted into locked period", slog.String("journal_id", journal.JournalID), slog.String("branch_id", branchID), slog.String("journal_date", journal.JournalDate.String()))
	journal.Transactions = nil
	return &journal, nil
}

// PostDraftJournal transitions a draft to POSTED after full re-validation.
// Implements portssvc.JournalSvcFacade
func (s *journalService) PostDraftJournal(ctx context.Context, branchID string, journalID string, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.GetJournalByID(ctx, branchID, journalID)
	if err != nil {
		return nil, err
	}
	if journal.Status != domain.Draft {
		return nil, fmt.Errorf("%w: journal status is %s", ErrNotDraft, journal.Status)
	}

	candidate := *journal
	candidate.Status = domain.Posted

	changes, err := s.validateAndPrepare(ctx, branchID, candidate, domain.ModeNormal)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkJournalPosted(ctx, journalID, changes, userID, now); err != nil {
		logger.Error("Failed to mark journal posted", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to post draft journal: %w", err)
	}

	logger.Info("Draft journal posted", slog.String("journal_id", journalID), slog.String("branch_id", branchID))
	candidate.LastUpdatedAt = now
	candidate.LastUpdatedBy = userID
	candidate.Transactions = nil
	return &candidate, nil
}

// GetJournalByID retrieves a specific journal entry with its transactions.
// Implements portssvc.JournalSvcFacade
func (s *journalService) GetJournalByID(ctx context.Context, branchID string, journalID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	// Obscure existence across branches.
	if journal.BranchID != branchID {
		logger.Warn("Journal found but belongs to different branch", slog.String("journal_id", journalID), slog.String("journal_branch", journal.BranchID), slog.String("requested_branch", branchID))
		return nil, apperrors.ErrNotFound
	}

	transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch transactions for journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve transactions for journal %s: %w", journalID, apperrors.ErrInternal)
	}

	for i := range transactions {
		transactions[i].JournalID = journalID
		transactions[i].JournalDate = journal.JournalDate
		transactions[i].JournalDescription = journal.Description
	}
	journal.Transactions = transactions

	return journal, nil
}

// ListJournals retrieves a paginated list of journals for a specific branch.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ListJournals(ctx context.Context, branchID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	journals, nextToken, err := s.journalRepo.ListJournalsByBranch(ctx, branchID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journals from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	journalResponses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		if params.IncludeTransactions {
			transactions, err := s.journalRepo.FindTransactionsByJournalID(ctx, journals[i].JournalID)
			if err != nil {
				logger.Warn("Failed to fetch transactions for journal", "error", err, "journal_id", journals[i].JournalID)
			} else {
				journals[i].Transactions = transactions
			}
		}
		journalResponses[i] = dto.ToJournalResponse(&journals[i])
	}

	logger.Info("Journals listed successfully", "count", len(journals), "includeTxn", params.IncludeTransactions)
	return &dto.ListJournalsResponse{
		Journals:  journalResponses,
		NextToken: nextToken,
	}, nil
}

// ListTransactionsByAccount retrieves transactions for a specific account within a branch.
// Implements portssvc.JournalSvcFacade
func (s *journalService) ListTransactionsByAccount(ctx context.Context, branchID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	transactions, nextToken, err := s.journalRepo.ListTransactionsByAccountID(ctx, branchID, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions by account from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	logger.Info("Transactions listed successfully for account", "count", len(transactions))
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(transactions),
		NextToken:    nextToken,
	}, nil
}
