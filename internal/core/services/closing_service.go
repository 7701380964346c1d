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
	"github.com/shopspring/decimal"
)

// ErrMissingRetainedEarnings indicates the configured retained earnings account
// does not exist or cannot receive the closing posting. The generator refuses
// to guess a substitute account.
var ErrMissingRetainedEarnings = errors.New("retained earnings account is missing or not postable")

// closingService synthesizes the period-closing journal that zeroes net revenue
// and expense activity into retained earnings.
type closingService struct {
	journalRepo      portsrepo.JournalReader
	accountSvc       portssvc.AccountSvcFacade
	baseCurrencyCode string
}

// NewClosingService creates a new ClosingService.
func NewClosingService(journalRepo portsrepo.JournalReader, accountSvc portssvc.AccountSvcFacade, baseCurrencyCode string) portssvc.ClosingSvcFacade {
	return &closingService{
		journalRepo:      journalRepo,
		accountSvc:       accountSvc,
		baseCurrencyCode: baseCurrencyCode,
	}
}

// Ensure closingService implements the portssvc.ClosingSvcFacade interface
var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// accountActivity accumulates posted base-currency debits and credits for one account.
type accountActivity struct {
	debits  decimal.Decimal
	credits decimal.Decimal
}

// GenerateClosingJournal builds the closing journal for [startDate, endDate].
// It returns (nil, nil) when no revenue or expense account had activity in the
// period, so repeated calls for a quiet period stay a no-op. The journal is
// returned as an unpersisted DRAFT; the caller posts it through the normal
// validation path.
// Implements portssvc.ClosingSvcFacade
func (s *closingService) GenerateClosingJournal(ctx context.Context, branchID string, req dto.GenerateClosingRequest, userID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end date %s precedes start date %s", apperrors.ErrValidation, req.EndDate, req.StartDate)
	}

	accounts, err := s.accountSvc.ListAccounts(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	var retainedEarnings *domain.Account
	for i := range accounts {
		if accounts[i].AccountID == req.RetainedEarningsAccountID {
			retainedEarnings = &accounts[i]
			break
		}
	}
	if retainedEarnings == nil {
		return nil, fmt.Errorf("%w: account %s not found in branch %s", ErrMissingRetainedEarnings, req.RetainedEarningsAccountID, branchID)
	}
	if retainedEarnings.IsHeader || !retainedEarnings.IsActive || retainedEarnings.AccountType != domain.Equity {
		return nil, fmt.Errorf("%w: account %s (%s) is not a postable equity account", ErrMissingRetainedEarnings, retainedEarnings.Code, retainedEarnings.AccountID)
	}

	journals, err := s.journalRepo.FindPostedJournalsInRange(ctx, branchID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load posted journals for period: %w", err)
	}

	// Sum posted debit/credit activity per revenue and expense account.
	closable := make(map[string]bool, len(accounts))
	for _, acc := range accounts {
		if acc.IsHeader {
			continue
		}
		if acc.AccountType == domain.Revenue || acc.AccountType == domain.Expense {
			closable[acc.AccountID] = true
		}
	}

	activity := make(map[string]*accountActivity)
	for _, journal := range journals {
		for _, txn := range journal.Transactions {
			if !closable[txn.AccountID] {
				continue
			}
			act, ok := activity[txn.AccountID]
			if !ok {
				act = &accountActivity{debits: decimal.Zero, credits: decimal.Zero}
				activity[txn.AccountID] = act
			}
			if txn.TransactionType == domain.Debit {
				act.debits = act.debits.Add(txn.BaseAmount())
			} else {
				act.credits = act.credits.Add(txn.BaseAmount())
			}
		}
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	newLine := func(accountID string, txnType domain.TransactionType, amount decimal.Decimal) domain.Transaction {
		return domain.Transaction{
			TransactionID:   uuid.NewString(),
			JournalID:       journalID,
			AccountID:       accountID,
			Amount:          domain.NewBaseMoney(amount, s.baseCurrencyCode),
			TransactionType: txnType,
			Notes:           fmt.Sprintf("Period closing %s to %s", req.StartDate, req.EndDate),
			AuditFields:     audit,
		}
	}

	// Iterate the chart in its stored order so line order is deterministic.
	var lines []domain.Transaction
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero
	for _, acc := range accounts {
		act, ok := activity[acc.AccountID]
		if !ok {
			continue
		}
		// Reverse the account's net balance. A revenue account with net credit
		// activity gets a debit; an expense account with net debit activity gets
		// a credit. Accounts that net to zero emit no line.
		net := act.credits.Sub(act.debits)
		switch {
		case net.IsPositive():
			lines = append(lines, newLine(acc.AccountID, domain.Debit, net))
			totalDebits = totalDebits.Add(net)
		case net.IsNegative():
			lines = append(lines, newLine(acc.AccountID, domain.Credit, net.Neg()))
			totalCredits = totalCredits.Add(net.Neg())
		}
	}

	if len(lines) == 0 {
		logger.Info("No revenue or expense activity in period, nothing to close",
			slog.String("branch_id", branchID),
			slog.String("start_date", req.StartDate.String()),
			slog.String("end_date", req.EndDate.String()))
		return nil, nil
	}

	// The retained earnings line carries the aggregate net income, making the
	// journal balance exactly by construction.
	netIncome := totalDebits.Sub(totalCredits)
	switch {
	case netIncome.IsPositive():
		lines = append(lines, newLine(retainedEarnings.AccountID, domain.Credit, netIncome))
		totalCredits = totalCredits.Add(netIncome)
	case netIncome.IsNegative():
		lines = append(lines, newLine(retainedEarnings.AccountID, domain.Debit, netIncome.Neg()))
		totalDebits = totalDebits.Add(netIncome.Neg())
	}

	journal := &domain.Journal{
		JournalID:    journalID,
		BranchID:     branchID,
		JournalDate:  req.EndDate,
		Description:  fmt.Sprintf("Period closing %s to %s", req.StartDate, req.EndDate),
		Reference:    fmt.Sprintf("CLOSE-%s", req.EndDate),
		CurrencyCode: s.baseCurrencyCode,
		ExchangeRate: decimal.NewFromInt(1),
		Status:       domain.Draft,
		Amount:       totalDebits,
		Transactions: lines,
		AuditFields:  audit,
	}

	logger.Info("Closing journal generated",
		slog.String("journal_id", journalID),
		slog.String("branch_id", branchID),
		slog.Int("line_count", len(lines)),
		slog.String("net_income", netIncome.String()))
	return journal, nil
}
