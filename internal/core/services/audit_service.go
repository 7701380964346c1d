package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/middleware"
	"github.com/parceldesk/ledger_core_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// auditService scans the ledger for structural problems ahead of a period lock.
// It is read-only: every check is independent and additive.
type auditService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountSvc  portssvc.AccountSvcFacade
	billingRepo portsrepo.BillingReader
	epsilon     decimal.Decimal
}

// NewAuditService creates a new AuditService.
func NewAuditService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, billingRepo portsrepo.BillingReader, balanceEpsilon decimal.Decimal) portssvc.AuditSvcFacade {
	return &auditService{
		journalRepo: journalRepo,
		accountSvc:  accountSvc,
		billingRepo: billingRepo,
		epsilon:     balanceEpsilon,
	}
}

// Ensure auditService implements the portssvc.AuditSvcFacade interface
var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// RunAudit scans accounts, posted journals, and open billing documents.
// Implements portssvc.AuditSvcFacade
func (s *auditService) RunAudit(ctx context.Context, branchID string) ([]domain.HealthIssue, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	issues := []domain.HealthIssue{}

	unbalanced, err := s.checkUnbalancedJournals(ctx, branchID)
	if err != nil {
		return nil, err
	}
	issues = append(issues, unbalanced...)

	duplicates, err := s.checkDuplicateAccounts(ctx, branchID)
	if err != nil {
		return nil, err
	}
	issues = append(issues, duplicates...)

	unposted, err := s.checkUnpostedDocuments(ctx, branchID)
	if err != nil {
		return nil, err
	}
	issues = append(issues, unposted...)

	logger.Info("Ledger health audit completed",
		slog.String("branch_id", branchID),
		slog.Int("issue_count", len(issues)),
		slog.Bool("has_critical", domain.HasCritical(issues)))
	return issues, nil
}

// checkUnbalancedJournals reports one CRITICAL issue per POSTED journal whose
// debit and credit sums drift beyond the balance epsilon.
func (s *auditService) checkUnbalancedJournals(ctx context.Context, branchID string) ([]domain.HealthIssue, error) {
	journals, err := s.journalRepo.FindPostedJournals(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load posted journals for audit: %w", err)
	}

	var issues []domain.HealthIssue
	for _, journal := range journals {
		if accounting.IsBalancedWithin(journal.Transactions, s.epsilon) {
			continue
		}
		debits, credits := accounting.DebitCreditTotals(journal.Transactions)
		reference := journal.Reference
		if reference == "" {
			reference = journal.JournalID
		}
		issues = append(issues, domain.HealthIssue{
			Severity: domain.SeverityCritical,
			Type:     domain.IssueUnbalancedEntry,
			Message:  fmt.Sprintf("Journal %s is unbalanced: debits %s, credits %s", reference, debits.String(), credits.String()),
			Meta: map[string]any{
				"journalID": journal.JournalID,
				"reference": reference,
				"debits":    debits.String(),
				"credits":   credits.String(),
				"delta":     debits.Sub(credits).Abs().String(),
			},
		})
	}
	return issues, nil
}

// DuplicateAccountMeta describes one member of a duplicate account group in
// the issue's meta payload.
type DuplicateAccountMeta struct {
	AccountID  string `json:"accountID"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	UsageCount int    `json:"usageCount"`
}

// checkDuplicateAccounts reports one WARNING per group of accounts sharing a
// normalized code or a case-insensitive name. Each member carries its journal
// line usage count so the operator can judge which duplicate is safe to remove.
func (s *auditService) checkDuplicateAccounts(ctx context.Context, branchID string) ([]domain.HealthIssue, error) {
	accounts, err := s.accountSvc.ListAccounts(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts for audit: %w", err)
	}

	usage, err := s.journalRepo.CountTransactionsByAccount(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to count account usage for audit: %w", err)
	}

	byCode := make(map[string][]domain.Account)
	byName := make(map[string][]domain.Account)
	for _, acc := range accounts {
		code := strings.ToUpper(strings.TrimSpace(acc.Code))
		name := strings.ToLower(strings.TrimSpace(acc.Name))
		if code != "" {
			byCode[code] = append(byCode[code], acc)
		}
		if name != "" {
			byName[name] = append(byName[name], acc)
		}
	}

	var issues []domain.HealthIssue
	seenGroups := make(map[string]struct{})

	report := func(key string, group []domain.Account, matchedBy string) {
		// The same pair can collide on both code and name; report it once.
		ids := make([]string, len(group))
		for i, acc := range group {
			ids[i] = acc.AccountID
		}
		sort.Strings(ids)
		signature := strings.Join(ids, "|")
		if _, seen := seenGroups[signature]; seen {
			return
		}
		seenGroups[signature] = struct{}{}

		members := make([]DuplicateAccountMeta, len(group))
		for i, acc := range group {
			members[i] = DuplicateAccountMeta{
				AccountID:  acc.AccountID,
				Code:       acc.Code,
				Name:       acc.Name,
				UsageCount: usage[acc.AccountID],
			}
		}
		issues = append(issues, domain.HealthIssue{
			Severity: domain.SeverityWarning,
			Type:     domain.IssueDuplicateCOA,
			Message:  fmt.Sprintf("%d accounts share the same %s %q", len(group), matchedBy, key),
			Meta: map[string]any{
				"matchedBy": matchedBy,
				"accounts":  members,
			},
		})
	}

	codes := sortedKeys(byCode)
	for _, code := range codes {
		if group := byCode[code]; len(group) > 1 {
			report(code, group, "code")
		}
	}
	names := sortedKeys(byName)
	for _, name := range names {
		if group := byName[name]; len(group) > 1 {
			report(name, group, "name")
		}
	}
	return issues, nil
}

// checkUnpostedDocuments reports billing documents still in draft whose due
// date has passed. These are owned by the billing collaborator but gate
// period-closing readiness.
func (s *auditService) checkUnpostedDocuments(ctx context.Context, branchID string) ([]domain.HealthIssue, error) {
	today := domain.Today()
	var issues []domain.HealthIssue

	invoices, err := s.billingRepo.ListOpenInvoices(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open invoices for audit: %w", err)
	}
	for _, inv := range invoices {
		if inv.Status != domain.DocumentDraft || !inv.DueDate.Before(today) {
			continue
		}
		issues = append(issues, domain.HealthIssue{
			Severity: domain.SeverityWarning,
			Type:     domain.IssueUnpostedDocument,
			Message:  fmt.Sprintf("Invoice %s is still a draft but was due %s", inv.InvoiceNo, inv.DueDate),
			Meta: map[string]any{
				"documentType": "invoice",
				"documentID":   inv.InvoiceID,
				"documentNo":   inv.InvoiceNo,
				"dueDate":      inv.DueDate.String(),
			},
		})
	}

	bills, err := s.billingRepo.ListOpenBills(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open bills for audit: %w", err)
	}
	for _, bill := range bills {
		if bill.Status != domain.DocumentDraft || !bill.DueDate.Before(today) {
			continue
		}
		issues = append(issues, domain.HealthIssue{
			Severity: domain.SeverityWarning,
			Type:     domain.IssueUnpostedDocument,
			Message:  fmt.Sprintf("Bill %s is still a draft but was due %s", bill.BillNo, bill.DueDate),
			Meta: map[string]any{
				"documentType": "bill",
				"documentID":   bill.BillID,
				"documentNo":   bill.BillNo,
				"dueDate":      bill.DueDate.String(),
			},
		})
	}
	return issues, nil
}

// sortedKeys returns the map keys in sorted order for deterministic reports.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
