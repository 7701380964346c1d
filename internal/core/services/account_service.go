package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

var (
	// ErrAccountCodeTaken is returned when an account code already exists in the branch.
	ErrAccountCodeTaken = errors.New("account code already exists in this branch")
	// ErrUnknownCurrency is returned when an account references an unregistered currency.
	ErrUnknownCurrency = errors.New("currency code is not registered")
	// ErrAccountInUse is returned when deactivating an account that still carries a balance.
	ErrAccountInUse = errors.New("account has a non-zero balance and cannot be deactivated")
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		currencySvc: currencySvc,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates a new account within a branch.
// Implements portssvc.AccountSvcFacade
func (s *accountService) CreateAccount(ctx context.Context, branchID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	existing, err := s.accountRepo.ListAccountsByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to check account code uniqueness: %w", err)
	}
	for _, acc := range existing {
		if strings.EqualFold(acc.Code, code) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, ErrAccountCodeTaken.Error())
		}
	}

	if req.CurrencyCode != "" {
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, req.CurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrUnknownCurrency.Error())
			}
			return nil, fmt.Errorf("failed to resolve account currency: %w", err)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		BranchID:     branchID,
		Code:         code,
		Name:         strings.TrimSpace(req.Name),
		AccountType:  req.AccountType,
		IsHeader:     req.IsHeader,
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Description:  req.Description,
		IsActive:     true,
		Balance:      decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("branch_id", branchID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("branch_id", branchID))
	return &account, nil
}

// GetAccountByID retrieves a single account, scoped to the branch.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByID(ctx context.Context, branchID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.BranchID != branchID {
		// Accounts of other branches are invisible, not forbidden.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountByIDs retrieves multiple accounts keyed by ID, scoped to the branch.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByIDs(ctx context.Context, branchID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for id, acc := range accounts {
		if acc.BranchID != branchID {
			delete(accounts, id)
		}
	}
	return accounts, nil
}

// ListAccounts retrieves the full chart of accounts for a branch.
// Implements portssvc.AccountSvcFacade
func (s *accountService) ListAccounts(ctx context.Context, branchID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccountsByBranch(ctx, branchID)
}

// UpdateAccount updates mutable fields of an account.
// Implements portssvc.AccountSvcFacade
func (s *accountService) UpdateAccount(ctx context.Context, branchID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, branchID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		if !*req.IsActive && !account.Balance.IsZero() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAccountInUse.Error())
		}
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account so it can no longer receive postings.
// Implements portssvc.AccountSvcFacade
func (s *accountService) DeactivateAccount(ctx context.Context, branchID string, accountID string, userID string) error {
	inactive := false
	_, err := s.UpdateAccount(ctx, branchID, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, userID)
	return err
}
