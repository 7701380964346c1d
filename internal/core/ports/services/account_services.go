package services

import (
	"context"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/parceldesk/ledger_core_app/internal/dto"
)

// AccountSvcFacade defines the business operations for the chart of accounts.
type AccountSvcFacade interface {
	// CreateAccount creates a new account within a branch.
	CreateAccount(ctx context.Context, branchID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves a single account, scoped to the branch.
	GetAccountByID(ctx context.Context, branchID string, accountID string) (*domain.Account, error)

	// GetAccountByIDs retrieves multiple accounts keyed by ID, scoped to the branch.
	GetAccountByIDs(ctx context.Context, branchID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the full chart of accounts for a branch.
	ListAccounts(ctx context.Context, branchID string) ([]domain.Account, error)

	// UpdateAccount updates mutable fields of an account.
	UpdateAccount(ctx context.Context, branchID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account so it can no longer receive postings.
	DeactivateAccount(ctx context.Context, branchID string, accountID string, userID string) error
}
