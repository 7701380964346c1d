package dto

import (
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Code         string             `json:"code" binding:"required,max=16"`
	Name         string             `json:"name" binding:"required,max=100"`
	AccountType  domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	IsHeader     bool               `json:"isHeader"`
	CurrencyCode string             `json:"currencyCode" binding:"omitempty,len=3"`
	Description  string             `json:"description"`
}

// UpdateAccountRequest defines the payload for updating an account. Nil fields are untouched.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID    string             `json:"accountID"`
	BranchID     string             `json:"branchID"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	AccountType  domain.AccountType `json:"accountType"`
	IsHeader     bool               `json:"isHeader"`
	CurrencyCode string             `json:"currencyCode,omitempty"`
	Description  string             `json:"description,omitempty"`
	IsActive     bool               `json:"isActive"`
	Balance      decimal.Decimal    `json:"balance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		BranchID:     a.BranchID,
		Code:         a.Code,
		Name:         a.Name,
		AccountType:  a.AccountType,
		IsHeader:     a.IsHeader,
		CurrencyCode: a.CurrencyCode,
		Description:  a.Description,
		IsActive:     a.IsActive,
		Balance:      a.Balance,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
