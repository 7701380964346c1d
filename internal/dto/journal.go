package dto

import (
	"time"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines one journal line in a create request.
// Amount is expressed in the journal's transaction currency; the base-currency
// value is derived from the journal's exchange rate.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=DEBIT CREDIT"`
	Notes           string                 `json:"notes"`
}

// CreateJournalRequest defines the payload for creating a journal entry.
type CreateJournalRequest struct {
	Date         domain.Date                `json:"date" binding:"required,ledgerdate"`
	Description  string                     `json:"description" binding:"required"`
	Reference    string                     `json:"reference"`
	CurrencyCode string                     `json:"currencyCode" binding:"required,len=3"`
	ExchangeRate decimal.Decimal            `json:"exchangeRate" binding:"required"`
	Status       domain.JournalStatus       `json:"status" binding:"omitempty,oneof=DRAFT POSTED"`
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=2,dive"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	Amount          decimal.Decimal        `json:"amount"`         // Base currency
	OriginalAmount  decimal.Decimal        `json:"originalAmount"` // Transaction currency
	CurrencyCode    string                 `json:"currencyCode"`
	ExchangeRate    decimal.Decimal        `json:"exchangeRate"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Notes           string                 `json:"notes,omitempty"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID    string                `json:"journalID"`
	BranchID     string                `json:"branchID"`
	Date         domain.Date           `json:"date"`
	Description  string                `json:"description"`
	Reference    string                `json:"reference,omitempty"`
	CurrencyCode string                `json:"currencyCode"`
	ExchangeRate decimal.Decimal       `json:"exchangeRate"`
	Status       domain.JournalStatus  `json:"status"`
	Amount       decimal.Decimal       `json:"amount"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	CreatedBy    string                `json:"createdBy"`
}

// ListJournalsParams holds parameters for listing journals.
type ListJournalsParams struct {
	Limit               int     `form:"limit"`
	NextToken           *string `form:"nextToken"`
	IncludeTransactions bool    `form:"includeTransactions"`
}

// ListJournalsResponse is the paginated journal listing.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListTransactionsParams holds parameters for listing an account's transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is the paginated transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount.BaseAmount,
		OriginalAmount:  txn.Amount.OriginalAmount,
		CurrencyCode:    txn.Amount.CurrencyCode,
		ExchangeRate:    txn.Amount.ExchangeRate,
		TransactionType: txn.TransactionType,
		Notes:           txn.Notes,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:    j.JournalID,
		BranchID:     j.BranchID,
		Date:         j.JournalDate,
		Description:  j.Description,
		Reference:    j.Reference,
		CurrencyCode: j.CurrencyCode,
		ExchangeRate: j.ExchangeRate,
		Status:       j.Status,
		Amount:       j.Amount,
		Transactions: ToTransactionResponses(j.Transactions),
		CreatedAt:    j.CreatedAt,
		CreatedBy:    j.CreatedBy,
	}
}
