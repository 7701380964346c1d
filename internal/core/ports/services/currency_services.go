package services

import (
	"context"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/parceldesk/ledger_core_app/internal/dto"
)

// CurrencySvcFacade manages the registry of accepted currencies.
type CurrencySvcFacade interface {
	// CreateCurrency registers a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
