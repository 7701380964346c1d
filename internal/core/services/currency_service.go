package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/parceldesk/ledger_core_app/internal/apperrors"
	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	portsrepo "github.com/parceldesk/ledger_core_app/internal/core/ports/repositories"
	portssvc "github.com/parceldesk/ledger_core_app/internal/core/ports/services"
	"github.com/parceldesk/ledger_core_app/internal/dto"
)

// ErrCurrencyExists is returned when registering a currency code that is already present.
var ErrCurrencyExists = errors.New("currency code is already registered")

type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

// Ensure currencyService implements the portssvc.CurrencySvcFacade interface
var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a new currency.
// Implements portssvc.CurrencySvcFacade
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CurrencyCode))

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicate, ErrCurrencyExists.Error())
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency code: %w", err)
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its code.
// Implements portssvc.CurrencySvcFacade
func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

// ListCurrencies retrieves all registered currencies.
// Implements portssvc.CurrencySvcFacade
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
