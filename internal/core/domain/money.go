package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidExchangeRate indicates a non-positive exchange rate was supplied.
var ErrInvalidExchangeRate = errors.New("exchange rate must be positive")

// Money couples a transaction-currency amount with its base-currency value.
// The invariant BaseAmount = OriginalAmount / ExchangeRate holds by construction:
// both constructors derive one side from the other, callers never set the pair
// independently.
type Money struct {
	BaseAmount     decimal.Decimal `json:"baseAmount"`     // Amount in the ledger base currency
	OriginalAmount decimal.Decimal `json:"originalAmount"` // Amount in the transaction currency
	CurrencyCode   string          `json:"currencyCode"`   // Transaction currency (e.g., "USD")
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`   // Units of transaction currency per base unit
}

// NewMoney builds a Money from a transaction-currency amount and its rate.
func NewMoney(original decimal.Decimal, currencyCode string, rate decimal.Decimal) (Money, error) {
	base, err := ToBaseAmount(original, rate)
	if err != nil {
		return Money{}, err
	}
	return Money{
		BaseAmount:     base,
		OriginalAmount: original,
		CurrencyCode:   currencyCode,
		ExchangeRate:   rate,
	}, nil
}

// NewBaseMoney builds a Money already expressed in the base currency (rate 1).
func NewBaseMoney(base decimal.Decimal, currencyCode string) Money {
	return Money{
		BaseAmount:     base,
		OriginalAmount: base,
		CurrencyCode:   currencyCode,
		ExchangeRate:   decimal.NewFromInt(1),
	}
}

// ToBaseAmount converts a transaction-currency amount into the base currency.
// Every base-currency total in the ledger must come through here so that balance
// checks and closing sums agree on rounding.
func ToBaseAmount(amount decimal.Decimal, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidExchangeRate
	}
	return amount.Div(rate), nil
}

// FromBaseAmount converts a base-currency amount into the transaction currency.
func FromBaseAmount(amount decimal.Decimal, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidExchangeRate
	}
	return amount.Mul(rate), nil
}
