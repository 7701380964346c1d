package domain_test

import (
	"testing"

	"github.com/parceldesk/ledger_core_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := domain.NewMoney(decimal.NewFromInt(4000), "THB", decimal.NewFromInt(40))
	require.NoError(t, err)

	assert.True(t, m.BaseAmount.Equal(decimal.NewFromInt(100)), "base = original / rate")
	assert.True(t, m.OriginalAmount.Equal(decimal.NewFromInt(4000)))
	assert.Equal(t, "THB", m.CurrencyCode)
}

func TestNewMoney_InvalidRate(t *testing.T) {
	tests := []struct {
		name string
		rate decimal.Decimal
	}{
		{"zero rate", decimal.Zero},
		{"negative rate", decimal.NewFromInt(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewMoney(decimal.NewFromInt(100), "USD", tt.rate)
			assert.ErrorIs(t, err, domain.ErrInvalidExchangeRate)
		})
	}
}

func TestNewBaseMoney(t *testing.T) {
	m := domain.NewBaseMoney(decimal.NewFromFloat(12.34), "USD")

	assert.True(t, m.BaseAmount.Equal(m.OriginalAmount))
	assert.True(t, m.ExchangeRate.Equal(decimal.NewFromInt(1)))
}

func TestBaseConversionRoundTrip(t *testing.T) {
	rate := decimal.NewFromFloat(1.25)
	original := decimal.NewFromInt(500)

	base, err := domain.ToBaseAmount(original, rate)
	require.NoError(t, err)

	back, err := domain.FromBaseAmount(base, rate)
	require.NoError(t, err)
	assert.True(t, back.Equal(original))
}

func TestFromBaseAmount_InvalidRate(t *testing.T) {
	_, err := domain.FromBaseAmount(decimal.NewFromInt(10), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidExchangeRate)
}
