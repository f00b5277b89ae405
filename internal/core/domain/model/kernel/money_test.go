package kernel_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid amount", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("15.5"), "usd")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "USD", m.Currency())
		assert.Equal(t, "15.50 USD", m.String())
		assert.Equal(t, int64(1550), m.MinorUnits())
		assert.True(t, m.IsPositive())
	})

	t.Run("zero is allowed", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero, "EUR")

		require.NoError(t, err)
		assert.False(t, m.IsPositive())
	})

	t.Run("negative amount is out of range", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1), "EUR")
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("bad currency", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(1), "EURO")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoney(decimal.RequireFromString("15"), "USD")
	b, _ := kernel.NewMoney(decimal.RequireFromString("15.00"), "USD")
	c, _ := kernel.NewMoney(decimal.RequireFromString("15"), "EUR")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestMoney_MinorUnits(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		minor    int64
		str      string
	}{
		{"0.005", "USD", 1, "0.01 USD"},
		{"12.34", "EUR", 1234, "12.34 EUR"},
		{"1000", "JPY", 1000, "1000 JPY"},
		{"1000.5", "jpy", 1001, "1001 JPY"},
		{"1.005", "KWD", 1005, "1.005 KWD"},
		{"2.0004", "BHD", 2000, "2.000 BHD"},
	}
	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.currency, func(t *testing.T) {
			m, err := kernel.NewMoney(decimal.RequireFromString(tt.amount), tt.currency)
			require.NoError(t, err)

			assert.Equal(t, tt.minor, m.MinorUnits())
			assert.Equal(t, tt.str, m.String())
		})
	}
}

func TestMinorUnitExponent(t *testing.T) {
	assert.Equal(t, int32(2), kernel.MinorUnitExponent("USD"))
	assert.Equal(t, int32(0), kernel.MinorUnitExponent("krw"))
	assert.Equal(t, int32(3), kernel.MinorUnitExponent("OMR"))
}

func TestNewWeight(t *testing.T) {
	w, err := kernel.NewWeight(decimal.RequireFromString("2.35"))
	require.NoError(t, err)
	require.NoError(t, w.Validate())
	assert.Equal(t, "2.35 kg", w.String())

	_, err = kernel.NewWeight(decimal.Zero)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero kernel.Weight
	require.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)
}
