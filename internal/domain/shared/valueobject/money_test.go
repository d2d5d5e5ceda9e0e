package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), CNY)
		require.NoError(t, err)
		assert.Equal(t, CNY, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("123.45", CNY)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.RequireFromString("123.45")))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", CNY)
		assert.Error(t, err)
	})

	t.Run("must variant panics on garbage", func(t *testing.T) {
		assert.Panics(t, func() { MustNewMoneyFromString("x", CNY) })
	})
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in      string
		want    Currency
		wantErr bool
	}{
		{"", DefaultCurrency, false},
		{"usd", USD, false},
		{" EUR ", EUR, false},
		{"EURO", "", true},
		{"E1R", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCurrency(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		m1 := MustNewMoneyFromString("100.50", CNY)
		m2 := MustNewMoneyFromString("50.25", CNY)
		result, err := m1.Add(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.RequireFromString("150.75")))
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		_, err := Zero(CNY).Add(Zero(USD))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})

	t.Run("MustAdd panics on mismatch", func(t *testing.T) {
		assert.Panics(t, func() { Zero(CNY).MustAdd(Zero(USD)) })
	})
}

func TestMoneySubtract(t *testing.T) {
	m1 := MustNewMoneyFromString("10", CNY)
	m2 := MustNewMoneyFromString("2.5", CNY)
	result, err := m1.Subtract(m2)
	require.NoError(t, err)
	assert.Equal(t, "7.50", result.StringFixed(2))

	_, err = m1.Subtract(Zero(EUR))
	assert.Error(t, err)
}

func TestMoneyMultiply(t *testing.T) {
	m := MustNewMoneyFromString("12.5", CNY)
	assert.Equal(t, "37.50", m.MultiplyByInt(3).StringFixed(2))
	assert.Equal(t, "11.25", m.Multiply(decimal.RequireFromString("0.9")).StringFixed(2))
}

func TestMoneyRoundAndFormat(t *testing.T) {
	m := MustNewMoneyFromString("10.005", CNY)
	assert.Equal(t, "10.01", m.Round(2).StringFixed(2))
	assert.Equal(t, "10.01 CNY", m.String())
}

func TestMoneyDisplay(t *testing.T) {
	assert.Equal(t, "30", MustNewMoneyFromString("30.00", CNY).Display())
	assert.Equal(t, "27.00", MustNewMoneyFromString("27.0000001", CNY).Display())
	assert.Equal(t, "4.50", MustNewMoneyFromString("4.5", CNY).Display())
}

func TestMoneyEquals(t *testing.T) {
	assert.True(t, MustNewMoneyFromString("1.0", CNY).Equals(MustNewMoneyFromString("1", CNY)))
	assert.False(t, MustNewMoneyFromString("1", CNY).Equals(MustNewMoneyFromString("1", USD)))
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, Zero(CNY).IsZero())
	assert.True(t, MustNewMoneyFromString("-1", CNY).IsNegative())
	assert.False(t, MustNewMoneyFromString("1", CNY).IsNegative())
}
