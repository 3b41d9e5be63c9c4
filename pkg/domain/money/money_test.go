package money_test

import (
	"testing"

	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		cents   int64
		wantErr bool
	}{
		{"100", 10000, false},
		{"50.25", 5025, false},
		{"-200.00", -20000, false},
		{"0.1", 10, false},
		{"0.105", 0, true},
		{"12.345", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"1.500", 150, false}, // trailing zeros are not precision
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := money.Parse(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cents, m.Cents())
		})
	}
}

func TestNew_RejectsSubCent(t *testing.T) {
	t.Parallel()
	_, err := money.New(10.005)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	m, err := money.New(10.05)
	require.NoError(t, err)
	assert.Equal(t, int64(1005), m.Cents())
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	a := money.FromCents(10000) // 100.00
	b := money.FromCents(5025)  // 50.25

	assert.Equal(t, int64(15025), a.Add(b).Cents())
	assert.Equal(t, int64(4975), a.Sub(b).Cents())
	assert.Equal(t, int64(-10000), a.Neg().Cents())
	assert.True(t, b.LessThan(a))
	assert.False(t, a.Sub(a).IsNegative())

	// 10 shares at $50.00 each.
	price := money.FromCents(5000)
	assert.Equal(t, int64(50000), price.Times(10).Cents())
}

func TestString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1234.50", money.FromCents(123450).String())
	assert.Equal(t, "0.00", money.Zero.String())
	assert.Equal(t, "-0.05", money.FromCents(-5).String())
}
