// Package money implements the monetary value object used for cash
// balances and notional values.
//
// Invariants:
//   - Amounts are stored as int64 cents; arithmetic never touches
//     floating point.
//   - Inputs with more than two decimal places are rejected with
//     domain.ErrInvalidAmount.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stockfolio/server/pkg/domain"
)

// Money is an amount of USD in cents.
type Money struct {
	cents int64
}

// Zero is the zero monetary value.
var Zero = Money{}

// Parse converts a decimal string such as "150.25" or "-20" into Money.
// Returns domain.ErrInvalidAmount if the string does not parse or
// carries more than two decimal places.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, s)
	}
	return fromDecimal(d)
}

// New converts a float into Money, rejecting values that cannot be
// represented with two decimal places.
func New(amount float64) (Money, error) {
	return fromDecimal(decimal.NewFromFloat(amount))
}

// FromFloatRounded converts a market price into Money, rounding to the
// nearest cent. Used when pricing trades off the float candle series.
func FromFloatRounded(amount float64) Money {
	cents := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0)
	return Money{cents: cents.IntPart()}
}

// FromCents builds Money from a raw cent count, as stored in the
// database.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	if d.Exponent() < -2 {
		// Trailing zeros are fine; real sub-cent precision is not.
		if !d.Equal(d.Round(2)) {
			return Money{}, fmt.Errorf("%w: more than 2 decimal places", domain.ErrInvalidAmount)
		}
	}
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return Money{}, fmt.Errorf("%w: more than 2 decimal places", domain.ErrInvalidAmount)
	}
	return Money{cents: cents.IntPart()}, nil
}

// Cents returns the raw cent count.
func (m Money) Cents() int64 { return m.cents }

// Float returns the amount in dollars. For presentation only.
func (m Money) Float() float64 { return float64(m.cents) / 100 }

// Add returns m + other.
func (m Money) Add(other Money) Money { return Money{cents: m.cents + other.cents} }

// Sub returns m - other.
func (m Money) Sub(other Money) Money { return Money{cents: m.cents - other.cents} }

// Neg returns -m.
func (m Money) Neg() Money { return Money{cents: -m.cents} }

// Times returns the notional value of n units priced at m each.
func (m Money) Times(n int64) Money { return Money{cents: m.cents * n} }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.cents < 0 }

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool { return m.cents > 0 }

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool { return m.cents < other.cents }

// Equal reports whether the two amounts match.
func (m Money) Equal(other Money) bool { return m.cents == other.cents }

// String renders the amount as a plain decimal, e.g. "1234.50".
func (m Money) String() string {
	return decimal.New(m.cents, -2).StringFixed(2)
}
