package money

import (
	"fmt"
	"math"
)

// Money keeps amounts in integer euro cents to avoid floating point issues.
// The booking API exchanges plain decimal numbers in a single currency, so
// conversion happens only at the wire boundary.
type Money int64

// FromDecimal converts a decimal euro amount into cents, rounding to the
// nearest cent.
func FromDecimal(v float64) Money {
	return Money(math.Round(v * 100))
}

// FromCents wraps a raw cent amount.
func FromCents(v int64) Money {
	return Money(v)
}

// Decimal returns the amount as a decimal euro value for presentation.
func (m Money) Decimal() float64 {
	return float64(m) / 100
}

// Cents returns the raw cent amount.
func (m Money) Cents() int64 {
	return int64(m)
}

// Multiply multiplies the amount by the provided factor.
func (m Money) Multiply(times int64) Money {
	return Money(int64(m) * times)
}

// IsZero returns true if the amount equals zero.
func (m Money) IsZero() bool {
	return m == 0
}

// IsNegative returns true for amounts below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// Min returns the smaller of two amounts.
func Min(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}

// String renders the amount as a two-decimal euro value.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Decimal())
}
