package kernel

import (
	"fmt"
	"math"

	"dispatch/internal/pkg/errs"
)

// Money is a non-negative monetary amount in the smallest currency unit.
// Cash-on-delivery sums and handover amounts never carry fractions of that
// unit, so an integer representation avoids float drift in the ledgers.
type Money struct {
	amount int64
}

// NewMoney creates a Money value, rejecting negative amounts.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount, 0, int64(math.MaxInt64))
	}
	return Money{amount: amount}, nil
}

// Amount returns the raw amount.
func (m Money) Amount() int64 {
	return m.amount
}

// Add returns the sum of m and delta. The delta may be negative, but a
// negative result is rejected: collected totals are monotone and ledger
// amounts never go below zero.
func (m Money) Add(delta int64) (Money, error) {
	result := m.amount + delta
	if result < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", result, 0, int64(math.MaxInt64))
	}
	return Money{amount: result}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount > other.amount
}

// IsEqual compares two amounts.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount for logs.
func (m Money) String() string {
	return fmt.Sprintf("%d", m.amount)
}
