// Progress helpers for savings plans.
//
// This file contains the pure functions that turn a plan's target and
// the total amount paid so far into a percentage and a remaining
// amount. They never touch the network and are safe to call with
// arbitrary inputs.
package core

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CalculateProgress returns the percentage of the target covered by
// totalPaid, truncated toward zero and clamped to [0, 100].
//
// A target of zero or less yields 0 so callers never divide by zero.
//
// Examples:
//
//	CalculateProgress(1000, 500)  -> 50
//	CalculateProgress(1000, 999)  -> 99 (99.9 truncates, does not round up)
//	CalculateProgress(1000, 2000) -> 100 (clamped)
func CalculateProgress(target, totalPaid decimal.Decimal) int {
	if target.Sign() <= 0 {
		return 0
	}
	pct := totalPaid.Div(target).Mul(hundred).IntPart()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// RemainingAmount returns how much is still missing to reach the
// target. Never negative: once the target is met the remainder is 0.
func RemainingAmount(target, totalPaid decimal.Decimal) decimal.Decimal {
	r := target.Sub(totalPaid)
	if r.Sign() < 0 {
		return decimal.Zero
	}
	return r
}
