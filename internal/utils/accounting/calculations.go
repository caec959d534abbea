package accounting

import "github.com/shopspring/decimal"

// Tolerance is the balancing tolerance for two-decimal currency rounding.
// Document-level sums that differ by at most this amount are considered equal.
var Tolerance = decimal.RequireFromString("0.01")

// MinPostingAmount and MaxPostingAmount bound any single non-zero debit or
// credit value on a journal line.
var (
	MinPostingAmount = decimal.RequireFromString("0.01")
	MaxPostingAmount = decimal.RequireFromString("999999999.99")
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// WithinTolerance reports whether a and b differ by at most Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// IsZeroWithinTolerance reports whether d is within Tolerance of zero.
func IsZeroWithinTolerance(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Tolerance)
}

// InPostingRange reports whether a non-zero posting value lies inside the
// accepted [MinPostingAmount, MaxPostingAmount] range.
func InPostingRange(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(MinPostingAmount) && d.LessThanOrEqual(MaxPostingAmount)
}

// ConvertToBase converts a transaction-currency amount into base currency at
// the given rate, rounded to two decimals.
func ConvertToBase(amount, rate decimal.Decimal) decimal.Decimal {
	return Round2(amount.Mul(rate))
}
