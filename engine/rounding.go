package engine

import "github.com/shopspring/decimal"

// =============================================================================
// ROUNDING POLICY - Shared by allocated cost and balance
// =============================================================================

var halfCurrencyUnit = decimal.New(50, -2) // 0.50

// RoundToWholeCurrency rounds a monetary value to whole currency units,
// symmetric around zero:
//
//	0.49 -> 0.00    0.50 -> 1.00
//	-0.49 -> 0.00   -0.50 -> -1.00
//
// The value is first normalized to 2 decimal places (half-up), then the
// absolute fractional part decides the direction and the original sign is
// reapplied. Used uniformly so displayed figures stay internally consistent.
func RoundToWholeCurrency(value decimal.Decimal) decimal.Decimal {
	scaled := value.Round(2)

	negative := scaled.Sign() < 0
	abs := scaled.Abs()

	integer := abs.Truncate(0)
	cents := abs.Sub(integer)

	if cents.GreaterThanOrEqual(halfCurrencyUnit) {
		integer = integer.Add(decimal.New(1, 0))
	}

	result := integer.Round(2)
	if negative {
		return result.Neg()
	}
	return result
}
