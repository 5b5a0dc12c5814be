package models

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// The engine must produce a forecast for any input, so malformed numbers
// are coerced to safe defaults instead of being rejected. Upstream editing
// surfaces are responsible for actual validation.

// AmountFromFloat converts a float to a decimal amount. Non-finite values
// degrade to zero.
func AmountFromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}

	return decimal.NewFromFloat(f)
}

// ClampNonNegative returns d, or zero if d is negative.
func ClampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}

// ClampMin returns n, or min if n is smaller.
func ClampMin(n, min int) int {
	if n < min {
		return min
	}

	return n
}

// YearOrCurrent returns year, or the current calendar year if year is unset.
func YearOrCurrent(year int) int {
	if year <= 0 {
		return time.Now().Year()
	}

	return year
}
