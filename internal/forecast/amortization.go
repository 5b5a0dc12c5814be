package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/ratecase/backend/internal/models"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// LevelPayment returns the constant annual payment that amortizes
// principal over termYears at ratePercent annual interest
// (P·r·(1+r)^n / ((1+r)^n − 1)). A zero rate degrades to straight-line
// principal/term.
func LevelPayment(principal, ratePercent decimal.Decimal, termYears int) decimal.Decimal {
	termYears = models.ClampMin(termYears, 1)
	principal = models.ClampNonNegative(principal)
	rate := models.ClampNonNegative(ratePercent).Div(hundred)

	term := decimal.NewFromInt(int64(termYears))
	if rate.IsZero() {
		return principal.Div(term)
	}

	pow := one.Add(rate).Pow(term)
	return principal.Mul(rate).Mul(pow).Div(pow.Sub(one))
}

// AmortizationPeriod is one year of an amortization schedule.
type AmortizationPeriod struct {
	Period           int             `json:"period"`
	Payment          decimal.Decimal `json:"payment"`
	Interest         decimal.Decimal `json:"interest"`
	Principal        decimal.Decimal `json:"principal"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// AmortizationSchedule builds the level-payment schedule for one
// instrument. The principal portion of each period is floored at zero,
// and the final period repays the remaining balance exactly so the
// schedule cannot drift away from a zero payoff.
func AmortizationSchedule(principal, ratePercent decimal.Decimal, termYears int) []AmortizationPeriod {
	termYears = models.ClampMin(termYears, 1)
	principal = models.ClampNonNegative(principal)
	rate := models.ClampNonNegative(ratePercent).Div(hundred)

	payment := LevelPayment(principal, ratePercent, termYears)
	remaining := principal

	schedule := make([]AmortizationPeriod, 0, termYears)
	for period := 1; period <= termYears; period++ {
		interest := remaining.Mul(rate)

		principalPart := payment.Sub(interest)
		if principalPart.IsNegative() {
			principalPart = decimal.Zero
		}
		if period == termYears || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}

		remaining = remaining.Sub(principalPart)
		schedule = append(schedule, AmortizationPeriod{
			Period:           period,
			Payment:          interest.Add(principalPart),
			Interest:         interest,
			Principal:        principalPart,
			RemainingBalance: remaining,
		})
	}

	return schedule
}
