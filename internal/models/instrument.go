package models

import "github.com/shopspring/decimal"

// ExistingDebtInstrument is a legacy bond or revolving loan the utility
// already services. The engine only derives schedules from instruments,
// it never mutates them.
type ExistingDebtInstrument struct {
	ID                   uint64          `json:"id"`
	Label                string          `json:"label"`
	FinancingType        FinancingType   `json:"financingType"`
	OutstandingPrincipal decimal.Decimal `json:"outstandingPrincipal"`
	InterestRate         decimal.Decimal `json:"interestRate"` // percent
	TermYears            int             `json:"termYears"`
	FirstPaymentYear     int             `json:"firstPaymentYear"`
	InterestOnlyYears    int             `json:"interestOnlyYears"`
}

// Normalize clamps the instrument to usable values.
func (i ExistingDebtInstrument) Normalize() ExistingDebtInstrument {
	if i.FinancingType != FinancingSRF {
		i.FinancingType = FinancingBond
	}

	i.OutstandingPrincipal = ClampNonNegative(i.OutstandingPrincipal)
	i.InterestRate = ClampNonNegative(i.InterestRate)
	i.TermYears = ClampMin(i.TermYears, 1)
	i.FirstPaymentYear = YearOrCurrent(i.FirstPaymentYear)

	if i.InterestOnlyYears < 0 {
		i.InterestOnlyYears = 0
	}
	if i.InterestOnlyYears > i.TermYears {
		i.InterestOnlyYears = i.TermYears
	}

	return i
}
