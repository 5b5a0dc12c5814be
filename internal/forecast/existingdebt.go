package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/ratecase/backend/internal/models"
)

// ExistingDebtInput collects everything needed to schedule the debt the
// utility already services: a sparse map of manual year totals plus the
// defined legacy instruments.
type ExistingDebtInput struct {
	ManualTotals    map[int]decimal.Decimal         `json:"manualTotals"`
	Instruments     []models.ExistingDebtInstrument `json:"instruments"`
	StartYear       int                             `json:"startYear"`
	ProjectionYears int                             `json:"projectionYears"`
}

// Empty reports whether no existing debt was supplied at all.
func (i ExistingDebtInput) Empty() bool {
	return len(i.ManualTotals) == 0 && len(i.Instruments) == 0
}

// InstrumentSummary is the horizon-clipped schedule of one instrument.
type InstrumentSummary struct {
	InstrumentID   uint64                  `json:"instrumentId"`
	Label          string                  `json:"label"`
	FinancingType  models.FinancingType    `json:"financingType"`
	AnnualPayment  decimal.Decimal         `json:"annualPayment"`
	PaymentsByYear map[int]decimal.Decimal `json:"paymentsByYear"`
}

// ExistingDebtSchedule is the unified existing-debt schedule, keyed and
// clipped to the projection horizon.
type ExistingDebtSchedule struct {
	ManualByYear    map[int]decimal.Decimal `json:"manualByYear"`
	TotalsByYear    map[int]decimal.Decimal `json:"totalsByYear"`
	InterestByYear  map[int]decimal.Decimal `json:"interestByYear"`
	PrincipalByYear map[int]decimal.Decimal `json:"principalByYear"`
	Instruments     []InstrumentSummary     `json:"instrumentSummaries"`
}

// BuildExistingDebtSchedule combines manual year totals with
// instrument-level amortization into a unified schedule.
//
// Bond instruments amortize immediately from their first payment year.
// SRF instruments service interest only for their configured grace
// period (capped at the term), then amortize over the remaining
// periods. An instrument with zero outstanding principal produces an
// empty, but present, schedule entry.
func BuildExistingDebtSchedule(input ExistingDebtInput) ExistingDebtSchedule {
	startYear := models.YearOrCurrent(input.StartYear)
	projectionYears := models.ClampMin(input.ProjectionYears, 1)
	horizon := func(year int) bool {
		return year >= startYear && year < startYear+projectionYears
	}

	result := ExistingDebtSchedule{
		ManualByYear:    make(map[int]decimal.Decimal),
		TotalsByYear:    make(map[int]decimal.Decimal),
		InterestByYear:  make(map[int]decimal.Decimal),
		PrincipalByYear: make(map[int]decimal.Decimal),
		Instruments:     make([]InstrumentSummary, 0, len(input.Instruments)),
	}

	for year, amount := range input.ManualTotals {
		if !horizon(year) {
			continue
		}

		amount = models.ClampNonNegative(amount)
		result.ManualByYear[year] = result.ManualByYear[year].Add(amount)
		result.TotalsByYear[year] = result.TotalsByYear[year].Add(amount)
	}

	for _, instrument := range input.Instruments {
		result.Instruments = append(result.Instruments,
			scheduleInstrument(&result, instrument.Normalize(), horizon))
	}

	return result
}

func scheduleInstrument(result *ExistingDebtSchedule, instrument models.ExistingDebtInstrument, horizon func(int) bool) InstrumentSummary {
	summary := InstrumentSummary{
		InstrumentID:   instrument.ID,
		Label:          instrument.Label,
		FinancingType:  instrument.FinancingType,
		PaymentsByYear: make(map[int]decimal.Decimal),
	}

	if instrument.OutstandingPrincipal.IsZero() {
		return summary
	}

	interestOnlyYears := 0
	if instrument.FinancingType == models.FinancingSRF {
		interestOnlyYears = instrument.InterestOnlyYears
	}

	rate := instrument.InterestRate.Div(hundred)
	interestOnly := instrument.OutstandingPrincipal.Mul(rate)
	for i := 0; i < interestOnlyYears; i++ {
		year := instrument.FirstPaymentYear + i
		if !horizon(year) {
			continue
		}

		summary.PaymentsByYear[year] = summary.PaymentsByYear[year].Add(interestOnly)
		result.TotalsByYear[year] = result.TotalsByYear[year].Add(interestOnly)
		result.InterestByYear[year] = result.InterestByYear[year].Add(interestOnly)
	}

	amortizationYears := instrument.TermYears - interestOnlyYears
	if amortizationYears <= 0 {
		return summary
	}

	summary.AnnualPayment = LevelPayment(instrument.OutstandingPrincipal, instrument.InterestRate, amortizationYears)

	amortizationStart := instrument.FirstPaymentYear + interestOnlyYears
	for i, period := range AmortizationSchedule(instrument.OutstandingPrincipal, instrument.InterestRate, amortizationYears) {
		year := amortizationStart + i
		if !horizon(year) {
			continue
		}

		summary.PaymentsByYear[year] = summary.PaymentsByYear[year].Add(period.Payment)
		result.TotalsByYear[year] = result.TotalsByYear[year].Add(period.Payment)
		result.InterestByYear[year] = result.InterestByYear[year].Add(period.Interest)
		result.PrincipalByYear[year] = result.PrincipalByYear[year].Add(period.Principal)
	}

	return summary
}
