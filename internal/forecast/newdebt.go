package forecast

import (
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/ratecase/backend/internal/models"
)

// SRFInterestOnlyYears is the grace period on new revolving-loan draws.
// Unlike existing instruments, whose interest-only period is configured
// per instrument, every new SRF draw gets this fixed grace period.
const SRFInterestOnlyYears = 5

// YearAmount is an amount attributed to a calendar year.
type YearAmount struct {
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
}

// BondIssue is a single-year bullet issuance. Payments begin the year
// after issuance.
type BondIssue struct {
	Year               int             `json:"year"`
	Amount             decimal.Decimal `json:"amount"`
	PaymentStartYear   int             `json:"paymentStartYear"`
	AnnualPayment      decimal.Decimal `json:"annualPayment"`
	FirstYearInterest  decimal.Decimal `json:"firstYearInterest"`
	FirstYearPrincipal decimal.Decimal `json:"firstYearPrincipal"`
}

// RevolvingLoan is a single-year SRF draw with its grace period.
type RevolvingLoan struct {
	DrawYear              int             `json:"drawYear"`
	Principal             decimal.Decimal `json:"principal"`
	InterestOnlyYears     int             `json:"interestOnlyYears"`
	AmortizationStartYear int             `json:"amortizationStartYear"`
	AnnualPayment         decimal.Decimal `json:"annualPayment"`
}

// FinancingSchedule is the complete new-debt schedule of one funding
// source. It is not clipped to the projection horizon; the horizon only
// limits what enters the per-year accumulators.
type FinancingSchedule struct {
	FundingKey    models.FundingKey    `json:"fundingKey"`
	SourceName    string               `json:"sourceName"`
	FinancingType models.FinancingType `json:"financingType"`
	Issues        []BondIssue          `json:"issues,omitempty"`
	Loans         []RevolvingLoan      `json:"loans,omitempty"`
	InterestOnly  []YearAmount         `json:"interestOnly,omitempty"`
	Amortization  []YearAmount         `json:"amortization,omitempty"`
}

// DebtServiceSchedule aggregates new debt across all funding sources.
// All maps are clipped to the projection horizon.
type DebtServiceSchedule struct {
	ServiceByYear   map[int]decimal.Decimal               `json:"debtServiceByYear"`
	InterestByYear  map[int]decimal.Decimal               `json:"debtServiceInterestByYear"`
	PrincipalByYear map[int]decimal.Decimal               `json:"debtServicePrincipalByYear"`
	CashUsesByYear  map[int]decimal.Decimal               `json:"cashUsesByYear"`
	IssuedBySource  map[models.FundingKey]decimal.Decimal `json:"debtIssuedBySource"`
	IssuedByYear    map[int]decimal.Decimal               `json:"debtIssuedByYear"`
	Financing       []FinancingSchedule                   `json:"financingSchedules"`
}

// BuildDebtServiceSchedule aggregates the spend plan by funding source
// and financing type and emits issuance and payment schedules for the
// debt-financed share.
//
// Cash spend accumulates into CashUsesByYear, grant spend is dropped
// entirely, and bond/srf spend becomes per-source draws. Horizon
// clipping is per payment, not per instrument: a loan may straddle the
// horizon boundary with only its in-window payments counted.
func BuildDebtServiceSchedule(plan SpendPlan, assumptions []models.FundingSourceAssumption, startYear, projectionYears int) DebtServiceSchedule {
	startYear = models.YearOrCurrent(startYear)
	projectionYears = models.ClampMin(projectionYears, 1)
	horizon := func(year int) bool {
		return year >= startYear && year < startYear+projectionYears
	}

	byKey := make(map[models.FundingKey]models.FundingSourceAssumption, len(assumptions))
	for _, a := range assumptions {
		if _, ok := byKey[a.Key()]; ok {
			continue
		}
		byKey[a.Key()] = a.Normalize()
	}

	result := DebtServiceSchedule{
		ServiceByYear:   make(map[int]decimal.Decimal),
		InterestByYear:  make(map[int]decimal.Decimal),
		PrincipalByYear: make(map[int]decimal.Decimal),
		CashUsesByYear:  make(map[int]decimal.Decimal),
		IssuedBySource:  make(map[models.FundingKey]decimal.Decimal),
		IssuedByYear:    make(map[int]decimal.Decimal),
	}

	// Step 1: classify every year/source cell of the spend plan.
	draws := make(map[models.FundingKey]map[int]decimal.Decimal)
	for _, year := range plan.Years() {
		for _, key := range fundingKeys(plan[year].ByFundingSource) {
			amount := plan[year].ByFundingSource[key]
			if !amount.IsPositive() {
				continue
			}

			assumption, ok := byKey[key]
			if !ok {
				// No assumption means pay-go.
				assumption = models.FundingSourceAssumption{FinancingType: models.FinancingCash}
			}

			switch assumption.FinancingType {
			case models.FinancingGrant:
			case models.FinancingBond, models.FinancingSRF:
				if draws[key] == nil {
					draws[key] = make(map[int]decimal.Decimal)
				}
				draws[key][year] = draws[key][year].Add(amount)
			default:
				if horizon(year) {
					result.CashUsesByYear[year] = result.CashUsesByYear[year].Add(amount)
				}
			}
		}
	}

	// Steps 2 and 3: schedule each source's draws.
	for _, key := range fundingKeys(draws) {
		assumption := byKey[key]

		schedule := FinancingSchedule{
			FundingKey:    key,
			SourceName:    assumption.SourceName,
			FinancingType: assumption.FinancingType,
		}

		drawYears := make([]int, 0, len(draws[key]))
		for year := range draws[key] {
			drawYears = append(drawYears, year)
		}
		slices.Sort(drawYears)

		for _, drawYear := range drawYears {
			amount := draws[key][drawYear]

			if horizon(drawYear) {
				result.IssuedBySource[key] = result.IssuedBySource[key].Add(amount)
				result.IssuedByYear[drawYear] = result.IssuedByYear[drawYear].Add(amount)
			}

			if assumption.FinancingType == models.FinancingBond {
				schedule.Issues = append(schedule.Issues,
					scheduleBond(&result, assumption, drawYear, amount, horizon))
			} else {
				schedule.Loans = append(schedule.Loans,
					scheduleLoan(&result, &schedule, assumption, drawYear, amount, horizon))
			}
		}

		sortYearAmounts(schedule.InterestOnly)
		sortYearAmounts(schedule.Amortization)
		result.Financing = append(result.Financing, schedule)
	}

	return result
}

// scheduleBond amortizes a bullet issuance starting the year after the
// draw, accumulating the in-horizon payments.
func scheduleBond(result *DebtServiceSchedule, assumption models.FundingSourceAssumption, drawYear int, amount decimal.Decimal, horizon func(int) bool) BondIssue {
	periods := AmortizationSchedule(amount, assumption.InterestRate, assumption.TermYears)
	paymentStart := drawYear + 1

	for i, period := range periods {
		year := paymentStart + i
		if !horizon(year) {
			continue
		}

		result.ServiceByYear[year] = result.ServiceByYear[year].Add(period.Payment)
		result.InterestByYear[year] = result.InterestByYear[year].Add(period.Interest)
		result.PrincipalByYear[year] = result.PrincipalByYear[year].Add(period.Principal)
	}

	return BondIssue{
		Year:               drawYear,
		Amount:             amount,
		PaymentStartYear:   paymentStart,
		AnnualPayment:      LevelPayment(amount, assumption.InterestRate, assumption.TermYears),
		FirstYearInterest:  periods[0].Interest,
		FirstYearPrincipal: periods[0].Principal,
	}
}

// scheduleLoan services an SRF draw: the fixed grace period of
// interest-only payments starting the year after the draw, then level
// amortization over the full term.
func scheduleLoan(result *DebtServiceSchedule, schedule *FinancingSchedule, assumption models.FundingSourceAssumption, drawYear int, amount decimal.Decimal, horizon func(int) bool) RevolvingLoan {
	rate := assumption.InterestRate.Div(hundred)
	interestOnly := amount.Mul(rate)

	for i := 1; i <= SRFInterestOnlyYears; i++ {
		year := drawYear + i
		schedule.InterestOnly = addYearAmount(schedule.InterestOnly, year, interestOnly)

		if !horizon(year) {
			continue
		}

		result.ServiceByYear[year] = result.ServiceByYear[year].Add(interestOnly)
		result.InterestByYear[year] = result.InterestByYear[year].Add(interestOnly)
	}

	amortizationStart := drawYear + 1 + SRFInterestOnlyYears
	periods := AmortizationSchedule(amount, assumption.InterestRate, assumption.TermYears)
	for i, period := range periods {
		year := amortizationStart + i
		schedule.Amortization = addYearAmount(schedule.Amortization, year, period.Payment)

		if !horizon(year) {
			continue
		}

		result.ServiceByYear[year] = result.ServiceByYear[year].Add(period.Payment)
		result.InterestByYear[year] = result.InterestByYear[year].Add(period.Interest)
		result.PrincipalByYear[year] = result.PrincipalByYear[year].Add(period.Principal)
	}

	return RevolvingLoan{
		DrawYear:              drawYear,
		Principal:             amount,
		InterestOnlyYears:     SRFInterestOnlyYears,
		AmortizationStartYear: amortizationStart,
		AnnualPayment:         LevelPayment(amount, assumption.InterestRate, assumption.TermYears),
	}
}

// fundingKeys returns the map's keys in a stable order: unassigned
// first, then ascending source ids.
func fundingKeys[V any](m map[models.FundingKey]V) []models.FundingKey {
	keys := make([]models.FundingKey, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool {
		iID, iAssigned := keys[i].SourceID()
		jID, jAssigned := keys[j].SourceID()
		if iAssigned != jAssigned {
			return !iAssigned
		}

		return iID < jID
	})

	return keys
}

// addYearAmount merges an amount into a per-year series, summing
// overlapping sub-schedules from draws in different years.
func addYearAmount(series []YearAmount, year int, amount decimal.Decimal) []YearAmount {
	for i := range series {
		if series[i].Year == year {
			series[i].Amount = series[i].Amount.Add(amount)
			return series
		}
	}

	return append(series, YearAmount{Year: year, Amount: amount})
}

func sortYearAmounts(series []YearAmount) {
	sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
}
