package forecast

import (
	"github.com/shopspring/decimal"

	"github.com/ratecase/backend/internal/models"
)

var daysPerYear = decimal.NewFromInt(365)

// ForecastInput is one complete forecast scenario. The engine treats it
// as a read-only snapshot; re-invoke Calculate on any change.
type ForecastInput struct {
	Timelines       []models.Timeline                `json:"projectTimelines"`
	OperatingBudget []models.BudgetRow               `json:"operatingBudget"`
	Config          models.FinancialConfig           `json:"financialConfig"`
	FundingSources  []models.FundingSource           `json:"fundingSources"`
	Assumptions     []models.FundingSourceAssumption `json:"fundingSourceAssumptions"`
	ExistingDebt    ExistingDebtInput                `json:"existingDebt"`
}

// ForecastRow is the pro forma statement of one fiscal year.
type ForecastRow struct {
	Year int `json:"year"`

	OperatingRevenue         decimal.Decimal `json:"operatingRevenue"`
	RateIncreasePercent      decimal.Decimal `json:"rateIncreasePercent"`
	AdjustedOperatingRevenue decimal.Decimal `json:"adjustedOperatingRevenue"`
	NonOperatingRevenue      decimal.Decimal `json:"nonOperatingRevenue"`
	TotalOperatingExpenses   decimal.Decimal `json:"totalOperatingExpenses"`
	NetRevenueBeforeDebt     decimal.Decimal `json:"netRevenueBeforeDebt"`

	ExistingDebtService decimal.Decimal `json:"existingDebtService"`
	NewDebtService      decimal.Decimal `json:"newDebtService"`
	TotalDebtService    decimal.Decimal `json:"totalDebtService"`

	CapitalSpend    decimal.Decimal `json:"capitalSpend"`
	CashFundedCapex decimal.Decimal `json:"cashFundedCapex"`
	DebtIssued      decimal.Decimal `json:"debtIssued"`

	// CoverageRatio is null when there is no debt service: "no debt" is
	// a distinct state from "zero coverage".
	CoverageRatio                decimal.NullDecimal `json:"coverageRatio"`
	AdditionalRateIncreaseNeeded decimal.Decimal     `json:"additionalRateIncreaseNeeded"`

	OperatingCashFlow decimal.Decimal     `json:"operatingCashFlow"`
	EndingCashBalance decimal.Decimal     `json:"endingCashBalance"`
	DaysCashOnHand    decimal.NullDecimal `json:"daysCashOnHand"`
}

// ForecastTotals summarizes the horizon by its worst year, not by
// averages.
type ForecastTotals struct {
	MinCoverageRatio          decimal.NullDecimal `json:"minCoverageRatio"`
	MinDaysCashOnHand         decimal.NullDecimal `json:"minDaysCashOnHand"`
	MaxAdditionalRateIncrease decimal.Decimal     `json:"maxAdditionalRateIncrease"`
	TotalCapitalSpend         decimal.Decimal     `json:"totalCapitalSpend"`
	TotalDebtIssued           decimal.Decimal     `json:"totalDebtIssued"`
	EndingCashBalance         decimal.Decimal     `json:"endingCashBalance"`
}

// Forecast is the complete result of one engine run.
type Forecast struct {
	Rows         []ForecastRow        `json:"forecast"`
	SpendPlan    SpendPlan            `json:"spendPlan"`
	NewDebt      DebtServiceSchedule  `json:"newDebt"`
	ExistingDebt ExistingDebtSchedule `json:"existingDebt"`
	Totals       ForecastTotals       `json:"totals"`
}

// ResolveAssumptions guarantees a financing assumption for every funding
// source: explicit assumptions win, sources without one get a default
// inferred from their name.
func ResolveAssumptions(assumptions []models.FundingSourceAssumption, sources []models.FundingSource) []models.FundingSourceAssumption {
	resolved := make([]models.FundingSourceAssumption, 0, len(assumptions)+len(sources))
	seen := make(map[models.FundingKey]bool, len(assumptions))

	for _, a := range assumptions {
		if seen[a.Key()] {
			continue
		}

		seen[a.Key()] = true
		resolved = append(resolved, a.Normalize())
	}

	for _, source := range sources {
		key := models.AssignedFunding(source.ID)
		if seen[key] {
			continue
		}

		seen[key] = true
		resolved = append(resolved, models.DefaultAssumption(source))
	}

	return resolved
}

// Calculate runs the full forecast: it phases capital spend, schedules
// new and existing debt, and folds the pro forma recurrence over the
// fiscal years of the horizon, threading the running cash balance as an
// explicit carry. It never fails; malformed input degrades to defaults.
func Calculate(input ForecastInput) Forecast {
	cfg := input.Config.Normalize()

	rows := models.EnsureBudgetYears(input.OperatingBudget, cfg.StartYear, cfg.ProjectionYears)
	plan := BuildSpendPlan(input.Timelines, cfg.FiscalYearStartMonth)

	assumptions := ResolveAssumptions(input.Assumptions, input.FundingSources)
	newDebt := BuildDebtServiceSchedule(plan, assumptions, cfg.StartYear, cfg.ProjectionYears)

	existingInput := input.ExistingDebt
	existingInput.StartYear = cfg.StartYear
	existingInput.ProjectionYears = cfg.ProjectionYears
	existingDebt := BuildExistingDebtSchedule(existingInput)

	deps := yearInputs{
		config:          cfg,
		plan:            plan,
		newDebt:         newDebt,
		existingDebt:    existingDebt,
		useDebtSchedule: !input.ExistingDebt.Empty(),
	}

	forecast := Forecast{
		Rows:         make([]ForecastRow, 0, len(rows)),
		SpendPlan:    plan,
		NewDebt:      newDebt,
		ExistingDebt: existingDebt,
	}

	carry := cfg.StartingCashBalance
	for _, budgetRow := range rows {
		var row ForecastRow
		row, carry = forecastYear(deps, budgetRow, carry)
		forecast.Rows = append(forecast.Rows, row)
	}

	forecast.Totals = summarize(forecast.Rows, carry)

	return forecast
}

// yearInputs are the per-run constants of the fold.
type yearInputs struct {
	config          models.FinancialConfig
	plan            SpendPlan
	newDebt         DebtServiceSchedule
	existingDebt    ExistingDebtSchedule
	useDebtSchedule bool
}

// forecastYear computes one pro forma row from the year's budget row and
// the incoming cash balance, and returns the carry for the next year.
func forecastYear(deps yearInputs, budget models.BudgetRow, carry decimal.Decimal) (ForecastRow, decimal.Decimal) {
	year := budget.Year

	row := ForecastRow{
		Year:                   year,
		OperatingRevenue:       budget.OperatingRevenue,
		RateIncreasePercent:    budget.RateIncreasePercent,
		NonOperatingRevenue:    budget.NonOperatingRevenue,
		TotalOperatingExpenses: budget.TotalOperatingExpenses,
	}

	row.AdjustedOperatingRevenue = budget.OperatingRevenue.
		Mul(one.Add(budget.RateIncreasePercent.Div(hundred)))
	row.NetRevenueBeforeDebt = row.AdjustedOperatingRevenue.
		Add(row.NonOperatingRevenue).
		Sub(row.TotalOperatingExpenses)

	row.ExistingDebtService = budget.ExistingDebtService
	if deps.useDebtSchedule {
		row.ExistingDebtService = deps.existingDebt.TotalsByYear[year]
	}
	row.NewDebtService = deps.newDebt.ServiceByYear[year]
	row.TotalDebtService = row.ExistingDebtService.Add(row.NewDebtService)

	if row.TotalDebtService.IsPositive() {
		row.CoverageRatio = decimal.NewNullDecimal(row.NetRevenueBeforeDebt.Div(row.TotalDebtService))
	}

	// The rate increase needed on top of the budgeted one to reach the
	// coverage target, expressed against the pre-increase revenue base.
	// With zero operating revenue it stays 0 even when the target is
	// missed: no percentage of a zero base can close the gap.
	required := deps.config.TargetCoverageRatio.Mul(row.TotalDebtService)
	if row.NetRevenueBeforeDebt.LessThan(required) && row.OperatingRevenue.IsPositive() {
		row.AdditionalRateIncreaseNeeded = required.
			Sub(row.NetRevenueBeforeDebt).
			Div(row.OperatingRevenue).
			Mul(hundred)
	}

	if entry, ok := deps.plan[year]; ok {
		row.CapitalSpend = entry.TotalSpend
	}
	row.CashFundedCapex = deps.newDebt.CashUsesByYear[year]
	row.DebtIssued = deps.newDebt.IssuedByYear[year]

	row.OperatingCashFlow = row.NetRevenueBeforeDebt.Sub(row.TotalDebtService)
	carry = carry.Add(row.OperatingCashFlow).Sub(row.CashFundedCapex)
	row.EndingCashBalance = carry

	if row.TotalOperatingExpenses.IsPositive() {
		row.DaysCashOnHand = decimal.NewNullDecimal(
			carry.Div(row.TotalOperatingExpenses).Mul(daysPerYear))
	}

	return row, carry
}

// summarize reduces the rows to their worst-case policy metrics plus the
// cumulative spend and issuance.
func summarize(rows []ForecastRow, endingCash decimal.Decimal) ForecastTotals {
	totals := ForecastTotals{EndingCashBalance: endingCash}

	for _, row := range rows {
		if row.CoverageRatio.Valid {
			if !totals.MinCoverageRatio.Valid || row.CoverageRatio.Decimal.LessThan(totals.MinCoverageRatio.Decimal) {
				totals.MinCoverageRatio = row.CoverageRatio
			}
		}

		if row.DaysCashOnHand.Valid {
			if !totals.MinDaysCashOnHand.Valid || row.DaysCashOnHand.Decimal.LessThan(totals.MinDaysCashOnHand.Decimal) {
				totals.MinDaysCashOnHand = row.DaysCashOnHand
			}
		}

		if row.AdditionalRateIncreaseNeeded.GreaterThan(totals.MaxAdditionalRateIncrease) {
			totals.MaxAdditionalRateIncrease = row.AdditionalRateIncreaseNeeded
		}

		totals.TotalCapitalSpend = totals.TotalCapitalSpend.Add(row.CapitalSpend)
		totals.TotalDebtIssued = totals.TotalDebtIssued.Add(row.DebtIssued)
	}

	return totals
}
