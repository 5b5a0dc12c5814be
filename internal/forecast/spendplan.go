// Package forecast implements the financial forecasting and debt
// scheduling engine: time-phasing of capital spend into fiscal years,
// amortization schedules for new and existing debt, and the annual
// pro forma recurrence.
//
// The engine is a pure function of its inputs. It never mutates them,
// holds no state and never fails: malformed numeric input degrades to
// safe defaults.
package forecast

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/ratecase/backend/internal/models"
	"github.com/ratecase/backend/internal/types"
)

var twelve = decimal.NewFromInt(12)

// SpendPlanEntry is the capital spend of one fiscal year, attributed to
// funding sources.
type SpendPlanEntry struct {
	DesignSpend       decimal.Decimal                        `json:"designSpend"`
	ConstructionSpend decimal.Decimal                        `json:"constructionSpend"`
	ProgramSpend      decimal.Decimal                        `json:"programSpend"`
	TotalSpend        decimal.Decimal                        `json:"totalSpend"`
	ByFundingSource   map[models.FundingKey]decimal.Decimal `json:"byFundingSource"`
}

// SpendPlan maps fiscal years to their capital spend.
type SpendPlan map[int]*SpendPlanEntry

// Years returns the plan's fiscal years in ascending order.
func (p SpendPlan) Years() []int {
	years := make([]int, 0, len(p))
	for year := range p {
		years = append(years, year)
	}
	slices.Sort(years)

	return years
}

func (p SpendPlan) entry(year int) *SpendPlanEntry {
	e, ok := p[year]
	if !ok {
		e = &SpendPlanEntry{ByFundingSource: make(map[models.FundingKey]decimal.Decimal)}
		p[year] = e
	}

	return e
}

type spendKind int

const (
	spendDesign spendKind = iota
	spendConstruction
	spendProgram
)

func (p SpendPlan) add(year int, kind spendKind, key models.FundingKey, amount decimal.Decimal) {
	e := p.entry(year)

	switch kind {
	case spendDesign:
		e.DesignSpend = e.DesignSpend.Add(amount)
	case spendConstruction:
		e.ConstructionSpend = e.ConstructionSpend.Add(amount)
	case spendProgram:
		e.ProgramSpend = e.ProgramSpend.Add(amount)
	}

	e.TotalSpend = e.TotalSpend.Add(amount)
	e.ByFundingSource[key] = e.ByFundingSource[key].Add(amount)
}

// BuildSpendPlan converts project and program timelines into a
// year-indexed, funding-source-attributed spend plan.
//
// Phase budgets are spread evenly over the phase's months and each
// month's share is attributed to the fiscal year containing it. The
// even monthly allocation is deliberate: spend is assumed uniform
// within a phase, there is no S-curve or front-loading.
func BuildSpendPlan(timelines []models.Timeline, fiscalYearStartMonth int) SpendPlan {
	plan := make(SpendPlan)
	for _, timeline := range timelines {
		phaseTimeline(plan, timeline, fiscalYearStartMonth)
	}

	return plan
}

// TimelineSpend is the spend plan of a single timeline, used for
// project-level reporting.
type TimelineSpend struct {
	TimelineID uint64              `json:"timelineId"`
	Type       models.TimelineType `json:"type"`
	FundingKey models.FundingKey   `json:"fundingKey"`
	Plan       SpendPlan           `json:"plan"`
}

// BuildSpendBreakdown produces the same allocation as BuildSpendPlan at
// timeline granularity.
func BuildSpendBreakdown(timelines []models.Timeline, fiscalYearStartMonth int) []TimelineSpend {
	breakdown := make([]TimelineSpend, 0, len(timelines))
	for _, timeline := range timelines {
		plan := make(SpendPlan)
		phaseTimeline(plan, timeline, fiscalYearStartMonth)

		breakdown = append(breakdown, TimelineSpend{
			TimelineID: timeline.ID,
			Type:       timeline.Type,
			FundingKey: timeline.FundingKey(),
			Plan:       plan,
		})
	}

	return breakdown
}

func phaseTimeline(plan SpendPlan, timeline models.Timeline, fiscalYearStartMonth int) {
	key := timeline.FundingKey()

	if timeline.Type == models.TimelineProgram {
		phaseProgram(plan, timeline, key, fiscalYearStartMonth)
		return
	}

	phaseBudget(plan, spendDesign, key, timeline.EffectiveDesignBudget(),
		timeline.DesignStart, timeline.DesignDurationMonths, fiscalYearStartMonth)
	phaseBudget(plan, spendConstruction, key, timeline.ConstructionBudget,
		timeline.ConstructionStart, timeline.ConstructionDurationMonths, fiscalYearStartMonth)
}

// phaseBudget spreads a phase budget evenly over consecutive months
// starting at start. Non-positive budgets contribute nothing, so the
// plan never carries phantom zero entries.
//
// The final month absorbs the division remainder so the monthly shares
// always re-sum to the budget exactly. Without this, a budget that does
// not divide evenly would drift by the truncated fraction and the drift
// would propagate into issuance amounts and interest.
func phaseBudget(plan SpendPlan, kind spendKind, key models.FundingKey, budget decimal.Decimal, start types.Month, months, fiscalYearStartMonth int) {
	if !budget.IsPositive() {
		return
	}

	if start.IsZero() {
		start = types.MonthOf(time.Now())
	}
	months = models.ClampMin(months, 1)

	monthly := budget.Div(decimal.NewFromInt(int64(months)))
	for i := 0; i < months; i++ {
		share := monthly
		if i == months-1 {
			share = budget.Sub(monthly.Mul(decimal.NewFromInt(int64(months - 1))))
		}

		year := start.AddDate(0, i).FiscalYear(fiscalYearStartMonth)
		plan.add(year, kind, key, share)
	}
}

// phaseProgram attributes annualBudget/12 to every month of the program
// period, inclusive of both ends.
func phaseProgram(plan SpendPlan, timeline models.Timeline, key models.FundingKey, fiscalYearStartMonth int) {
	if !timeline.AnnualBudget.IsPositive() {
		return
	}
	if timeline.ProgramStart.IsZero() || timeline.ProgramEnd.IsZero() {
		return
	}
	if timeline.ProgramEnd.Before(timeline.ProgramStart) {
		return
	}

	monthly := timeline.AnnualBudget.Div(twelve)
	for cursor := timeline.ProgramStart; !cursor.After(timeline.ProgramEnd); cursor = cursor.AddDate(0, 1) {
		year := cursor.FiscalYear(fiscalYearStartMonth)
		plan.add(year, spendProgram, key, monthly)
	}
}
