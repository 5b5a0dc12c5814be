package forecast_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratecase/backend/internal/forecast"
	"github.com/ratecase/backend/internal/models"
	"github.com/ratecase/backend/internal/types"
)

func fundingID(id uint64) *uint64 {
	return &id
}

func TestBuildSpendPlanDesignPhase(t *testing.T) {
	// 120,000 of design over 12 months from January 2025 is 10,000 a
	// month, all inside fiscal year 2025 on a calendar fiscal year.
	timelines := []models.Timeline{{
		ID:                   1,
		Type:                 models.TimelineProject,
		FundingSourceID:      fundingID(1),
		DesignStart:          types.NewMonth(2025, 1),
		DesignDurationMonths: 12,
		DesignBudget:         decimal.NewFromInt(120_000),
	}}

	plan := forecast.BuildSpendPlan(timelines, 1)

	require.Contains(t, plan, 2025)
	entry := plan[2025]

	assert.True(t, entry.DesignSpend.Equal(decimal.NewFromInt(120_000)), "design spend is %s", entry.DesignSpend)
	assert.True(t, entry.TotalSpend.Equal(decimal.NewFromInt(120_000)))
	assert.True(t, entry.ByFundingSource[models.AssignedFunding(1)].Equal(decimal.NewFromInt(120_000)))
	assert.Len(t, plan, 1)
}

func TestBuildSpendPlanFiscalYearSplit(t *testing.T) {
	// With a July fiscal year start, January through June 2025 belong to
	// FY2025 and July through December to FY2026.
	timelines := []models.Timeline{{
		ID:                   1,
		Type:                 models.TimelineProject,
		DesignStart:          types.NewMonth(2025, 1),
		DesignDurationMonths: 12,
		DesignBudget:         decimal.NewFromInt(120_000),
	}}

	plan := forecast.BuildSpendPlan(timelines, 7)

	require.Contains(t, plan, 2025)
	require.Contains(t, plan, 2026)
	assert.True(t, plan[2025].DesignSpend.Equal(decimal.NewFromInt(60_000)))
	assert.True(t, plan[2026].DesignSpend.Equal(decimal.NewFromInt(60_000)))
	assert.True(t, plan[2025].ByFundingSource[models.UnassignedFunding].Equal(decimal.NewFromInt(60_000)))
}

func TestBuildSpendPlanDesignPercent(t *testing.T) {
	// 15% of a 1,000,000 total budget over 6 months
	timelines := []models.Timeline{{
		Type:                 models.TimelineProject,
		DesignStart:          types.NewMonth(2025, 1),
		DesignDurationMonths: 6,
		DesignBudgetPercent:  decimal.NewFromInt(15),
		TotalBudget:          decimal.NewFromInt(1_000_000),
	}}

	plan := forecast.BuildSpendPlan(timelines, 1)

	assert.True(t, plan[2025].DesignSpend.Equal(decimal.NewFromInt(150_000)), "design spend is %s", plan[2025].DesignSpend)
}

func TestBuildSpendPlanIndivisibleBudget(t *testing.T) {
	// 500,000 does not divide evenly by 12. The monthly shares must still
	// re-sum to the budget exactly, with no precision drift.
	timelines := []models.Timeline{{
		Type:                 models.TimelineProject,
		FundingSourceID:      fundingID(1),
		DesignStart:          types.NewMonth(2025, 1),
		DesignDurationMonths: 12,
		DesignBudget:         decimal.NewFromInt(500_000),
	}}

	plan := forecast.BuildSpendPlan(timelines, 1)

	require.Contains(t, plan, 2025)
	assert.True(t, plan[2025].DesignSpend.Equal(decimal.NewFromInt(500_000)), "design spend is %s", plan[2025].DesignSpend)
	assert.True(t, plan[2025].ByFundingSource[models.AssignedFunding(1)].Equal(decimal.NewFromInt(500_000)))

	// Same across a fiscal year boundary: the shares differ per year but
	// still total the budget.
	split := forecast.BuildSpendPlan(timelines, 7)
	total := split[2025].DesignSpend.Add(split[2026].DesignSpend)
	assert.True(t, total.Equal(decimal.NewFromInt(500_000)), "total design spend is %s", total)
}

func TestBuildSpendPlanConstructionPhase(t *testing.T) {
	// Construction straddling two calendar years
	timelines := []models.Timeline{{
		Type:                       models.TimelineProject,
		ConstructionStart:          types.NewMonth(2025, 11),
		ConstructionDurationMonths: 4,
		ConstructionBudget:         decimal.NewFromInt(400_000),
	}}

	plan := forecast.BuildSpendPlan(timelines, 1)

	assert.True(t, plan[2025].ConstructionSpend.Equal(decimal.NewFromInt(200_000)))
	assert.True(t, plan[2026].ConstructionSpend.Equal(decimal.NewFromInt(200_000)))
}

func TestBuildSpendPlanProgram(t *testing.T) {
	// 120,000 a year is 10,000 a month, over an inclusive period
	timelines := []models.Timeline{{
		Type:         models.TimelineProgram,
		AnnualBudget: decimal.NewFromInt(120_000),
		ProgramStart: types.NewMonth(2025, 1),
		ProgramEnd:   types.NewMonth(2025, 3),
	}}

	plan := forecast.BuildSpendPlan(timelines, 1)

	require.Contains(t, plan, 2025)
	assert.True(t, plan[2025].ProgramSpend.Equal(decimal.NewFromInt(30_000)), "program spend is %s", plan[2025].ProgramSpend)
}

func TestBuildSpendPlanNoPhantomEntries(t *testing.T) {
	timelines := []models.Timeline{
		{Type: models.TimelineProject, DesignStart: types.NewMonth(2025, 1), DesignDurationMonths: 6},
		{Type: models.TimelineProject, DesignStart: types.NewMonth(2025, 1), DesignDurationMonths: 6, DesignBudget: decimal.NewFromInt(-500)},
		{Type: models.TimelineProgram, AnnualBudget: decimal.NewFromInt(120_000)},
		{Type: models.TimelineProgram, AnnualBudget: decimal.NewFromInt(120_000), ProgramStart: types.NewMonth(2025, 6), ProgramEnd: types.NewMonth(2025, 1)},
	}

	plan := forecast.BuildSpendPlan(timelines, 1)

	assert.Empty(t, plan)
}

func TestBuildSpendPlanMissingStartDefaultsToCurrentYear(t *testing.T) {
	timelines := []models.Timeline{{
		Type:                 models.TimelineProject,
		DesignDurationMonths: 1,
		DesignBudget:         decimal.NewFromInt(12_000),
	}}

	plan := forecast.BuildSpendPlan(timelines, 1)

	require.Len(t, plan, 1)
	assert.Contains(t, plan, time.Now().Year())
}

func TestBuildSpendBreakdown(t *testing.T) {
	timelines := []models.Timeline{
		{
			ID:                   1,
			Type:                 models.TimelineProject,
			FundingSourceID:      fundingID(1),
			DesignStart:          types.NewMonth(2025, 1),
			DesignDurationMonths: 12,
			DesignBudget:         decimal.NewFromInt(120_000),
		},
		{
			ID:           2,
			Type:         models.TimelineProgram,
			AnnualBudget: decimal.NewFromInt(60_000),
			ProgramStart: types.NewMonth(2025, 1),
			ProgramEnd:   types.NewMonth(2025, 12),
		},
	}

	breakdown := forecast.BuildSpendBreakdown(timelines, 1)

	require.Len(t, breakdown, 2)
	assert.Equal(t, uint64(1), breakdown[0].TimelineID)
	assert.True(t, breakdown[0].Plan[2025].DesignSpend.Equal(decimal.NewFromInt(120_000)))
	assert.Equal(t, models.UnassignedFunding, breakdown[1].FundingKey)
	assert.True(t, breakdown[1].Plan[2025].ProgramSpend.Equal(decimal.NewFromInt(60_000)))

	// The breakdown sums to the aggregate plan
	plan := forecast.BuildSpendPlan(timelines, 1)
	assert.True(t, plan[2025].TotalSpend.Equal(decimal.NewFromInt(180_000)))
}
