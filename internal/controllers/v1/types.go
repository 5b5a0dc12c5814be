package v1

import (
	"github.com/ratecase/backend/internal/forecast"
	"github.com/ratecase/backend/internal/models"
)

// ForecastResponse wraps a computed forecast.
type ForecastResponse struct {
	Data *forecast.Forecast `json:"data"` // The computed forecast
}

// SpendPlanRequest phases timelines without running the full forecast.
type SpendPlanRequest struct {
	Timelines            []models.Timeline `json:"projectTimelines"`
	FiscalYearStartMonth int               `json:"fiscalYearStartMonth"`
}

// SpendPlanData carries the aggregate plan and the per-timeline
// breakdown for reporting.
type SpendPlanData struct {
	Plan      forecast.SpendPlan       `json:"spendPlan"`
	Breakdown []forecast.TimelineSpend `json:"breakdown"`
}

type SpendPlanResponse struct {
	Data *SpendPlanData `json:"data"`
}

// DebtServiceRequest schedules new debt for a set of timelines and
// financing assumptions.
type DebtServiceRequest struct {
	Timelines            []models.Timeline                `json:"projectTimelines"`
	FiscalYearStartMonth int                              `json:"fiscalYearStartMonth"`
	FundingSources       []models.FundingSource           `json:"fundingSources"`
	Assumptions          []models.FundingSourceAssumption `json:"fundingSourceAssumptions"`
	StartYear            int                              `json:"startYear"`
	ProjectionYears      int                              `json:"projectionYears"`
}

type DebtServiceResponse struct {
	Data *forecast.DebtServiceSchedule `json:"data"`
}

type ExistingDebtResponse struct {
	Data *forecast.ExistingDebtSchedule `json:"data"`
}
