package models

import "github.com/shopspring/decimal"

// FinancialConfig defines the projection horizon and the policy targets
// of a forecast. The horizon is the closed year range
// [StartYear, StartYear+ProjectionYears).
type FinancialConfig struct {
	StartYear            int             `json:"startYear"`
	ProjectionYears      int             `json:"projectionYears"`
	StartingCashBalance  decimal.Decimal `json:"startingCashBalance"`
	TargetCoverageRatio  decimal.Decimal `json:"targetCoverageRatio"`
	FiscalYearStartMonth int             `json:"fiscalYearStartMonth"`
}

// Normalize clamps the configuration to usable values instead of
// rejecting it: at least one projection year, a start month inside
// [1, 12] and a start year defaulting to the current year.
func (c FinancialConfig) Normalize() FinancialConfig {
	c.StartYear = YearOrCurrent(c.StartYear)
	c.ProjectionYears = ClampMin(c.ProjectionYears, 1)

	if c.FiscalYearStartMonth < 1 || c.FiscalYearStartMonth > 12 {
		c.FiscalYearStartMonth = 1
	}

	c.TargetCoverageRatio = ClampNonNegative(c.TargetCoverageRatio)

	return c
}
