package models

import (
	"github.com/shopspring/decimal"

	"github.com/ratecase/backend/internal/types"
)

// TimelineType distinguishes discrete projects from continuous programs.
type TimelineType string

const (
	TimelineProject TimelineType = "project"
	TimelineProgram TimelineType = "program"
)

// Timeline is a resolved capital project or program schedule as produced
// by the planning subsystem. The engine consumes it read-only.
type Timeline struct {
	ID              uint64       `json:"id"`
	Type            TimelineType `json:"type"`
	ProjectTypeID   uint64       `json:"projectTypeId,omitempty"`
	FundingSourceID *uint64      `json:"fundingSourceId"`

	// Discrete projects: a design phase and a construction phase, each
	// with a start month, a duration and a budget. The design budget may
	// alternatively be given as a percentage of the total budget.
	DesignStart                types.Month     `json:"designStart,omitempty"`
	DesignDurationMonths       int             `json:"designDurationMonths,omitempty"`
	DesignBudget               decimal.Decimal `json:"designBudget,omitempty"`
	DesignBudgetPercent        decimal.Decimal `json:"designBudgetPercent,omitempty"`
	TotalBudget                decimal.Decimal `json:"totalBudget,omitempty"`
	ConstructionStart          types.Month     `json:"constructionStart,omitempty"`
	ConstructionDurationMonths int             `json:"constructionDurationMonths,omitempty"`
	ConstructionBudget         decimal.Decimal `json:"constructionBudget,omitempty"`

	// Continuous programs: an annual budget spent evenly over the
	// program period.
	AnnualBudget decimal.Decimal `json:"annualBudget,omitempty"`
	ProgramStart types.Month     `json:"programStart,omitempty"`
	ProgramEnd   types.Month     `json:"programEnd,omitempty"`
}

// FundingKey returns the funding key project spend is attributed to.
func (t Timeline) FundingKey() FundingKey {
	return FundingKeyFor(t.FundingSourceID)
}

// EffectiveDesignBudget resolves the design budget, preferring the
// explicit amount over the percentage of the total budget.
func (t Timeline) EffectiveDesignBudget() decimal.Decimal {
	if t.DesignBudget.IsPositive() {
		return t.DesignBudget
	}

	if t.DesignBudgetPercent.IsPositive() && t.TotalBudget.IsPositive() {
		return t.TotalBudget.Mul(t.DesignBudgetPercent).Div(decimal.NewFromInt(100))
	}

	return decimal.Zero
}
