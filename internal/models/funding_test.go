package models_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratecase/backend/internal/models"
)

func TestFundingKeyString(t *testing.T) {
	assert.Equal(t, "unassigned", models.UnassignedFunding.String())
	assert.Equal(t, "42", models.AssignedFunding(42).String())
}

func TestFundingKeyJSONMapKey(t *testing.T) {
	amounts := map[models.FundingKey]decimal.Decimal{
		models.UnassignedFunding:  decimal.NewFromInt(100),
		models.AssignedFunding(7): decimal.NewFromInt(200),
	}

	data, err := json.Marshal(amounts)
	require.Nil(t, err)
	assert.JSONEq(t, `{"unassigned": "100", "7": "200"}`, string(data))

	var roundtrip map[models.FundingKey]decimal.Decimal
	require.Nil(t, json.Unmarshal(data, &roundtrip))
	assert.True(t, roundtrip[models.AssignedFunding(7)].Equal(decimal.NewFromInt(200)))
	assert.True(t, roundtrip[models.UnassignedFunding].Equal(decimal.NewFromInt(100)))
}

func TestFundingKeyFor(t *testing.T) {
	id := uint64(3)

	assert.Equal(t, models.AssignedFunding(3), models.FundingKeyFor(&id))
	assert.Equal(t, models.UnassignedFunding, models.FundingKeyFor(nil))
}

func TestDefaultAssumptionInference(t *testing.T) {
	tests := []struct {
		name     string
		expected models.FinancingType
	}{
		{"Revenue Bonds 2025", models.FinancingBond},
		{"Clean Water SRF", models.FinancingSRF},
		{"State Revolving Fund", models.FinancingSRF},
		{"USDA Rural Grant", models.FinancingGrant},
		{"Rate Reserves", models.FinancingCash},
	}

	for _, tt := range tests {
		assumption := models.DefaultAssumption(models.FundingSource{ID: 1, Name: tt.name})

		assert.Equal(t, tt.expected, assumption.FinancingType, "financing type for %q", tt.name)
		require.NotNil(t, assumption.FundingSourceID)
		assert.Equal(t, uint64(1), *assumption.FundingSourceID)
	}
}

func TestAssumptionNormalize(t *testing.T) {
	assumption := models.FundingSourceAssumption{
		FinancingType: "junk",
		InterestRate:  decimal.NewFromInt(-2),
		TermYears:     -10,
	}.Normalize()

	assert.Equal(t, models.FinancingCash, assumption.FinancingType)
	assert.True(t, assumption.InterestRate.IsZero())
	assert.Equal(t, 1, assumption.TermYears)
}

func TestGeneratesDebt(t *testing.T) {
	assert.True(t, models.FinancingBond.GeneratesDebt())
	assert.True(t, models.FinancingSRF.GeneratesDebt())
	assert.False(t, models.FinancingCash.GeneratesDebt())
	assert.False(t, models.FinancingGrant.GeneratesDebt())
}
