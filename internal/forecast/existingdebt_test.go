package forecast_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratecase/backend/internal/forecast"
	"github.com/ratecase/backend/internal/models"
)

func TestBuildExistingDebtScheduleSRFInstrument(t *testing.T) {
	input := forecast.ExistingDebtInput{
		Instruments: []models.ExistingDebtInstrument{{
			ID:                   1,
			Label:                "1998 SRF Loan",
			FinancingType:        models.FinancingSRF,
			OutstandingPrincipal: decimal.NewFromInt(500_000),
			InterestRate:         decimal.NewFromInt(2),
			TermYears:            30,
			FirstPaymentYear:     2025,
			InterestOnlyYears:    5,
		}},
		StartYear:       2025,
		ProjectionYears: 10,
	}

	schedule := forecast.BuildExistingDebtSchedule(input)

	// Interest-only service 2025 through 2029: 500,000 × 2% = 10,000
	interestOnly := decimal.NewFromInt(10_000)
	for year := 2025; year <= 2029; year++ {
		assert.True(t, schedule.TotalsByYear[year].Equal(interestOnly), "year %d total is %s", year, schedule.TotalsByYear[year])
		assert.True(t, schedule.InterestByYear[year].Equal(interestOnly))
		assert.True(t, schedule.PrincipalByYear[year].IsZero())
	}

	// Amortizing over the remaining 25 years from 2030; five of those
	// fall inside the horizon.
	payment := forecast.LevelPayment(decimal.NewFromInt(500_000), decimal.NewFromInt(2), 25)
	for year := 2030; year <= 2034; year++ {
		assert.True(t, schedule.TotalsByYear[year].Equal(payment), "year %d total is %s, expected %s", year, schedule.TotalsByYear[year], payment)
		assert.True(t, schedule.PrincipalByYear[year].IsPositive())
	}

	// Nothing outside the horizon
	assert.NotContains(t, schedule.TotalsByYear, 2035)

	require.Len(t, schedule.Instruments, 1)
	summary := schedule.Instruments[0]
	assert.Equal(t, uint64(1), summary.InstrumentID)
	assert.True(t, summary.AnnualPayment.Equal(payment))
	assert.Len(t, summary.PaymentsByYear, 10)
}

func TestBuildExistingDebtScheduleBondInstrument(t *testing.T) {
	// Bonds amortize immediately from the first payment year.
	input := forecast.ExistingDebtInput{
		Instruments: []models.ExistingDebtInstrument{{
			ID:                   2,
			FinancingType:        models.FinancingBond,
			OutstandingPrincipal: decimal.NewFromInt(1_000_000),
			InterestRate:         decimal.NewFromInt(4),
			TermYears:            10,
			FirstPaymentYear:     2026,
		}},
		StartYear:       2025,
		ProjectionYears: 5,
	}

	schedule := forecast.BuildExistingDebtSchedule(input)

	payment := forecast.LevelPayment(decimal.NewFromInt(1_000_000), decimal.NewFromInt(4), 10)

	assert.NotContains(t, schedule.TotalsByYear, 2025)
	for year := 2026; year <= 2029; year++ {
		assert.True(t, schedule.TotalsByYear[year].Equal(payment), "year %d total is %s", year, schedule.TotalsByYear[year])
	}
}

func TestBuildExistingDebtScheduleManualTotals(t *testing.T) {
	input := forecast.ExistingDebtInput{
		ManualTotals: map[int]decimal.Decimal{
			2025: decimal.NewFromInt(50_000),
			2026: decimal.NewFromInt(45_000),
			2040: decimal.NewFromInt(99_000), // outside the horizon
		},
		StartYear:       2025,
		ProjectionYears: 3,
	}

	schedule := forecast.BuildExistingDebtSchedule(input)

	assert.True(t, schedule.ManualByYear[2025].Equal(decimal.NewFromInt(50_000)))
	assert.True(t, schedule.TotalsByYear[2026].Equal(decimal.NewFromInt(45_000)))
	assert.NotContains(t, schedule.ManualByYear, 2040)
	assert.NotContains(t, schedule.TotalsByYear, 2040)
}

func TestBuildExistingDebtScheduleCombines(t *testing.T) {
	input := forecast.ExistingDebtInput{
		ManualTotals: map[int]decimal.Decimal{
			2025: decimal.NewFromInt(50_000),
		},
		Instruments: []models.ExistingDebtInstrument{{
			FinancingType:        models.FinancingBond,
			OutstandingPrincipal: decimal.NewFromInt(100_000),
			InterestRate:         decimal.Zero,
			TermYears:            10,
			FirstPaymentYear:     2025,
		}},
		StartYear:       2025,
		ProjectionYears: 3,
	}

	schedule := forecast.BuildExistingDebtSchedule(input)

	// 50,000 manual plus 10,000 straight-line
	assert.True(t, schedule.TotalsByYear[2025].Equal(decimal.NewFromInt(60_000)), "2025 total is %s", schedule.TotalsByYear[2025])
	assert.True(t, schedule.TotalsByYear[2026].Equal(decimal.NewFromInt(10_000)))
}

func TestBuildExistingDebtScheduleZeroPrincipal(t *testing.T) {
	input := forecast.ExistingDebtInput{
		Instruments: []models.ExistingDebtInstrument{{
			ID:            3,
			Label:         "Retired Bond",
			FinancingType: models.FinancingBond,
			TermYears:     10,
		}},
		StartYear:       2025,
		ProjectionYears: 3,
	}

	schedule := forecast.BuildExistingDebtSchedule(input)

	// The summary is present but empty
	require.Len(t, schedule.Instruments, 1)
	assert.Empty(t, schedule.Instruments[0].PaymentsByYear)
	assert.Empty(t, schedule.TotalsByYear)
}

func TestExistingDebtInputEmpty(t *testing.T) {
	assert.True(t, forecast.ExistingDebtInput{}.Empty())
	assert.False(t, forecast.ExistingDebtInput{
		ManualTotals: map[int]decimal.Decimal{2025: decimal.NewFromInt(1)},
	}.Empty())
}
