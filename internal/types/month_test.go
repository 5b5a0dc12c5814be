package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ratecase/backend/internal/types"
)

func TestMonthUnmarshalJSON(t *testing.T) {
	var target struct {
		Month types.Month
	}

	tests := []struct {
		json     string
		expected types.Month
	}{
		{`{ "Month": "2024-05-12T17:59:23+02:00" }`, types.NewMonth(2024, 5)},
		{`{ "Month": "2025-01-31" }`, types.NewMonth(2025, 1)},
		{`{ "Month": "2025-07" }`, types.NewMonth(2025, 7)},
	}

	for _, tt := range tests {
		err := json.Unmarshal([]byte(tt.json), &target)

		assert.Nil(t, err)
		assert.True(t, tt.expected.Equal(target.Month), "parsed %s, expected %s", target.Month, tt.expected)
	}
}

func TestMonthOfNormalizesToFirstDay(t *testing.T) {
	m := types.MonthOf(time.Date(2025, 1, 31, 13, 37, 0, 0, time.UTC))

	assert.True(t, m.Equal(types.NewMonth(2025, 1)))

	// Advancing from the end of January must land in February, not March.
	assert.True(t, m.AddDate(0, 1).Equal(types.NewMonth(2025, 2)))
}

func TestMonthAddDate(t *testing.T) {
	m := types.NewMonth(2025, 11)

	assert.True(t, m.AddDate(0, 2).Equal(types.NewMonth(2026, 1)))
	assert.True(t, m.AddDate(1, 0).Equal(types.NewMonth(2026, 11)))
}

func TestFiscalYear(t *testing.T) {
	tests := []struct {
		month      types.Month
		startMonth int
		expected   int
	}{
		{types.NewMonth(2025, 3), 1, 2025},  // calendar years
		{types.NewMonth(2025, 12), 1, 2025}, // calendar years
		{types.NewMonth(2025, 6), 7, 2025},  // before the boundary
		{types.NewMonth(2025, 7), 7, 2026},  // at the boundary
		{types.NewMonth(2025, 12), 7, 2026}, // after the boundary
		{types.NewMonth(2025, 5), 0, 2025},  // degenerate start month
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.month.FiscalYear(tt.startMonth), "fiscal year of %s with start month %d", tt.month, tt.startMonth)
	}
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "2025-07", types.NewMonth(2025, 7).String())
}
