package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// BudgetRow is the operating budget for one fiscal year.
//
// OperatingRevenue, NonOperatingRevenue and TotalOperatingExpenses are
// derived from the line items and recomputed on every normalization,
// never stored independently.
type BudgetRow struct {
	Year                int             `json:"year"`
	RevenueLineItems    []LineItem      `json:"revenueLineItems"`
	ExpenseLineItems    []LineItem      `json:"expenseLineItems"`
	RateIncreasePercent decimal.Decimal `json:"rateIncreasePercent"`
	ExistingDebtService decimal.Decimal `json:"existingDebtService"`

	OperatingRevenue       decimal.Decimal `json:"operatingRevenue"`
	NonOperatingRevenue    decimal.Decimal `json:"nonOperatingRevenue"`
	TotalOperatingExpenses decimal.Decimal `json:"totalOperatingExpenses"`
}

// NormalizeBudgetRow reconciles a budget row against the canonical line
// item catalogs and recomputes the derived totals.
//
// Supplied items are matched to the catalog by id first, then by
// case-insensitive label. Unmatched items are kept as custom entries,
// canonical items missing from the input are appended with amount 0.
// The result carries exactly one entry per catalog id and no duplicate
// ids. Malformed input degrades to zeroes, it is never rejected.
func NormalizeBudgetRow(row BudgetRow) BudgetRow {
	row.Year = YearOrCurrent(row.Year)
	row.RevenueLineItems = normalizeLineItems(row.RevenueLineItems, DefaultRevenueLineItems(), CategoryRevenue)
	row.ExpenseLineItems = normalizeLineItems(row.ExpenseLineItems, DefaultExpenseLineItems(), CategoryExpense)

	row.OperatingRevenue = decimal.Zero
	row.NonOperatingRevenue = decimal.Zero
	for _, item := range row.RevenueLineItems {
		if item.RevenueType == RevenueNonOperating {
			row.NonOperatingRevenue = row.NonOperatingRevenue.Add(item.Amount)
		} else {
			row.OperatingRevenue = row.OperatingRevenue.Add(item.Amount)
		}
	}

	row.TotalOperatingExpenses = decimal.Zero
	for _, item := range row.ExpenseLineItems {
		row.TotalOperatingExpenses = row.TotalOperatingExpenses.Add(item.Amount)
	}

	return row
}

func normalizeLineItems(supplied, catalog []LineItem, category Category) []LineItem {
	result := make([]LineItem, 0, len(catalog))
	matched := make([]bool, len(supplied))

	for _, canonical := range catalog {
		item := canonical
		item.Amount = decimal.Zero

		for i, s := range supplied {
			if matched[i] {
				continue
			}

			if s.ID == canonical.ID || strings.EqualFold(s.Label, canonical.Label) {
				matched[i] = true
				item.Amount = s.Amount
				break
			}
		}

		result = append(result, item)
	}

	// Everything that did not reconcile against the catalog is kept as a
	// custom entry.
	for i, s := range supplied {
		if matched[i] {
			continue
		}

		custom := s
		custom.Category = category
		custom.IsCustom = true
		custom.EnsureID()

		if slices.ContainsFunc(result, func(l LineItem) bool { return l.ID == custom.ID }) {
			continue
		}

		result = append(result, custom)
	}

	return result
}

// EnsureBudgetYears returns exactly one normalized budget row per year of
// the horizon [startYear, startYear+projectionYears), in ascending order.
//
// Existing rows are normalized in place. Missing years are synthesized by
// cloning the nearest prior row as a template: line item shapes and the
// rate increase are carried forward, amounts are reset.
func EnsureBudgetYears(rows []BudgetRow, startYear, projectionYears int) []BudgetRow {
	startYear = YearOrCurrent(startYear)
	projectionYears = ClampMin(projectionYears, 1)

	byYear := make(map[int]BudgetRow, len(rows))
	years := make([]int, 0, len(rows))
	for _, row := range rows {
		normalized := NormalizeBudgetRow(row)
		if _, ok := byYear[normalized.Year]; ok {
			continue
		}

		byYear[normalized.Year] = normalized
		years = append(years, normalized.Year)
	}
	slices.Sort(years)

	result := make([]BudgetRow, 0, projectionYears)
	for year := startYear; year < startYear+projectionYears; year++ {
		if row, ok := byYear[year]; ok {
			result = append(result, row)
			continue
		}

		result = append(result, templateRow(byYear, years, year))
	}

	return result
}

// templateRow synthesizes a budget row for a missing year from the
// nearest prior existing row, falling back to the earliest row and
// finally to the bare catalogs.
func templateRow(byYear map[int]BudgetRow, years []int, year int) BudgetRow {
	template := BudgetRow{}
	found := false
	for _, y := range years {
		if y > year && found {
			break
		}

		template = byYear[y]
		found = true
	}

	row := BudgetRow{
		Year:                year,
		RateIncreasePercent: template.RateIncreasePercent,
	}

	if found {
		row.RevenueLineItems = zeroedClone(template.RevenueLineItems)
		row.ExpenseLineItems = zeroedClone(template.ExpenseLineItems)
	}

	return NormalizeBudgetRow(row)
}

func zeroedClone(items []LineItem) []LineItem {
	clone := make([]LineItem, len(items))
	for i, item := range items {
		item.Amount = decimal.Zero
		clone[i] = item
	}

	return clone
}
