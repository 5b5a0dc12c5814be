package models

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category classifies a line item as revenue or expense.
type Category string

const (
	CategoryRevenue Category = "revenue"
	CategoryExpense Category = "expense"
)

// RevenueType distinguishes operating from non-operating revenue.
// It is only meaningful on revenue line items.
type RevenueType string

const (
	RevenueOperating    RevenueType = "operating"
	RevenueNonOperating RevenueType = "nonOperating"
)

// LineItem is a single revenue or expense entry of a budget row.
type LineItem struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Description string          `json:"description,omitempty"`
	Category    Category        `json:"category"`
	RevenueType RevenueType     `json:"revenueType,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	IsCustom    bool            `json:"isCustom,omitempty"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a stable id from a label.
func Slugify(label string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(label), "-")
	return strings.Trim(slug, "-")
}

// EnsureID fills in a missing line item id, derived from the label when
// one is set and random otherwise.
func (l *LineItem) EnsureID() {
	if l.ID != "" {
		return
	}

	if slug := Slugify(l.Label); slug != "" {
		l.ID = slug
		return
	}

	l.ID = uuid.NewString()
}
