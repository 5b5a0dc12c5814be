package models

// The canonical line item catalogs for a utility enterprise fund.
// Budget rows are reconciled against these: every normalized row carries
// exactly one entry per catalog id, with caller-supplied extras kept as
// custom items.

// DefaultRevenueLineItems returns the canonical revenue catalog.
func DefaultRevenueLineItems() []LineItem {
	return []LineItem{
		{ID: "rate-revenue", Label: "Rate Revenue", Description: "Water and sewer rate charges", Category: CategoryRevenue, RevenueType: RevenueOperating},
		{ID: "connection-fees", Label: "Connection Fees", Description: "New service connection charges", Category: CategoryRevenue, RevenueType: RevenueOperating},
		{ID: "other-operating-revenue", Label: "Other Operating Revenue", Description: "Penalties, reconnections and service charges", Category: CategoryRevenue, RevenueType: RevenueOperating},
		{ID: "interest-income", Label: "Interest Income", Description: "Earnings on invested reserves", Category: CategoryRevenue, RevenueType: RevenueNonOperating},
		{ID: "grant-revenue", Label: "Grant Revenue", Description: "Operating grants and contributions", Category: CategoryRevenue, RevenueType: RevenueNonOperating},
	}
}

// DefaultExpenseLineItems returns the canonical expense catalog.
func DefaultExpenseLineItems() []LineItem {
	return []LineItem{
		{ID: "personnel", Label: "Personnel", Description: "Salaries and benefits", Category: CategoryExpense},
		{ID: "operations-maintenance", Label: "Operations & Maintenance", Description: "Routine system operation and upkeep", Category: CategoryExpense},
		{ID: "utilities", Label: "Utilities", Description: "Power and pumping costs", Category: CategoryExpense},
		{ID: "chemicals-supplies", Label: "Chemicals & Supplies", Description: "Treatment chemicals and consumables", Category: CategoryExpense},
		{ID: "administration", Label: "Administration", Description: "Billing, insurance and overhead", Category: CategoryExpense},
		{ID: "professional-services", Label: "Professional Services", Description: "Engineering, legal and audit services", Category: CategoryExpense},
	}
}
