package model

import "github.com/shopspring/decimal"

// Period is the explicit date range a summary covers, as echoed back by
// the summary endpoints.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ExpensesSummary is the pre-aggregated expense report returned by the
// backend summary endpoint. The client-side grouper is the fallback path
// used when only the raw expense list is available.
type ExpensesSummary struct {
	CategoryTotals    map[string]decimal.Decimal `json:"categoryTotals"`
	SubcategoryTotals map[string]decimal.Decimal `json:"subcategoryTotals"`
	Expenses          []Expense                  `json:"expenses"`
	Period            Period                     `json:"period"`
	TotalExpenses     decimal.Decimal            `json:"totalExpenses"`
}

// DashboardStats is the pre-aggregated sales snapshot returned by the
// dashboard endpoint.
type DashboardStats struct {
	Period        Period          `json:"period"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
	SalesCount    int             `json:"salesCount"`
}
