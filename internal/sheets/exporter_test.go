package sheets

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crepepos/backoffice/internal/model"
	"github.com/crepepos/backoffice/internal/report"
)

func TestPrepareRows(t *testing.T) {
	categories := []model.ExpenseCategory{
		{
			ID:   "cat-ing",
			Name: "Ingredients",
			Subcategories: []model.ExpenseSubcategory{
				{ID: "sub-milk", Name: "Milk", CategoryID: "cat-ing"},
			},
		},
		{ID: "cat-rent", Name: "Rent"},
	}
	expenses := []model.Expense{
		{ID: "e1", SubcategoryID: "sub-milk", Amount: decimal.RequireFromString("10")},
		{ID: "e2", CategoryID: "cat-rent", Amount: decimal.RequireFromString("50")},
	}
	grouped := report.GroupExpenses(expenses, categories)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.Local)

	rows := prepareRows("Centro", start, end, grouped)

	// Title block, blank separator, column header, then the tree.
	require.GreaterOrEqual(t, len(rows), 9)
	assert.Equal(t, []any{"Expense Summary", "Centro"}, rows[0])
	assert.Equal(t, []any{"Total", "60.00"}, rows[2])
	assert.Equal(t, []any{"Category", "Subcategory", "Expenses", "Amount"}, rows[4])

	assert.Equal(t, []any{"Ingredients", "", "", "10.00"}, rows[5])
	assert.Equal(t, []any{"", "Milk", 1, "10.00"}, rows[6])
	assert.Equal(t, []any{"Rent", "", "", "50.00"}, rows[7])
	assert.Equal(t, []any{"", report.UncategorizedName, 1, "50.00"}, rows[8])
}

func TestPrepareRowsEmptySummary(t *testing.T) {
	grouped := report.GroupExpenses(nil, nil)
	rows := prepareRows("Centro", time.Now(), time.Now(), grouped)

	require.Len(t, rows, 5)
	assert.Equal(t, []any{"Total", "0.00"}, rows[2])
}
