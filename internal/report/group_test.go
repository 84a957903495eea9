package report

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crepepos/backoffice/internal/model"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestGroupExpensesScenario(t *testing.T) {
	// Two categories: Ingredients with subcategories Milk ($10) and Eggs
	// ($5), and Rent with a $50 expense carrying no subcategory.
	categories := []model.ExpenseCategory{
		{
			ID:   "cat-ing",
			Name: "Ingredients",
			Subcategories: []model.ExpenseSubcategory{
				{ID: "sub-milk", Name: "Milk", CategoryID: "cat-ing"},
				{ID: "sub-eggs", Name: "Eggs", CategoryID: "cat-ing"},
			},
		},
		{ID: "cat-rent", Name: "Rent"},
	}

	expenses := []model.Expense{
		{ID: "e1", SubcategoryID: "sub-milk", Amount: money("10")},
		{ID: "e2", SubcategoryID: "sub-eggs", Amount: money("5")},
		{ID: "e3", CategoryID: "cat-rent", Amount: money("50")},
	}

	grouped := GroupExpenses(expenses, categories)

	require.Len(t, grouped.Categories, 2)
	assert.True(t, grouped.GroupedTotal.Equal(money("65")), "grand total must be 65, got %s", grouped.GroupedTotal)

	ing := grouped.Category("cat-ing")
	require.NotNil(t, ing)
	assert.Equal(t, "Ingredients", ing.Name)
	assert.True(t, ing.Total.Equal(money("15")))
	require.NotNil(t, ing.Subcategory("sub-milk"))
	assert.True(t, ing.Subcategory("sub-milk").Total.Equal(money("10")))
	require.NotNil(t, ing.Subcategory("sub-eggs"))
	assert.True(t, ing.Subcategory("sub-eggs").Total.Equal(money("5")))

	rent := grouped.Category("cat-rent")
	require.NotNil(t, rent)
	assert.True(t, rent.Total.Equal(money("50")))
	uncat := rent.Subcategory(UncategorizedID)
	require.NotNil(t, uncat, "expense without subcategory must land in the uncategorized bucket")
	assert.True(t, uncat.Total.Equal(money("50")))
	assert.Len(t, uncat.Expenses, 1)
}

func TestGroupExpensesTotalsInvariant(t *testing.T) {
	categories := []model.ExpenseCategory{
		{ID: "c1", Name: "Supplies", Subcategories: []model.ExpenseSubcategory{
			{ID: "s1", Name: "Paper", CategoryID: "c1"},
			{ID: "s2", Name: "Cleaning", CategoryID: "c1"},
		}},
		{ID: "c2", Name: "Utilities", Subcategories: []model.ExpenseSubcategory{
			{ID: "s3", Name: "Power", CategoryID: "c2"},
		}},
	}

	var expenses []model.Expense
	for i := 0; i < 30; i++ {
		exp := model.Expense{
			ID:     fmt.Sprintf("e%d", i),
			Amount: money(fmt.Sprintf("%d.%02d", i+1, (i*7)%100)),
		}
		switch i % 5 {
		case 0:
			exp.SubcategoryID = "s1"
		case 1:
			exp.SubcategoryID = "s2"
		case 2:
			exp.SubcategoryID = "s3"
		case 3:
			exp.CategoryID = "c2"
		case 4:
			// Neither category nor subcategory: excluded from the tree.
		}
		expenses = append(expenses, exp)
	}

	grouped := GroupExpenses(expenses, categories)

	catSum := decimal.Zero
	for _, cat := range grouped.Categories {
		subSum := decimal.Zero
		for _, sub := range cat.Subcategories {
			lineSum := decimal.Zero
			for _, e := range sub.Expenses {
				lineSum = lineSum.Add(e.Amount)
			}
			assert.True(t, lineSum.Equal(sub.Total), "subcategory %s total mismatch", sub.ID)
			subSum = subSum.Add(sub.Total)
		}
		assert.True(t, subSum.Equal(cat.Total), "category %s total must equal sum of its subcategories", cat.ID)
		catSum = catSum.Add(cat.Total)
	}
	assert.True(t, catSum.Equal(grouped.GroupedTotal), "grand total must equal sum of category totals")

	overall := decimal.Zero
	for _, e := range expenses {
		overall = overall.Add(e.Amount)
	}
	assert.True(t, overall.Equal(grouped.OverallTotal), "overall total must count uncategorizable expenses too")
	assert.True(t, grouped.OverallTotal.GreaterThan(grouped.GroupedTotal), "fixture includes uncategorizable expenses")
}

func TestGroupExpensesSkipsUnresolvable(t *testing.T) {
	expenses := []model.Expense{
		{ID: "e1", Amount: money("12.50")},
	}

	grouped := GroupExpenses(expenses, nil)
	assert.Empty(t, grouped.Categories)
	assert.True(t, grouped.GroupedTotal.IsZero())
	assert.True(t, grouped.OverallTotal.Equal(money("12.50")))
}

func TestGroupExpensesPrefersSubcategoryParent(t *testing.T) {
	// The expense names a direct category, but its subcategory belongs to
	// a different parent; the parent wins.
	categories := []model.ExpenseCategory{
		{ID: "c1", Name: "Direct"},
		{ID: "c2", Name: "Parent", Subcategories: []model.ExpenseSubcategory{
			{ID: "s1", Name: "Child", CategoryID: "c2"},
		}},
	}
	expenses := []model.Expense{
		{ID: "e1", CategoryID: "c1", SubcategoryID: "s1", Amount: money("7")},
	}

	grouped := GroupExpenses(expenses, categories)
	assert.Nil(t, grouped.Category("c1"))
	require.NotNil(t, grouped.Category("c2"))
	assert.True(t, grouped.Category("c2").Total.Equal(money("7")))
}

func TestGroupExpensesUsesExpandedObjects(t *testing.T) {
	// No lookup tables at all: the expanded objects embedded in the
	// expense rows are enough.
	expenses := []model.Expense{
		{
			ID:            "e1",
			SubcategoryID: "s1",
			Subcategory:   &model.ExpenseSubcategory{ID: "s1", Name: "Milk", CategoryID: "c1"},
			Amount:        money("10"),
		},
		{
			ID:         "e2",
			CategoryID: "c2",
			Category:   &model.ExpenseCategory{ID: "c2", Name: "Rent"},
			Amount:     money("50"),
		},
	}

	grouped := GroupExpenses(expenses, nil)
	require.NotNil(t, grouped.Category("c1"))
	require.NotNil(t, grouped.Category("c2"))
	assert.Equal(t, "Rent", grouped.Category("c2").Name)
	sub := grouped.Category("c1").Subcategory("s1")
	require.NotNil(t, sub)
	assert.Equal(t, "Milk", sub.Name)
}

func TestGroupExpensesInsertionOrder(t *testing.T) {
	categories := []model.ExpenseCategory{
		{ID: "c1", Name: "B-side"},
		{ID: "c2", Name: "A-side"},
	}
	expenses := []model.Expense{
		{ID: "e1", CategoryID: "c2", Amount: money("1")},
		{ID: "e2", CategoryID: "c1", Amount: money("2")},
		{ID: "e3", CategoryID: "c2", Amount: money("3")},
	}

	grouped := GroupExpenses(expenses, categories)
	require.Len(t, grouped.Categories, 2)
	assert.Equal(t, "c2", grouped.Categories[0].ID, "first-seen category comes first")
	assert.Equal(t, "c1", grouped.Categories[1].ID)
}

func TestSortByTotal(t *testing.T) {
	categories := []model.ExpenseCategory{
		{ID: "c1", Name: "Small"},
		{ID: "c2", Name: "Big"},
	}
	expenses := []model.Expense{
		{ID: "e1", CategoryID: "c1", Amount: money("5")},
		{ID: "e2", CategoryID: "c2", Amount: money("100")},
	}

	grouped := GroupExpenses(expenses, categories)
	grouped.SortByTotal()

	require.Len(t, grouped.Categories, 2)
	assert.Equal(t, "c2", grouped.Categories[0].ID, "largest total first after explicit sort")
}
