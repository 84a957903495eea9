package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/crepepos/backoffice/internal/model"
)

// UncategorizedID is the sentinel bucket for categorized expenses that
// carry no subcategory.
const UncategorizedID = "uncategorized"

// UncategorizedName is the display name of the sentinel bucket.
const UncategorizedName = "Sin subcategoría"

// SubcategoryGroup is one second-level bucket with its running total.
type SubcategoryGroup struct {
	ID       string
	Name     string
	Expenses []model.Expense
	Total    decimal.Decimal
}

// CategoryGroup is one first-level bucket. Subcategories keep first-seen
// insertion order.
type CategoryGroup struct {
	index         map[string]*SubcategoryGroup
	ID            string
	Name          string
	Subcategories []*SubcategoryGroup
	Total         decimal.Decimal
}

// GroupedExpenses is the two-level category -> subcategory tree produced
// by GroupExpenses. GroupedTotal covers only expenses that resolved to a
// category; OverallTotal additionally counts the unresolvable ones.
type GroupedExpenses struct {
	index        map[string]*CategoryGroup
	Categories   []*CategoryGroup
	GroupedTotal decimal.Decimal
	OverallTotal decimal.Decimal
}

// Category returns the group for the given category id, or nil.
func (g *GroupedExpenses) Category(id string) *CategoryGroup {
	return g.index[id]
}

// Subcategory returns the bucket for the given subcategory id, or nil.
func (c *CategoryGroup) Subcategory(id string) *SubcategoryGroup {
	return c.index[id]
}

// GroupExpenses folds a flat expense list into a two-level tree with
// running subtotals in one linear pass. The owning category of each
// expense is the subcategory's parent when a subcategory is present,
// otherwise the expense's direct category reference; an expense with
// neither is excluded from the tree but still counts toward OverallTotal.
// A categorized expense without a subcategory lands in the per-category
// uncategorized bucket. Iteration order of categories and subcategories is
// first-seen; callers wanting a display order sort explicitly (SortByTotal).
func GroupExpenses(expenses []model.Expense, categories []model.ExpenseCategory) *GroupedExpenses {
	catNames := make(map[string]string, len(categories))
	subParents := make(map[string]model.ExpenseSubcategory)
	for _, cat := range categories {
		catNames[cat.ID] = cat.Name
		for _, sub := range cat.Subcategories {
			subParents[sub.ID] = sub
		}
	}

	grouped := &GroupedExpenses{
		index:        make(map[string]*CategoryGroup),
		GroupedTotal: decimal.Zero,
		OverallTotal: decimal.Zero,
	}

	for _, exp := range expenses {
		grouped.OverallTotal = grouped.OverallTotal.Add(exp.Amount)

		catID, catName := resolveCategory(exp, catNames, subParents)
		if catID == "" {
			continue
		}

		cat := grouped.index[catID]
		if cat == nil {
			cat = &CategoryGroup{
				index: make(map[string]*SubcategoryGroup),
				ID:    catID,
				Name:  catName,
				Total: decimal.Zero,
			}
			grouped.index[catID] = cat
			grouped.Categories = append(grouped.Categories, cat)
		}

		subID, subName := resolveSubcategory(exp, subParents)
		sub := cat.index[subID]
		if sub == nil {
			sub = &SubcategoryGroup{ID: subID, Name: subName, Total: decimal.Zero}
			cat.index[subID] = sub
			cat.Subcategories = append(cat.Subcategories, sub)
		}

		sub.Expenses = append(sub.Expenses, exp)
		sub.Total = sub.Total.Add(exp.Amount)
		cat.Total = cat.Total.Add(exp.Amount)
		grouped.GroupedTotal = grouped.GroupedTotal.Add(exp.Amount)
	}

	return grouped
}

// resolveCategory finds the owning category, preferring the subcategory's
// parent. The expanded objects on the expense win over the lookup tables
// so a summary rendered from raw backend rows needs no extra fetches.
func resolveCategory(exp model.Expense, catNames map[string]string, subParents map[string]model.ExpenseSubcategory) (id, name string) {
	parentID := ""
	switch {
	case exp.Subcategory != nil && exp.Subcategory.CategoryID != "":
		parentID = exp.Subcategory.CategoryID
	case exp.SubcategoryID != "":
		if sub, ok := subParents[exp.SubcategoryID]; ok {
			parentID = sub.CategoryID
		}
	}

	if parentID != "" {
		if name, ok := catNames[parentID]; ok {
			return parentID, name
		}
		return parentID, parentID
	}

	if exp.CategoryID == "" {
		return "", ""
	}
	if exp.Category != nil && exp.Category.Name != "" {
		return exp.CategoryID, exp.Category.Name
	}
	if name, ok := catNames[exp.CategoryID]; ok {
		return exp.CategoryID, name
	}
	return exp.CategoryID, exp.CategoryID
}

func resolveSubcategory(exp model.Expense, subParents map[string]model.ExpenseSubcategory) (id, name string) {
	if exp.SubcategoryID == "" {
		return UncategorizedID, UncategorizedName
	}
	if exp.Subcategory != nil && exp.Subcategory.Name != "" {
		return exp.SubcategoryID, exp.Subcategory.Name
	}
	if sub, ok := subParents[exp.SubcategoryID]; ok {
		return exp.SubcategoryID, sub.Name
	}
	return exp.SubcategoryID, exp.SubcategoryID
}

// SortByTotal orders categories and their subcategories by descending
// total for display. Grouping itself guarantees only insertion order;
// ordering is a presentation concern.
func (g *GroupedExpenses) SortByTotal() {
	sort.SliceStable(g.Categories, func(i, j int) bool {
		return g.Categories[i].Total.GreaterThan(g.Categories[j].Total)
	})
	for _, cat := range g.Categories {
		sort.SliceStable(cat.Subcategories, func(i, j int) bool {
			return cat.Subcategories[i].Total.GreaterThan(cat.Subcategories[j].Total)
		})
	}
}
