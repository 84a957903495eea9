package api

import (
	"context"
	"net/http"

	"github.com/crepepos/backoffice/internal/model"
)

// Expenses returns all expense records; callers filter by the active
// branch.
func (c *Client) Expenses(ctx context.Context) ([]model.Expense, error) {
	var expenses []model.Expense
	if err := c.get(ctx, "/expenses", nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// ExpensesSummary returns the server-aggregated expense report. The
// client-side grouper is only the fallback path when this endpoint is not
// reachable or when re-filtering a raw list offline.
func (c *Client) ExpensesSummary(ctx context.Context, branchID string, period PeriodQuery, categoryID, subcategoryID string) (*model.ExpensesSummary, error) {
	q := period.values(branchID)
	if categoryID != "" {
		q.Set("category_id", categoryID)
	}
	if subcategoryID != "" {
		q.Set("subcategory_id", subcategoryID)
	}

	var summary model.ExpensesSummary
	if err := c.get(ctx, "/expenses/summary", q, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// CreateExpense registers an expense.
func (c *Client) CreateExpense(ctx context.Context, expense model.ExpenseCreate) error {
	return c.do(ctx, http.MethodPost, "/expense/create", expense, nil)
}

// UpdateExpense updates an expense in place.
func (c *Client) UpdateExpense(ctx context.Context, expense model.ExpenseUpdate) error {
	return c.do(ctx, http.MethodPut, "/expense/update", expense, nil)
}

// DeleteExpense removes an expense by id.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expense/delete", map[string]string{"id": id}, nil)
}

// ExpenseCategories returns every category with its subcategories
// expanded.
func (c *Client) ExpenseCategories(ctx context.Context) ([]model.ExpenseCategory, error) {
	var categories []model.ExpenseCategory
	if err := c.get(ctx, "/expense-categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateExpenseCategory registers a category for a branch.
func (c *Client) CreateExpenseCategory(ctx context.Context, name, branchID string) error {
	body := map[string]string{"name": name, "branch_id": branchID}
	return c.do(ctx, http.MethodPost, "/expense-category/create", body, nil)
}

// UpdateExpenseCategory renames a category.
func (c *Client) UpdateExpenseCategory(ctx context.Context, id, name string) error {
	return c.do(ctx, http.MethodPut, "/expense-category/update/"+id, map[string]string{"name": name}, nil)
}

// DeleteExpenseCategory removes a category. The backend cascades the
// delete to the category's subcategories.
func (c *Client) DeleteExpenseCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expense-category/delete/"+id, nil, nil)
}

// CreateExpenseSubcategory registers a subcategory under a category.
func (c *Client) CreateExpenseSubcategory(ctx context.Context, name, categoryID string) error {
	body := map[string]string{"name": name, "category_id": categoryID}
	return c.do(ctx, http.MethodPost, "/expense-subcategory/create", body, nil)
}

// UpdateExpenseSubcategory renames a subcategory.
func (c *Client) UpdateExpenseSubcategory(ctx context.Context, id, name string) error {
	return c.do(ctx, http.MethodPut, "/expense-subcategory/update/"+id, map[string]string{"name": name}, nil)
}

// DeleteExpenseSubcategory removes a subcategory.
func (c *Client) DeleteExpenseSubcategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/expense-subcategory/delete/"+id, nil, nil)
}
