package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a branch-scoped expense record. Category and subcategory form
// a strict two-level hierarchy: an expense may reference a subcategory
// without duplicating the category, in which case the category is inferred
// through the subcategory's parent when grouping.
type Expense struct {
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Date          time.Time           `json:"date"`
	ID            string              `json:"id"`
	Description   string              `json:"description,omitempty"`
	CategoryID    string              `json:"category_id,omitempty"`
	SubcategoryID string              `json:"subcategory_id,omitempty"`
	BranchID      string              `json:"branch_id,omitempty"`
	Category      *ExpenseCategory    `json:"category,omitempty"`
	Subcategory   *ExpenseSubcategory `json:"subcategory,omitempty"`
	Amount        decimal.Decimal     `json:"amount"`
}

// ExpenseCategory is a named grouping node owning zero or more
// subcategories. Deleting a category cascades to its subcategories on the
// backend; management screens must not assume otherwise.
type ExpenseCategory struct {
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	BranchID      string               `json:"branch_id,omitempty"`
	Subcategories []ExpenseSubcategory `json:"expense_subcategory,omitempty"`
}

// ExpenseSubcategory belongs to exactly one category.
type ExpenseSubcategory struct {
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
}

// ExpenseCreate is the payload for registering an expense.
type ExpenseCreate struct {
	Date          string          `json:"date"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id"`
	SubcategoryID string          `json:"subcategory_id,omitempty"`
	BranchID      string          `json:"branch_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// ExpenseUpdate is the payload for updating an expense. Zero-valued fields
// are omitted so the backend keeps the current values.
type ExpenseUpdate struct {
	ID            string           `json:"id"`
	Date          string           `json:"date,omitempty"`
	Description   string           `json:"description,omitempty"`
	CategoryID    string           `json:"category_id,omitempty"`
	SubcategoryID string           `json:"subcategory_id,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}
