package model

import "github.com/shopspring/decimal"

// Ingredient is a stock item scoped to a branch. Stock levels are plain
// quantities; only the unit cost is money.
type Ingredient struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	UnitMeasurement string          `json:"unit_measurement"`
	BranchID        string          `json:"branch_id"`
	CostUnit        decimal.Decimal `json:"cost_unit"`
	CurrentStock    float64         `json:"current_stock"`
	MinStock        float64         `json:"min_stock"`
}

// BelowMinimum reports whether the ingredient needs restocking.
func (i *Ingredient) BelowMinimum() bool {
	return i.CurrentStock < i.MinStock
}

// IngredientAdd is the payload for registering an ingredient.
type IngredientAdd struct {
	Name            string          `json:"name"`
	UnitMeasurement string          `json:"unit_measurement"`
	BranchID        string          `json:"branch_id"`
	CostUnit        decimal.Decimal `json:"cost_unit"`
	CurrentStock    float64         `json:"current_stock"`
	MinStock        float64         `json:"min_stock"`
}
