package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item scoped to a branch.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	TypeID   string          `json:"type_id"`
	BranchID string          `json:"branch_id"`
	Type     *TypeRef        `json:"type_product,omitempty"`
	IsActive bool            `json:"is_active"`
}

// TypeRef is the expanded product type embedded in product responses.
type TypeRef struct {
	Name string `json:"name"`
}

// TypeProduct is a product type record from the catalog.
type TypeProduct struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BranchID    string    `json:"branch_id"`
}

// ProductRegister is the payload for creating a product. The id is
// client-generated; the backend stores it verbatim.
type ProductRegister struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	TypeID   string          `json:"type_id"`
	BranchID string          `json:"branch_id"`
}

// ProductUpdate is the payload for updating a product.
type ProductUpdate struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	TypeID   string          `json:"type_id"`
	IsActive bool            `json:"is_active"`
}

// ProductIngredient links a product to one of its ingredients with the
// amount consumed per unit sold.
type ProductIngredient struct {
	UpdatedAt    time.Time   `json:"updated_at"`
	ID           string      `json:"id"`
	ProductID    string      `json:"product_id"`
	IngredientID string      `json:"ingredient_id"`
	Ingredient   *Ingredient `json:"ingredient,omitempty"`
	Amount       float64     `json:"amount"`
	IsBase       bool        `json:"is_base"`
}
