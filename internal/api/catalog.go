package api

import (
	"context"
	"net/http"

	"github.com/crepepos/backoffice/internal/model"
)

// Products returns the product catalog across all branches; callers filter
// by the active branch.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.get(ctx, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct registers a product. The id in the payload is
// client-generated.
func (c *Client) CreateProduct(ctx context.Context, product model.ProductRegister) error {
	return c.do(ctx, http.MethodPost, "/product/create", product, nil)
}

// UpdateProduct updates a product in place.
func (c *Client) UpdateProduct(ctx context.Context, product model.ProductUpdate) error {
	return c.do(ctx, http.MethodPut, "/product/update", product, nil)
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/product/delete", map[string]string{"id": id}, nil)
}

// TypeProducts returns the product type catalog.
func (c *Client) TypeProducts(ctx context.Context) ([]model.TypeProduct, error) {
	var types []model.TypeProduct
	if err := c.get(ctx, "/type_products", nil, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// ProductIngredients returns the recipe lines of one product.
func (c *Client) ProductIngredients(ctx context.Context, productID string) ([]model.ProductIngredient, error) {
	var lines []model.ProductIngredient
	if err := c.get(ctx, "/product/ingredient/"+productID, nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// AddProductIngredient attaches an ingredient to a product recipe.
func (c *Client) AddProductIngredient(ctx context.Context, productID, ingredientID string, amount float64, isBase bool) error {
	body := map[string]any{
		"amount":        amount,
		"is_base":       isBase,
		"ingredient_id": ingredientID,
		"product_id":    productID,
	}
	return c.do(ctx, http.MethodPost, "/product/ingredient/create", body, nil)
}

// DeleteProductIngredient removes a recipe line.
func (c *Client) DeleteProductIngredient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/product/ingredient/delete", map[string]string{"id": id}, nil)
}

// Ingredients returns the ingredient stock list across all branches.
func (c *Client) Ingredients(ctx context.Context) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := c.get(ctx, "/ingredients", nil, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

// CreateIngredient registers an ingredient.
func (c *Client) CreateIngredient(ctx context.Context, ingredient model.IngredientAdd) error {
	return c.do(ctx, http.MethodPost, "/ingredient/create", ingredient, nil)
}

// UpdateIngredient updates an ingredient in place.
func (c *Client) UpdateIngredient(ctx context.Context, ingredient model.Ingredient) error {
	return c.do(ctx, http.MethodPut, "/ingredient/update", ingredient, nil)
}

// DeleteIngredient removes an ingredient by id.
func (c *Client) DeleteIngredient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/ingredient/delete", map[string]string{"id": id}, nil)
}

// Combos returns the combo catalog across all branches.
func (c *Client) Combos(ctx context.Context) ([]model.Combo, error) {
	var combos []model.Combo
	if err := c.get(ctx, "/combo/all", nil, &combos); err != nil {
		return nil, err
	}
	return combos, nil
}

// CreateCombo registers a combo.
func (c *Client) CreateCombo(ctx context.Context, combo model.Combo) error {
	return c.do(ctx, http.MethodPost, "/combo/create", combo, nil)
}

// UpdateCombo updates a combo in place.
func (c *Client) UpdateCombo(ctx context.Context, combo model.Combo) error {
	return c.do(ctx, http.MethodPut, "/combo/update", combo, nil)
}

// DeleteCombo removes a combo by id.
func (c *Client) DeleteCombo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/combo/delete/"+id, nil, nil)
}
