package api

import (
	"context"
	"net/http"

	"github.com/crepepos/backoffice/internal/model"
)

// Users returns all staff accounts.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/user/all", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserRoles returns the role catalog.
func (c *Client) UserRoles(ctx context.Context) ([]model.UserRole, error) {
	var roles []model.UserRole
	if err := c.get(ctx, "/user/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// Cashiers returns the accounts that can appear as sellers on sales.
func (c *Client) Cashiers(ctx context.Context) ([]model.User, error) {
	var cashiers []model.User
	if err := c.get(ctx, "/user/cashier", nil, &cashiers); err != nil {
		return nil, err
	}
	return cashiers, nil
}

// CreateUser registers a staff account.
func (c *Client) CreateUser(ctx context.Context, user model.UserRegister) error {
	return c.do(ctx, http.MethodPost, "/user/create", user, nil)
}

// UpdateUser updates a staff account.
func (c *Client) UpdateUser(ctx context.Context, id string, user model.UserUpdate) error {
	return c.do(ctx, http.MethodPut, "/user/update/"+id, user, nil)
}

// DeleteUser removes a staff account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/delete/"+id, nil, nil)
}
