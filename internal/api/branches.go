package api

import (
	"context"

	"github.com/crepepos/backoffice/internal/model"
)

// Branches returns every branch known to the backend.
func (c *Client) Branches(ctx context.Context) ([]model.Branch, error) {
	var branches []model.Branch
	if err := c.get(ctx, "/branch/all", nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// UserBranches returns all user-branch assignment links.
func (c *Client) UserBranches(ctx context.Context) ([]model.UserBranch, error) {
	var links []model.UserBranch
	if err := c.get(ctx, "/user/branch/all", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}
