package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/crepepos/backoffice/internal/model"
)

// Sales returns all sale records with their detail lines.
func (c *Client) Sales(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := c.get(ctx, "/sale/all", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// SaleDetails returns the detail lines of one sale.
func (c *Client) SaleDetails(ctx context.Context, saleID string) ([]model.SaleDetail, error) {
	var details []model.SaleDetail
	if err := c.get(ctx, "/sale/detail/"+saleID, nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// DeleteSale removes a whole sale record.
func (c *Client) DeleteSale(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sale/delete", map[string]string{"id": id}, nil)
}

// DeleteSaleDetail removes a single detail line. The backend does not
// recompute the parent sale's stored total; callers must re-fetch and
// surface the recomputed sum alongside the stored one.
func (c *Client) DeleteSaleDetail(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sale/detail/delete", map[string]string{"id": id}, nil)
}

// PeriodQuery scopes a summary request. Period is a symbolic name
// (today, week, month, custom); StartDate and EndDate are only sent for
// custom periods, as YYYY-MM-DD.
type PeriodQuery struct {
	Period    string
	StartDate string
	EndDate   string
}

func (p PeriodQuery) values(branchID string) url.Values {
	q := url.Values{}
	if branchID != "" {
		q.Set("branch_id", branchID)
	}
	if p.Period != "" {
		q.Set("period", p.Period)
	}
	if p.StartDate != "" {
		q.Set("startDate", p.StartDate)
	}
	if p.EndDate != "" {
		q.Set("endDate", p.EndDate)
	}
	return q
}

// DashboardStats returns the server-aggregated sales snapshot for a branch
// and period.
func (c *Client) DashboardStats(ctx context.Context, branchID string, period PeriodQuery) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := c.get(ctx, "/dashboard/stats", period.values(branchID), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
