package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Combo is a bundled, day-restricted product offering sold as a single
// sale line. ComboDay is a comma-separated list of weekday names; empty
// means the combo is available every day.
type Combo struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	BranchID    string          `json:"branch_id"`
	ComboDay    string          `json:"combo_day,omitempty"`
	IsActive    bool            `json:"is_active"`
}

// Days returns the weekday names the combo is restricted to, or nil when
// unrestricted.
func (c *Combo) Days() []string {
	if c.ComboDay == "" {
		return nil
	}
	parts := strings.Split(c.ComboDay, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if d := strings.TrimSpace(p); d != "" {
			days = append(days, d)
		}
	}
	return days
}

// AvailableOn reports whether the combo can be sold on the given weekday
// name. Matching is case-insensitive.
func (c *Combo) AvailableOn(day string) bool {
	days := c.Days()
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if strings.EqualFold(d, day) {
			return true
		}
	}
	return false
}
