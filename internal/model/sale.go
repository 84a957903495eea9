package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods used by the backend.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Sale is a completed sale record. Immutable once created except for
// deletion of the whole record or of individual detail lines.
type Sale struct {
	CreatedAt     time.Time       `json:"created_at"`
	ID            string          `json:"id"`
	PaymentMethod string          `json:"payment_method"`
	UserID        string          `json:"user_id"`
	Seller        *SellerRef      `json:"user,omitempty"`
	Details       []SaleDetail    `json:"sale_detail,omitempty"`
	Total         decimal.Decimal `json:"total"`
}

// SellerRef is the expanded seller embedded in sale responses.
type SellerRef struct {
	Name string `json:"name"`
}

// SellerName returns the seller display name, or empty when the backend
// did not expand the reference.
func (s *Sale) SellerName() string {
	if s.Seller == nil {
		return ""
	}
	return s.Seller.Name
}

// RecomputedTotal sums the subtotals of the remaining detail lines.
// The backend does not recompute the stored total when a line is deleted,
// so callers display both values and let the discrepancy show.
func (s *Sale) RecomputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range s.Details {
		total = total.Add(d.Subtotal)
	}
	return total
}

// HasProducts reports whether any detail line references a product.
func (s *Sale) HasProducts() bool {
	for _, d := range s.Details {
		if d.Product != nil {
			return true
		}
	}
	return false
}

// HasCombos reports whether any detail line references a combo.
func (s *Sale) HasCombos() bool {
	for _, d := range s.Details {
		if d.Combo != nil {
			return true
		}
	}
	return false
}

// SaleDetail is one line item within a sale, referencing either a product
// or a combo.
type SaleDetail struct {
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ID        string          `json:"id"`
	SaleID    string          `json:"sale_id"`
	ProductID string          `json:"product_id,omitempty"`
	ComboID   string          `json:"combo_id,omitempty"`
	Product   *SaleLineItem   `json:"product,omitempty"`
	Combo     *SaleLineCombo  `json:"combo,omitempty"`
	Amount    int             `json:"amount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// LineName returns the display name of whichever item the line references.
func (d *SaleDetail) LineName() string {
	switch {
	case d.Product != nil:
		return d.Product.Name
	case d.Combo != nil:
		return d.Combo.Name
	default:
		return ""
	}
}

// SaleLineItem is the expanded product embedded in a sale detail.
type SaleLineItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// SaleLineCombo is the expanded combo embedded in a sale detail.
type SaleLineCombo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}
