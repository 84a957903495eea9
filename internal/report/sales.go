package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/crepepos/backoffice/internal/model"
)

// Sales list sort columns.
const (
	SaleSortDate    = "date"
	SaleSortSeller  = "seller"
	SaleSortPayment = "payment"
	SaleSortTotal   = "total"
)

// Sale kind filter values.
const (
	SaleKindProducts = "products"
	SaleKindCombos   = "combos"
)

// SalesQuery mirrors the sales screen's filter bar. Zero values mean the
// corresponding filter is inactive.
type SalesQuery struct {
	From     *time.Time
	To       *time.Time
	Search   string
	SellerID string
	Payment  string
	Kind     string
}

// FilterSales applies the query's active predicates, preserving input
// order. The free-text search matches sale id and seller name.
func FilterSales(sales []model.Sale, q SalesQuery) []model.Sale {
	var preds []Predicate[model.Sale]

	if q.Search != "" {
		preds = append(preds, TextPredicate(q.Search,
			func(s model.Sale) string { return s.ID },
			func(s model.Sale) string { return s.SellerName() },
		))
	}
	if q.From != nil || q.To != nil {
		preds = append(preds, DateRangePredicate(q.From, q.To,
			func(s model.Sale) time.Time { return s.CreatedAt }))
	}
	if q.SellerID != "" {
		preds = append(preds, EqualPredicate(q.SellerID,
			func(s model.Sale) string { return s.UserID }))
	}
	if q.Payment != "" {
		preds = append(preds, EqualPredicate(q.Payment,
			func(s model.Sale) string { return s.PaymentMethod }))
	}
	switch q.Kind {
	case SaleKindProducts:
		preds = append(preds, func(s model.Sale) bool { return s.HasProducts() })
	case SaleKindCombos:
		preds = append(preds, func(s model.Sale) bool { return s.HasCombos() })
	}

	return Apply(sales, preds...)
}

// SaleComparator returns the comparator for a sales sort column, or nil
// for an unknown column (leaving the order untouched). A sale without an
// expanded seller sorts as a missing key, never a panic.
func SaleComparator(column string) Comparator[model.Sale] {
	switch column {
	case SaleSortDate:
		return TimeKey(func(s model.Sale) (time.Time, bool) {
			return s.CreatedAt, !s.CreatedAt.IsZero()
		})
	case SaleSortSeller:
		return StringKey(func(s model.Sale) (string, bool) {
			return s.SellerName(), s.Seller != nil
		})
	case SaleSortPayment:
		return StringKey(func(s model.Sale) (string, bool) {
			return s.PaymentMethod, s.PaymentMethod != ""
		})
	case SaleSortTotal:
		return DecimalKey(func(s model.Sale) (decimal.Decimal, bool) {
			return s.Total, true
		})
	default:
		return nil
	}
}

// SalesTotal sums the stored totals of the given sales.
func SalesTotal(sales []model.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Total)
	}
	return total
}
