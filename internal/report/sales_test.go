package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crepepos/backoffice/internal/model"
)

func fixtureSales() []model.Sale {
	return []model.Sale{
		{
			ID:            "sale-001",
			CreatedAt:     stamp("2024-01-10T09:15:00"),
			PaymentMethod: model.PaymentCash,
			UserID:        "u1",
			Seller:        &model.SellerRef{Name: "Ana"},
			Total:         money("120.00"),
			Details: []model.SaleDetail{
				{ID: "d1", Product: &model.SaleLineItem{Name: "Crepe"}, Amount: 2, Subtotal: money("120.00")},
			},
		},
		{
			ID:            "sale-002",
			CreatedAt:     stamp("2024-01-10T23:00:00"),
			PaymentMethod: model.PaymentCard,
			UserID:        "u2",
			Seller:        &model.SellerRef{Name: "Luis"},
			Total:         money("80.00"),
			Details: []model.SaleDetail{
				{ID: "d2", Combo: &model.SaleLineCombo{Name: "Friday Combo"}, Amount: 1, Subtotal: money("80.00")},
			},
		},
		{
			ID:            "sale-003",
			CreatedAt:     stamp("2024-01-11T00:00:01"),
			PaymentMethod: model.PaymentCash,
			UserID:        "u1",
			Total:         money("45.50"),
		},
	}
}

func TestFilterSales(t *testing.T) {
	from, to := day("2024-01-10"), day("2024-01-10")

	tests := []struct {
		name    string
		query   SalesQuery
		wantIDs []string
	}{
		{
			name:    "no filters keeps everything",
			query:   SalesQuery{},
			wantIDs: []string{"sale-001", "sale-002", "sale-003"},
		},
		{
			name:    "search matches seller name case-insensitively",
			query:   SalesQuery{Search: "ana"},
			wantIDs: []string{"sale-001"},
		},
		{
			name:    "search matches sale id",
			query:   SalesQuery{Search: "sale-002"},
			wantIDs: []string{"sale-002"},
		},
		{
			name:    "single-day range includes the whole day",
			query:   SalesQuery{From: &from, To: &to},
			wantIDs: []string{"sale-001", "sale-002"},
		},
		{
			name:    "seller filter",
			query:   SalesQuery{SellerID: "u1"},
			wantIDs: []string{"sale-001", "sale-003"},
		},
		{
			name:    "payment filter",
			query:   SalesQuery{Payment: model.PaymentCard},
			wantIDs: []string{"sale-002"},
		},
		{
			name:    "kind filter products",
			query:   SalesQuery{Kind: SaleKindProducts},
			wantIDs: []string{"sale-001"},
		},
		{
			name:    "kind filter combos",
			query:   SalesQuery{Kind: SaleKindCombos},
			wantIDs: []string{"sale-002"},
		},
		{
			name:    "filters AND together",
			query:   SalesQuery{From: &from, To: &to, SellerID: "u1"},
			wantIDs: []string{"sale-001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSales(fixtureSales(), tt.query)
			ids := make([]string, len(got))
			for i, s := range got {
				ids[i] = s.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSaleComparatorColumns(t *testing.T) {
	sales := fixtureSales()

	byDate := SortBy(sales, SaleComparator(SaleSortDate), Descending)
	assert.Equal(t, "sale-003", byDate[0].ID)

	byTotal := SortBy(sales, SaleComparator(SaleSortTotal), Ascending)
	assert.Equal(t, "sale-003", byTotal[0].ID)
	assert.Equal(t, "sale-001", byTotal[2].ID)

	byPayment := SortBy(sales, SaleComparator(SaleSortPayment), Ascending)
	assert.Equal(t, model.PaymentCard, byPayment[0].PaymentMethod)
}

func TestSaleComparatorMissingSeller(t *testing.T) {
	sales := fixtureSales()

	// sale-003 has no expanded seller; it must sort after present values
	// ascending and never panic.
	bySeller := SortBy(sales, SaleComparator(SaleSortSeller), Ascending)
	require.Len(t, bySeller, 3)
	assert.Equal(t, "sale-001", bySeller[0].ID)
	assert.Equal(t, "sale-002", bySeller[1].ID)
	assert.Equal(t, "sale-003", bySeller[2].ID)

	desc := SortBy(sales, SaleComparator(SaleSortSeller), Descending)
	assert.Equal(t, "sale-003", desc[0].ID, "missing seller sorts first descending")
}

func TestSaleComparatorUnknownColumn(t *testing.T) {
	assert.Nil(t, SaleComparator("nonsense"))
}

func TestSalesTotal(t *testing.T) {
	total := SalesTotal(fixtureSales())
	assert.True(t, total.Equal(money("245.50")), "got %s", total)
	assert.True(t, SalesTotal(nil).IsZero())
}

func TestFilterSortPaginatePipeline(t *testing.T) {
	// The list screen composes the three stages in order; pagination is
	// strictly last.
	sales := fixtureSales()
	filtered := FilterSales(sales, SalesQuery{Payment: model.PaymentCash})
	sorted := SortBy(filtered, SaleComparator(SaleSortDate), Descending)
	page := Paginate(sorted, 1, 1)

	require.Len(t, page, 1)
	assert.Equal(t, "sale-003", page[0].ID)
}
