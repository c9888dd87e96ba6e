package models

import "github.com/shopspring/decimal"

// ProductSales is the per-product sales rollup used by the top sellers list.
type ProductSales struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// DerivedMetrics is the dashboard snapshot computed from products and sales.
// It is never persisted and never edited directly.
type DerivedMetrics struct {
	TotalRevenue       decimal.Decimal            `json:"totalRevenue"`
	TotalCost          decimal.Decimal            `json:"totalCost"`
	TotalProfit        decimal.Decimal            `json:"totalProfit"`
	ProfitMargin       decimal.Decimal            `json:"profitMargin"`
	LowStockProducts   []Product                  `json:"lowStockProducts"`
	TopSellingProducts []ProductSales             `json:"topSellingProducts"`
	SalesByCategory    map[string]decimal.Decimal `json:"salesByCategory"`
	SalesLastMonth     decimal.Decimal            `json:"salesLastMonth"`
}

// EmptyMetrics returns the snapshot of an owner with no products and no sales.
func EmptyMetrics() DerivedMetrics {
	return DerivedMetrics{
		LowStockProducts:   []Product{},
		TopSellingProducts: []ProductSales{},
		SalesByCategory:    map[string]decimal.Decimal{},
	}
}

// DailyPerformance is one day of a product's sales history.
type DailyPerformance struct {
	Date    string          `json:"date"`
	Units   int             `json:"sales"`
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// CategorySummary aggregates the inventory of one category.
type CategorySummary struct {
	Category      string          `json:"category"`
	ProductCount  int             `json:"productCount"`
	TotalStock    int             `json:"totalStock"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	LowStockCount int             `json:"lowStockCount"`
}

// Clone returns a deep copy so callers can't reach the engine's memoized
// snapshot.
func (m DerivedMetrics) Clone() DerivedMetrics {
	out := m
	out.LowStockProducts = append([]Product(nil), m.LowStockProducts...)
	out.TopSellingProducts = append([]ProductSales(nil), m.TopSellingProducts...)
	out.SalesByCategory = make(map[string]decimal.Decimal, len(m.SalesByCategory))
	for k, v := range m.SalesByCategory {
		out.SalesByCategory[k] = v
	}
	if out.LowStockProducts == nil {
		out.LowStockProducts = []Product{}
	}
	if out.TopSellingProducts == nil {
		out.TopSellingProducts = []ProductSales{}
	}
	return out
}
