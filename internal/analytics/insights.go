package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/inventory_api/internal/models"
)

// StockLevel classifies a product's stock against its reorder threshold.
type StockLevel string

const (
	StockAll    StockLevel = "all"
	StockLow    StockLevel = "low"
	StockNormal StockLevel = "normal"
	StockHigh   StockLevel = "high"
)

// ParseStockLevel accepts "", all, low, normal or high.
func ParseStockLevel(s string) (StockLevel, error) {
	switch l := StockLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return StockAll, nil
	case StockAll, StockLow, StockNormal, StockHigh:
		return l, nil
	}
	return "", fmt.Errorf("unknown stock level %q", s)
}

// StockStatus returns low when stock <= min, normal up to twice the minimum,
// high above that.
func StockStatus(p *models.Product) StockLevel {
	switch {
	case p.Stock <= p.MinStock:
		return StockLow
	case p.Stock <= p.MinStock*2:
		return StockNormal
	default:
		return StockHigh
	}
}

// FilterProducts keeps products matching category (empty or "all" = any) and
// level, in input order.
func FilterProducts(products []models.Product, category string, level StockLevel) []models.Product {
	out := make([]models.Product, 0, len(products))
	for i := range products {
		p := &products[i]
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		if level != StockAll && level != "" && StockStatus(p) != level {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// SearchProducts matches term case-insensitively against name, category and
// description. An empty term returns every product.
func SearchProducts(products []models.Product, term string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return slices.Clone(products)
	}
	out := make([]models.Product, 0)
	for i := range products {
		p := &products[i]
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) ||
			(p.Description != nil && strings.Contains(strings.ToLower(*p.Description), term)) {
			out = append(out, *p)
		}
	}
	return out
}

// SalesOn returns the sales dated on the same calendar day as day, in day's
// location.
func SalesOn(sales []models.Sale, day time.Time) []models.Sale {
	out := make([]models.Sale, 0)
	for i := range sales {
		if SameDay(sales[i].Date, day, day.Location()) {
			out = append(out, sales[i])
		}
	}
	return out
}

// ProductPerformance returns the daily sales history of one product,
// ascending by date. Unknown products yield an empty series.
func ProductPerformance(productID string, products []models.Product, sales []models.Sale, loc *time.Location) []models.DailyPerformance {
	var product *models.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return []models.DailyPerformance{}
	}

	byDay := make(map[string]*models.DailyPerformance)
	for i := range sales {
		s := &sales[i]
		if s.ProductID != productID {
			continue
		}
		key := s.Date.In(loc).Format("2006-01-02")
		entry, ok := byDay[key]
		if !ok {
			entry = &models.DailyPerformance{Date: key, Revenue: decimal.Zero, Profit: decimal.Zero}
			byDay[key] = entry
		}
		cost := product.PurchasePrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
		entry.Units += s.Quantity
		entry.Revenue = entry.Revenue.Add(s.TotalPrice)
		entry.Profit = entry.Profit.Add(s.TotalPrice.Sub(cost))
	}

	out := make([]models.DailyPerformance, 0, len(byDay))
	for _, e := range byDay {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b models.DailyPerformance) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

// CategoryBreakdown summarizes stock and value (at sale price) per category,
// in order of first appearance.
func CategoryBreakdown(products []models.Product) []models.CategorySummary {
	index := make(map[string]int)
	out := make([]models.CategorySummary, 0)
	for i := range products {
		p := &products[i]
		idx, ok := index[p.Category]
		if !ok {
			idx = len(out)
			index[p.Category] = idx
			out = append(out, models.CategorySummary{Category: p.Category, TotalValue: decimal.Zero})
		}
		row := &out[idx]
		row.ProductCount++
		row.TotalStock += p.Stock
		row.TotalValue = row.TotalValue.Add(p.SalePrice.Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.IsLowStock() {
			row.LowStockCount++
		}
	}
	return out
}

// InventoryValue is the value of all stock at sale price.
func InventoryValue(products []models.Product) decimal.Decimal {
	total := decimal.Zero
	for i := range products {
		total = total.Add(products[i].SalePrice.Mul(decimal.NewFromInt(int64(products[i].Stock))))
	}
	return total
}
