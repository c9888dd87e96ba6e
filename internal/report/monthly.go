// Package report renders owner data into downloadable artifacts: the
// monthly PDF summary and the inventory workbook.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/inventory_api/internal/analytics"
	"github.com/GTDGit/inventory_api/internal/models"
)

// DefaultListLimit is how many sales or low-stock products a report lists
// before collapsing the rest into a "+N more" line.
const DefaultListLimit = 10

// MonthlyReport is the data behind the monthly PDF.
type MonthlyReport struct {
	Month          time.Month
	Year           int
	GeneratedAt    time.Time
	Revenue        decimal.Decimal
	UnitsSold      int
	SalesCount     int
	ProductCount   int
	LowStockCount  int
	InventoryValue decimal.Decimal
	Sales          []models.Sale
	MoreSales      int
	LowStock       []models.Product
	MoreLowStock   int
}

// Period returns e.g. "March 2026".
func (r *MonthlyReport) Period() string {
	return fmt.Sprintf("%s %d", r.Month, r.Year)
}

// FileName returns the download name of the PDF.
func (r *MonthlyReport) FileName() string {
	return fmt.Sprintf("monthly-report-%d-%d.pdf", int(r.Month), r.Year)
}

// BuildMonthly summarizes the calendar month of now. Listings keep input
// order and stop after limit entries.
func BuildMonthly(products []models.Product, sales []models.Sale, now time.Time, limit int) MonthlyReport {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	r := MonthlyReport{
		Month:          now.Month(),
		Year:           now.Year(),
		GeneratedAt:    now,
		Revenue:        decimal.Zero,
		ProductCount:   len(products),
		InventoryValue: analytics.InventoryValue(products),
		Sales:          []models.Sale{},
		LowStock:       []models.Product{},
	}

	for i := range sales {
		s := &sales[i]
		if !analytics.SameMonth(s.Date, now, now.Location()) {
			continue
		}
		r.SalesCount++
		r.UnitsSold += s.Quantity
		r.Revenue = r.Revenue.Add(s.TotalPrice)
		if len(r.Sales) < limit {
			r.Sales = append(r.Sales, *s)
		}
	}
	r.MoreSales = r.SalesCount - len(r.Sales)

	for i := range products {
		if !products[i].IsLowStock() {
			continue
		}
		r.LowStockCount++
		if len(r.LowStock) < limit {
			r.LowStock = append(r.LowStock, products[i])
		}
	}
	r.MoreLowStock = r.LowStockCount - len(r.LowStock)

	return r
}
