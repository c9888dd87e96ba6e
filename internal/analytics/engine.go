// Package analytics derives dashboard metrics from an owner's products and
// sales. Everything here is pure apart from the memoizing Engine.
package analytics

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/telemetry"
)

// Uncategorized collects revenue of sales whose product is gone or has no
// category.
const Uncategorized = "Uncategorized"

// TopSellingLimit is the length of the top sellers list.
const TopSellingLimit = 5

var hundred = decimal.NewFromInt(100)

// Compute builds the metrics snapshot for products and sales as of now.
// Inputs are never modified. A sale whose product is missing adds revenue
// but no cost and lands in the Uncategorized bucket.
func Compute(products []models.Product, sales []models.Sale, now time.Time) models.DerivedMetrics {
	m := models.EmptyMetrics()
	m.TotalRevenue = decimal.Zero
	m.TotalCost = decimal.Zero
	m.SalesLastMonth = decimal.Zero

	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	type rollup struct {
		quantity int
		revenue  decimal.Decimal
	}
	perProduct := make(map[string]*rollup, len(products))
	windowStart := MonthBack(now)

	for i := range sales {
		s := &sales[i]
		m.TotalRevenue = m.TotalRevenue.Add(s.TotalPrice)

		category := Uncategorized
		if p, ok := byID[s.ProductID]; ok {
			m.TotalCost = m.TotalCost.Add(p.PurchasePrice.Mul(decimal.NewFromInt(int64(s.Quantity))))
			if p.Category != "" {
				category = p.Category
			}
		}
		m.SalesByCategory[category] = m.SalesByCategory[category].Add(s.TotalPrice)

		r, ok := perProduct[s.ProductID]
		if !ok {
			r = &rollup{revenue: decimal.Zero}
			perProduct[s.ProductID] = r
		}
		r.quantity += s.Quantity
		r.revenue = r.revenue.Add(s.TotalPrice)

		if !s.Date.Before(windowStart) && !s.Date.After(now) {
			m.SalesLastMonth = m.SalesLastMonth.Add(s.TotalPrice)
		}
	}

	m.TotalProfit = m.TotalRevenue.Sub(m.TotalCost)
	m.ProfitMargin = decimal.Zero
	if !m.TotalRevenue.IsZero() {
		m.ProfitMargin = m.TotalProfit.Div(m.TotalRevenue).Mul(hundred)
	}

	top := make([]models.ProductSales, 0, len(products))
	for i := range products {
		p := &products[i]
		if p.IsLowStock() {
			m.LowStockProducts = append(m.LowStockProducts, *p)
		}

		ps := models.ProductSales{ProductID: p.ID, ProductName: p.Name, TotalRevenue: decimal.Zero}
		if r, ok := perProduct[p.ID]; ok {
			ps.TotalQuantity = r.quantity
			ps.TotalRevenue = r.revenue
		}
		top = append(top, ps)
	}
	slices.SortStableFunc(top, func(a, b models.ProductSales) int {
		return cmp.Compare(b.TotalQuantity, a.TotalQuantity)
	})
	if len(top) > TopSellingLimit {
		top = top[:TopSellingLimit]
	}
	m.TopSellingProducts = top

	return m
}

// Engine memoizes the last computed snapshot keyed by Fingerprint. A miss
// always recomputes from scratch.
type Engine struct {
	clock func() time.Time

	mu     sync.Mutex
	key    uint64
	last   *models.DerivedMetrics
	hits   int
	misses int
}

// NewEngine creates an Engine reading the current time from clock.
func NewEngine(clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{clock: clock}
}

// Compute returns the metrics for products and sales, reusing the previous
// result when the fingerprint is unchanged.
func (e *Engine) Compute(products []models.Product, sales []models.Sale) models.DerivedMetrics {
	now := e.clock()
	key := Fingerprint(products, sales, now)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.last != nil && e.key == key {
		e.hits++
		telemetry.MetricsComputations.WithLabelValues("hit").Inc()
		return *e.last
	}

	result := Compute(products, sales, now)
	e.key = key
	e.last = &result
	e.misses++
	telemetry.MetricsComputations.WithLabelValues("miss").Inc()
	return result
}

// Invalidate drops the memoized snapshot.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.last = nil
	e.key = 0
	e.mu.Unlock()
}

// Stats returns the number of cache hits and misses so far.
func (e *Engine) Stats() (hits, misses int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hits, e.misses
}
