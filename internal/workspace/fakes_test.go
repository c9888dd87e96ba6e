package workspace

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/utils"
)

var (
	testNow    = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	errBackend = fmt.Errorf("connection refused")
)

type fakeProducts struct {
	mu             sync.Mutex
	items          []models.Product
	seq            int
	listErr        error
	insertErr      error
	updateErr      error
	deleteErr      error
	insertCalls    int
	updateCalls    int
	decrementCalls int
	// listGate, when set, holds ListByOwner until closed.
	listGate chan struct{}
}

func (f *fakeProducts) ListByOwner(_ context.Context, ownerID string) ([]models.Product, error) {
	if f.listGate != nil {
		<-f.listGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Product{}
	for _, p := range f.items {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) Insert(_ context.Context, ownerID string, in *models.ProductInput) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.seq++
	p := models.Product{
		ID:            fmt.Sprintf("p%d", f.seq),
		OwnerID:       ownerID,
		Name:          in.Name,
		Category:      in.Category,
		Stock:         in.Stock,
		MinStock:      in.MinStock,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Description:   in.Description,
		Supplier:      in.Supplier,
		CreatedAt:     testNow,
		LastUpdated:   testNow,
	}
	f.items = append(f.items, p)
	return &p, nil
}

func (f *fakeProducts) Update(_ context.Context, id, ownerID string, patch *models.ProductPatch) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.items {
		p := &f.items[i]
		if p.ID != id || p.OwnerID != ownerID {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		if patch.MinStock != nil {
			p.MinStock = *patch.MinStock
		}
		if patch.PurchasePrice != nil {
			p.PurchasePrice = *patch.PurchasePrice
		}
		if patch.SalePrice != nil {
			p.SalePrice = *patch.SalePrice
		}
		p.LastUpdated = testNow.Add(time.Minute)
		out := *p
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeProducts) DecrementStock(_ context.Context, id, ownerID string, qty int) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decrementCalls++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.items {
		p := &f.items[i]
		if p.ID != id || p.OwnerID != ownerID {
			continue
		}
		if p.Stock < qty {
			return nil, fmt.Errorf("%w: stored quantity is below %d", utils.ErrInsufficientStock, qty)
		}
		p.Stock -= qty
		p.LastUpdated = testNow.Add(time.Minute)
		out := *p
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

// setStock changes a stored row behind the workspace's back.
func (f *fakeProducts) setStock(id string, stock int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Stock = stock
		}
	}
}

func (f *fakeProducts) Delete(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	n := len(f.items)
	f.items = slices.DeleteFunc(f.items, func(p models.Product) bool { return p.ID == id && p.OwnerID == ownerID })
	if len(f.items) == n {
		return sql.ErrNoRows
	}
	return nil
}

func (f *fakeProducts) stock(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.items {
		if p.ID == id {
			return p.Stock
		}
	}
	return -1
}

type fakeSales struct {
	mu          sync.Mutex
	items       []models.Sale
	seq         int
	listErr     error
	insertErr   error
	insertCalls int
}

func (f *fakeSales) ListByOwner(_ context.Context, ownerID string) ([]models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Sale{}
	for _, s := range f.items {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSales) Insert(_ context.Context, s *models.Sale) (*models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.seq++
	out := *s
	out.ID = fmt.Sprintf("s%d", f.seq)
	out.CreatedAt = testNow
	f.items = append(f.items, out)
	return &out, nil
}

func (f *fakeSales) Delete(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.items)
	f.items = slices.DeleteFunc(f.items, func(s models.Sale) bool { return s.ID == id && s.OwnerID == ownerID })
	if len(f.items) == n {
		return sql.ErrNoRows
	}
	return nil
}

type fakeEvents struct {
	mu    sync.Mutex
	items []models.CalendarEvent
	seq   int
}

func (f *fakeEvents) ListByOwner(_ context.Context, ownerID string) ([]models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.CalendarEvent{}
	for _, e := range f.items {
		if e.OwnerID == ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEvents) Insert(_ context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	out := *e
	out.ID = fmt.Sprintf("e%d", f.seq)
	f.items = append(f.items, out)
	return &out, nil
}

func (f *fakeEvents) Update(_ context.Context, id, ownerID string, patch *models.EventPatch) (*models.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		e := &f.items[i]
		if e.ID != id || e.OwnerID != ownerID {
			continue
		}
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		if patch.Date != nil {
			e.Date = *patch.Date
		}
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		out := *e
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEvents) Delete(_ context.Context, id, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = slices.DeleteFunc(f.items, func(e models.CalendarEvent) bool { return e.ID == id && e.OwnerID == ownerID })
	return nil
}

type fakeCategories struct {
	mu    sync.Mutex
	names []string
}

func (f *fakeCategories) ListByOwner(context.Context, string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.names), nil
}

func (f *fakeCategories) Insert(_ context.Context, _ string, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if slices.Contains(f.names, name) {
		return fmt.Errorf("%w: %s", utils.ErrCategoryExists, name)
	}
	f.names = append(f.names, name)
	return nil
}

func (f *fakeCategories) Rename(_ context.Context, _ string, oldName, newName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := slices.Index(f.names, oldName); i >= 0 {
		f.names[i] = newName
		return nil
	}
	f.names = append(f.names, newName)
	return nil
}

func (f *fakeCategories) Delete(_ context.Context, _ string, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = slices.DeleteFunc(f.names, func(n string) bool { return n == name })
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls int
	last  models.DerivedMetrics
}

func (n *recordingNotifier) MetricsChanged(_ string, m models.DerivedMetrics) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	n.last = m
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

type fixture struct {
	products   *fakeProducts
	sales      *fakeSales
	events     *fakeEvents
	categories *fakeCategories
	notifier   *recordingNotifier
}

func newFixture() *fixture {
	return &fixture{
		products:   &fakeProducts{},
		sales:      &fakeSales{},
		events:     &fakeEvents{},
		categories: &fakeCategories{},
		notifier:   &recordingNotifier{},
	}
}

func (f *fixture) stores() Stores {
	return Stores{
		Products:   f.products,
		Sales:      f.sales,
		Events:     f.events,
		Categories: f.categories,
	}
}

func (f *fixture) workspace(ownerID string) *Workspace {
	return New(ownerID, f.stores(), Options{
		Clock:    func() time.Time { return testNow },
		Notifier: f.notifier,
	})
}

func (f *fixture) seedProduct(ownerID, id, category string, stock, minStock int, purchase, sale string) {
	f.products.items = append(f.products.items, models.Product{
		ID:            id,
		OwnerID:       ownerID,
		Name:          "Product " + id,
		Category:      category,
		Stock:         stock,
		MinStock:      minStock,
		PurchasePrice: decimal.RequireFromString(purchase),
		SalePrice:     decimal.RequireFromString(sale),
	})
}
