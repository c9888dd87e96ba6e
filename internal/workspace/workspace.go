// Package workspace holds the in-memory state of one signed-in owner: the
// last fetched products, sales, categories and events plus the derived
// metrics. Every mutation goes through the record store first; the snapshot
// only changes after the store accepted the write.
package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/GTDGit/inventory_api/internal/analytics"
	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/telemetry"
	"github.com/GTDGit/inventory_api/internal/utils"
)

// Snapshot is a copy of a workspace's state. Mutating it has no effect on
// the workspace.
type Snapshot struct {
	Products   []models.Product       `json:"products"`
	Sales      []models.Sale          `json:"sales"`
	Categories []string               `json:"categories"`
	Events     []models.CalendarEvent `json:"events"`
	Metrics    models.DerivedMetrics  `json:"metrics"`
	LastError  string                 `json:"lastError,omitempty"`
}

// Options configure a Workspace. Zero values get defaults.
type Options struct {
	Location *time.Location
	Clock    func() time.Time
	Notifier Notifier
}

// Workspace is the state container of a single owner.
type Workspace struct {
	ownerID  string
	stores   Stores
	notifier Notifier
	engine   *analytics.Engine
	loc      *time.Location
	clock    func() time.Time

	// writeMu serializes mutations and reloads.
	writeMu sync.Mutex

	mu         sync.RWMutex
	products   []models.Product
	sales      []models.Sale
	categories []string
	events     []models.CalendarEvent
	metrics    models.DerivedMetrics
	lastErr    string
}

// New creates an empty workspace for ownerID. Call Load to fill it.
func New(ownerID string, stores Stores, opts Options) *Workspace {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().In(loc) }
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NopNotifier{}
	}

	return &Workspace{
		ownerID:    ownerID,
		stores:     stores,
		notifier:   notifier,
		engine:     analytics.NewEngine(clock),
		loc:        loc,
		clock:      clock,
		products:   []models.Product{},
		sales:      []models.Sale{},
		categories: []string{},
		events:     []models.CalendarEvent{},
		metrics:    models.EmptyMetrics(),
	}
}

// OwnerID returns the owner this workspace belongs to.
func (w *Workspace) OwnerID() string {
	return w.ownerID
}

// Location returns the time zone used for calendar arithmetic.
func (w *Workspace) Location() *time.Location {
	return w.loc
}

// Load fetches all four record kinds concurrently. Each successful fetch
// replaces its part of the snapshot; a failed one leaves it as it was. The
// first failure is recorded and returned.
func (w *Workspace) Load(ctx context.Context) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		products, err := w.stores.Products.ListByOwner(ctx, w.ownerID)
		if err != nil {
			return fmt.Errorf("%w: list products: %v", utils.ErrStore, err)
		}
		w.mu.Lock()
		w.products = products
		w.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		sales, err := w.stores.Sales.ListByOwner(ctx, w.ownerID)
		if err != nil {
			return fmt.Errorf("%w: list sales: %v", utils.ErrStore, err)
		}
		w.mu.Lock()
		w.sales = sales
		w.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		categories, err := w.stores.Categories.ListByOwner(ctx, w.ownerID)
		if err != nil {
			return fmt.Errorf("%w: list categories: %v", utils.ErrStore, err)
		}
		w.mu.Lock()
		w.categories = categories
		w.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		events, err := w.stores.Events.ListByOwner(ctx, w.ownerID)
		if err != nil {
			return fmt.Errorf("%w: list events: %v", utils.ErrStore, err)
		}
		w.mu.Lock()
		w.events = events
		w.mu.Unlock()
		return nil
	})
	err := g.Wait()

	w.mu.Lock()
	w.categories = mergeCategories(w.categories, w.products)
	w.mu.Unlock()

	w.engine.Invalidate()
	w.recompute()

	if err != nil {
		log.Warn().Err(err).Str("owner_id", w.ownerID).Msg("workspace load incomplete")
		return w.fail("load", err)
	}
	w.succeed("load")
	log.Debug().
		Str("owner_id", w.ownerID).
		Int("products", len(w.products)).
		Int("sales", len(w.sales)).
		Msg("workspace loaded")
	return nil
}

// ---- products ----

// AddProduct validates in, stores it and adds the stored product to the
// snapshot. An unseen category is registered along the way.
func (w *Workspace) AddProduct(ctx context.Context, in *models.ProductInput) (*models.Product, error) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if err := validateProductInput(in); err != nil {
		return nil, w.fail("product", err)
	}

	p, err := w.stores.Products.Insert(ctx, w.ownerID, in)
	if err != nil {
		return nil, w.fail("product", storeErr("insert product", err, utils.ErrProductNotFound))
	}

	w.registerCategory(ctx, p.Category)
	w.mu.Lock()
	w.products = append([]models.Product{*p}, w.products...)
	w.mu.Unlock()

	w.recompute()
	w.succeed("product")
	return p, nil
}

// UpdateProduct applies patch to the product and replaces it with the stored
// record.
func (w *Workspace) UpdateProduct(ctx context.Context, id string, patch *models.ProductPatch) (*models.Product, error) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if err := validateProductPatch(patch); err != nil {
		return nil, w.fail("product", err)
	}
	if w.productIndex(id) < 0 {
		return nil, w.fail("product", utils.ErrProductNotFound)
	}

	p, err := w.stores.Products.Update(ctx, id, w.ownerID, patch)
	if err != nil {
		return nil, w.fail("product", storeErr("update product", err, utils.ErrProductNotFound))
	}

	if patch.Category != nil {
		w.registerCategory(ctx, p.Category)
	}
	w.replaceProduct(*p)

	w.recompute()
	w.succeed("product")
	return p, nil
}

// DeleteProduct removes a product. Its sales stay and are reported under
// the uncategorized bucket from then on.
func (w *Workspace) DeleteProduct(ctx context.Context, id string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if w.productIndex(id) < 0 {
		return w.fail("product", utils.ErrProductNotFound)
	}
	if err := w.stores.Products.Delete(ctx, id, w.ownerID); err != nil {
		return w.fail("product", storeErr("delete product", err, utils.ErrProductNotFound))
	}

	w.mu.Lock()
	w.products = slices.DeleteFunc(slices.Clone(w.products), func(p models.Product) bool { return p.ID == id })
	w.mu.Unlock()

	w.recompute()
	w.succeed("product")
	return nil
}

// ---- sales ----

// AddSale records a sale and then decrements the product's stock. Validation
// and the stock check happen before any write. When the decrement fails the
// sale is kept and the returned error wraps utils.ErrStockSync.
func (w *Workspace) AddSale(ctx context.Context, in *models.SaleInput) (*models.Sale, error) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if in.Quantity < 1 {
		return nil, w.fail("sale", fmt.Errorf("%w: quantity must be at least 1", utils.ErrValidation))
	}
	if in.UnitPrice.IsNegative() {
		return nil, w.fail("sale", fmt.Errorf("%w: unit price must not be negative", utils.ErrValidation))
	}
	idx := w.productIndex(in.ProductID)
	if idx < 0 {
		return nil, w.fail("sale", utils.ErrProductNotFound)
	}
	product := w.products[idx]
	if product.Stock < in.Quantity {
		return nil, w.fail("sale", fmt.Errorf("%w: %d available, %d requested",
			utils.ErrInsufficientStock, product.Stock, in.Quantity))
	}

	unitPrice := in.UnitPrice
	if unitPrice.IsZero() {
		unitPrice = product.SalePrice
	}
	date := in.Date
	if date.IsZero() {
		date = w.clock()
	}

	sale, err := w.stores.Sales.Insert(ctx, &models.Sale{
		OwnerID:       w.ownerID,
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      in.Quantity,
		UnitPrice:     unitPrice,
		TotalPrice:    unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
		Date:          date,
		Customer:      in.Customer,
		CustomerEmail: in.CustomerEmail,
	})
	if err != nil {
		return nil, w.fail("sale", storeErr("insert sale", err, utils.ErrSaleNotFound))
	}

	w.mu.Lock()
	w.sales = append([]models.Sale{*sale}, w.sales...)
	w.mu.Unlock()

	updated, err := w.stores.Products.DecrementStock(ctx, product.ID, w.ownerID, in.Quantity)
	if err != nil {
		w.recompute()
		log.Error().Err(err).
			Str("owner_id", w.ownerID).
			Str("sale_id", sale.ID).
			Str("product_id", product.ID).
			Msg("sale stored but stock decrement failed")
		return sale, w.fail("sale", fmt.Errorf("%w: sale %s recorded, stock of %s not updated: %v",
			utils.ErrStockSync, sale.ID, product.Name, err))
	}
	w.replaceProduct(*updated)

	w.recompute()
	w.succeed("sale")
	return sale, nil
}

// DeleteSale removes a sale. Stock is not restored.
func (w *Workspace) DeleteSale(ctx context.Context, id string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if !slices.ContainsFunc(w.sales, func(s models.Sale) bool { return s.ID == id }) {
		return w.fail("sale", utils.ErrSaleNotFound)
	}
	if err := w.stores.Sales.Delete(ctx, id, w.ownerID); err != nil {
		return w.fail("sale", storeErr("delete sale", err, utils.ErrSaleNotFound))
	}

	w.mu.Lock()
	w.sales = slices.DeleteFunc(slices.Clone(w.sales), func(s models.Sale) bool { return s.ID == id })
	w.mu.Unlock()

	w.recompute()
	w.succeed("sale")
	return nil
}

// ---- events ----

// AddEvent stores a calendar event. Events never affect metrics.
func (w *Workspace) AddEvent(ctx context.Context, in *models.EventInput) (*models.CalendarEvent, error) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, w.fail("event", fmt.Errorf("%w: title is required", utils.ErrValidation))
	}
	if in.Date.IsZero() {
		return nil, w.fail("event", fmt.Errorf("%w: date is required", utils.ErrValidation))
	}
	typ, err := models.ParseEventType(in.Type)
	if err != nil {
		return nil, w.fail("event", fmt.Errorf("%w: %v", utils.ErrValidation, err))
	}

	e, err := w.stores.Events.Insert(ctx, &models.CalendarEvent{
		OwnerID:     w.ownerID,
		Title:       title,
		Description: in.Description,
		Date:        in.Date,
		Type:        typ,
		Color:       in.Color,
	})
	if err != nil {
		return nil, w.fail("event", storeErr("insert event", err, utils.ErrEventNotFound))
	}

	w.mu.Lock()
	w.events = sortEvents(append(slices.Clone(w.events), *e))
	w.mu.Unlock()

	w.succeed("event")
	return e, nil
}

// UpdateEvent applies patch to an event.
func (w *Workspace) UpdateEvent(ctx context.Context, id string, patch *models.EventPatch) (*models.CalendarEvent, error) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, w.fail("event", fmt.Errorf("%w: title must not be empty", utils.ErrValidation))
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return nil, w.fail("event", fmt.Errorf("%w: unknown event type %q", utils.ErrValidation, *patch.Type))
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return nil, w.fail("event", fmt.Errorf("%w: date must not be empty", utils.ErrValidation))
	}
	if !slices.ContainsFunc(w.events, func(e models.CalendarEvent) bool { return e.ID == id }) {
		return nil, w.fail("event", utils.ErrEventNotFound)
	}

	e, err := w.stores.Events.Update(ctx, id, w.ownerID, patch)
	if err != nil {
		return nil, w.fail("event", storeErr("update event", err, utils.ErrEventNotFound))
	}

	w.mu.Lock()
	events := slices.Clone(w.events)
	for i := range events {
		if events[i].ID == id {
			events[i] = *e
		}
	}
	w.events = sortEvents(events)
	w.mu.Unlock()

	w.succeed("event")
	return e, nil
}

// DeleteEvent removes an event.
func (w *Workspace) DeleteEvent(ctx context.Context, id string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if !slices.ContainsFunc(w.events, func(e models.CalendarEvent) bool { return e.ID == id }) {
		return w.fail("event", utils.ErrEventNotFound)
	}
	if err := w.stores.Events.Delete(ctx, id, w.ownerID); err != nil {
		return w.fail("event", storeErr("delete event", err, utils.ErrEventNotFound))
	}

	w.mu.Lock()
	w.events = slices.DeleteFunc(slices.Clone(w.events), func(e models.CalendarEvent) bool { return e.ID == id })
	w.mu.Unlock()

	w.succeed("event")
	return nil
}

// ---- categories ----

// AddCategory registers a new category name.
func (w *Workspace) AddCategory(ctx context.Context, name string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return w.fail("category", fmt.Errorf("%w: category name is required", utils.ErrValidation))
	}
	if slices.Contains(w.categories, name) {
		return w.fail("category", fmt.Errorf("%w: %s", utils.ErrCategoryExists, name))
	}
	if err := w.stores.Categories.Insert(ctx, w.ownerID, name); err != nil {
		return w.fail("category", storeErr("insert category", err, utils.ErrCategoryNotFound))
	}

	w.mu.Lock()
	w.categories = append(slices.Clone(w.categories), name)
	w.mu.Unlock()

	w.succeed("category")
	return nil
}

// RenameCategory renames a category in the list. Products keep the old name.
func (w *Workspace) RenameCategory(ctx context.Context, oldName, newName string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return w.fail("category", fmt.Errorf("%w: category name is required", utils.ErrValidation))
	}
	idx := slices.Index(w.categories, oldName)
	if idx < 0 {
		return w.fail("category", utils.ErrCategoryNotFound)
	}
	if newName == oldName {
		w.succeed("category")
		return nil
	}
	if slices.Contains(w.categories, newName) {
		return w.fail("category", fmt.Errorf("%w: %s", utils.ErrCategoryExists, newName))
	}
	if err := w.stores.Categories.Rename(ctx, w.ownerID, oldName, newName); err != nil {
		return w.fail("category", storeErr("rename category", err, utils.ErrCategoryNotFound))
	}

	w.mu.Lock()
	categories := slices.Clone(w.categories)
	categories[idx] = newName
	w.categories = categories
	w.mu.Unlock()

	w.succeed("category")
	return nil
}

// RemoveCategory drops a category from the list even when products still
// reference it.
func (w *Workspace) RemoveCategory(ctx context.Context, name string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if !slices.Contains(w.categories, name) {
		return w.fail("category", utils.ErrCategoryNotFound)
	}
	if err := w.stores.Categories.Delete(ctx, w.ownerID, name); err != nil {
		return w.fail("category", storeErr("delete category", err, utils.ErrCategoryNotFound))
	}

	w.mu.Lock()
	w.categories = slices.DeleteFunc(slices.Clone(w.categories), func(c string) bool { return c == name })
	w.mu.Unlock()

	w.succeed("category")
	return nil
}

// ---- reads ----

// Snapshot returns a copy of the current state.
func (w *Workspace) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Snapshot{
		Products:   slices.Clone(w.products),
		Sales:      slices.Clone(w.sales),
		Categories: slices.Clone(w.categories),
		Events:     slices.Clone(w.events),
		Metrics:    w.metrics.Clone(),
		LastError:  w.lastErr,
	}
}

// Metrics returns a copy of the current derived metrics.
func (w *Workspace) Metrics() models.DerivedMetrics {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.metrics.Clone()
}

// Product returns the product with id.
func (w *Workspace) Product(id string) (models.Product, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, p := range w.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// SearchProducts matches term against name, category and description.
func (w *Workspace) SearchProducts(term string) []models.Product {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return analytics.SearchProducts(w.products, term)
}

// FilterProducts returns products in category at the given stock level.
func (w *Workspace) FilterProducts(category string, level analytics.StockLevel) []models.Product {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return analytics.FilterProducts(w.products, category, level)
}

// SalesOn returns the sales of the calendar day of day, in the workspace zone.
func (w *Workspace) SalesOn(day time.Time) []models.Sale {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return analytics.SalesOn(w.sales, day.In(w.loc))
}

// ProductPerformance returns the daily sales history of a product.
func (w *Workspace) ProductPerformance(id string) ([]models.DailyPerformance, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !slices.ContainsFunc(w.products, func(p models.Product) bool { return p.ID == id }) {
		return nil, utils.ErrProductNotFound
	}
	return analytics.ProductPerformance(id, w.products, w.sales, w.loc), nil
}

// UpcomingEvents returns up to n events dated at or after now, soonest
// first. n <= 0 means no limit.
func (w *Workspace) UpcomingEvents(now time.Time, n int) []models.CalendarEvent {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]models.CalendarEvent, 0)
	for _, e := range w.events {
		if e.Date.Before(now) {
			continue
		}
		out = append(out, e)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// LastError returns the message of the last failed operation, or "" when
// the last operation succeeded.
func (w *Workspace) LastError() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.lastErr
}

// Clear wipes the snapshot, the recorded error and the memoized metrics.
func (w *Workspace) Clear() {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	w.products = []models.Product{}
	w.sales = []models.Sale{}
	w.categories = []string{}
	w.events = []models.CalendarEvent{}
	w.metrics = models.EmptyMetrics()
	w.lastErr = ""
	w.mu.Unlock()

	w.engine.Invalidate()
}

// ---- internals ----

// recompute refreshes the metrics and publishes them. Callers hold writeMu,
// so products and sales can't change underneath.
func (w *Workspace) recompute() {
	m := w.engine.Compute(w.products, w.sales)

	w.mu.Lock()
	w.metrics = m.Clone()
	w.mu.Unlock()

	w.notifier.MetricsChanged(w.ownerID, m.Clone())
}

func (w *Workspace) fail(kind string, err error) error {
	telemetry.Mutations.WithLabelValues(kind, telemetry.Outcome(err)).Inc()
	w.mu.Lock()
	w.lastErr = err.Error()
	w.mu.Unlock()
	return err
}

func (w *Workspace) succeed(kind string) {
	telemetry.Mutations.WithLabelValues(kind, telemetry.Outcome(nil)).Inc()
	w.mu.Lock()
	w.lastErr = ""
	w.mu.Unlock()
}

func (w *Workspace) productIndex(id string) int {
	return slices.IndexFunc(w.products, func(p models.Product) bool { return p.ID == id })
}

func (w *Workspace) replaceProduct(p models.Product) {
	w.mu.Lock()
	defer w.mu.Unlock()
	products := slices.Clone(w.products)
	for i := range products {
		if products[i].ID == p.ID {
			products[i] = p
		}
	}
	w.products = products
}

// registerCategory stores a category the workspace has not seen yet. A
// failure only costs the stored entry; Load derives it from products again.
func (w *Workspace) registerCategory(ctx context.Context, name string) {
	if name == "" || slices.Contains(w.categories, name) {
		return
	}
	if err := w.stores.Categories.Insert(ctx, w.ownerID, name); err != nil && !errors.Is(err, utils.ErrCategoryExists) {
		log.Warn().Err(err).Str("owner_id", w.ownerID).Str("category", name).Msg("failed to store category")
	}
	w.mu.Lock()
	w.categories = append(slices.Clone(w.categories), name)
	w.mu.Unlock()
}

// mergeCategories appends product categories missing from stored, keeping
// stored order first.
func mergeCategories(stored []string, products []models.Product) []string {
	out := make([]string, 0, len(stored))
	seen := make(map[string]bool, len(stored))
	for _, c := range stored {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, p := range products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

func sortEvents(events []models.CalendarEvent) []models.CalendarEvent {
	slices.SortStableFunc(events, func(a, b models.CalendarEvent) int {
		return a.Date.Compare(b.Date)
	})
	return events
}

// storeErr classifies a record store failure. A missing row becomes
// notFound; domain errors pass through; anything else wraps utils.ErrStore.
func storeErr(op string, err error, notFound error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return notFound
	case errors.Is(err, utils.ErrCategoryExists), errors.Is(err, utils.ErrValidation):
		return err
	}
	return fmt.Errorf("%w: %s: %v", utils.ErrStore, op, err)
}

func validateProductInput(in *models.ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", utils.ErrValidation)
	case in.Category == "":
		return fmt.Errorf("%w: category is required", utils.ErrValidation)
	case in.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", utils.ErrValidation)
	case in.MinStock < 0:
		return fmt.Errorf("%w: minimum stock must not be negative", utils.ErrValidation)
	case in.PurchasePrice.IsNegative():
		return fmt.Errorf("%w: purchase price must not be negative", utils.ErrValidation)
	case in.SalePrice.IsNegative():
		return fmt.Errorf("%w: sale price must not be negative", utils.ErrValidation)
	}
	return nil
}

func validateProductPatch(p *models.ProductPatch) error {
	if p.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", utils.ErrValidation)
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return fmt.Errorf("%w: name must not be empty", utils.ErrValidation)
		}
		p.Name = &name
	}
	if p.Category != nil {
		category := strings.TrimSpace(*p.Category)
		if category == "" {
			return fmt.Errorf("%w: category must not be empty", utils.ErrValidation)
		}
		p.Category = &category
	}
	switch {
	case p.Stock != nil && *p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", utils.ErrValidation)
	case p.MinStock != nil && *p.MinStock < 0:
		return fmt.Errorf("%w: minimum stock must not be negative", utils.ErrValidation)
	case p.PurchasePrice != nil && p.PurchasePrice.IsNegative():
		return fmt.Errorf("%w: purchase price must not be negative", utils.ErrValidation)
	case p.SalePrice != nil && p.SalePrice.IsNegative():
		return fmt.Errorf("%w: sale price must not be negative", utils.ErrValidation)
	}
	return nil
}
