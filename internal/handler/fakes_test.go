package handler

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/utils"
	"github.com/GTDGit/inventory_api/internal/workspace"
)

// memoryStore backs every record kind with slices so handlers run against a
// real Workspace.
type memoryStore struct {
	mu         sync.Mutex
	seq        int
	products   []models.Product
	sales      []models.Sale
	events     []models.CalendarEvent
	categories []string

	decrementErr error
}

func (m *memoryStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s%d", prefix, m.seq)
}

type productStore struct{ *memoryStore }

func (s productStore) ListByOwner(context.Context, string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.products), nil
}

func (s productStore) Insert(_ context.Context, ownerID string, in *models.ProductInput) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.Product{
		ID:            s.nextID("p"),
		OwnerID:       ownerID,
		Name:          in.Name,
		Category:      in.Category,
		Stock:         in.Stock,
		MinStock:      in.MinStock,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		LastUpdated:   time.Now(),
	}
	s.products = append(s.products, p)
	return &p, nil
}

func (s productStore) Update(_ context.Context, id, _ string, patch *models.ProductPatch) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		p := &s.products[i]
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		if patch.MinStock != nil {
			p.MinStock = *patch.MinStock
		}
		out := *p
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (s productStore) DecrementStock(_ context.Context, id, _ string, qty int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.decrementErr != nil {
		return nil, s.decrementErr
	}
	for i := range s.products {
		p := &s.products[i]
		if p.ID != id {
			continue
		}
		if p.Stock < qty {
			return nil, utils.ErrInsufficientStock
		}
		p.Stock -= qty
		out := *p
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (s productStore) Delete(_ context.Context, id, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = slices.DeleteFunc(s.products, func(p models.Product) bool { return p.ID == id })
	return nil
}

type saleStore struct{ *memoryStore }

func (s saleStore) ListByOwner(context.Context, string) ([]models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.sales), nil
}

func (s saleStore) Insert(_ context.Context, sale *models.Sale) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := *sale
	out.ID = s.nextID("s")
	s.sales = append(s.sales, out)
	return &out, nil
}

func (s saleStore) Delete(_ context.Context, id, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = slices.DeleteFunc(s.sales, func(v models.Sale) bool { return v.ID == id })
	return nil
}

type eventStore struct{ *memoryStore }

func (s eventStore) ListByOwner(context.Context, string) ([]models.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events), nil
}

func (s eventStore) Insert(_ context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := *e
	out.ID = s.nextID("e")
	s.events = append(s.events, out)
	return &out, nil
}

func (s eventStore) Update(_ context.Context, id, _ string, patch *models.EventPatch) (*models.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		e := &s.events[i]
		if e.ID != id {
			continue
		}
		if patch.Title != nil {
			e.Title = *patch.Title
		}
		out := *e
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (s eventStore) Delete(_ context.Context, id, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = slices.DeleteFunc(s.events, func(e models.CalendarEvent) bool { return e.ID == id })
	return nil
}

type categoryStore struct{ *memoryStore }

func (s categoryStore) ListByOwner(context.Context, string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories), nil
}

func (s categoryStore) Insert(_ context.Context, _ string, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.categories, name) {
		return utils.ErrCategoryExists
	}
	s.categories = append(s.categories, name)
	return nil
}

func (s categoryStore) Rename(_ context.Context, _ string, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.categories, oldName); i >= 0 {
		s.categories[i] = newName
	}
	return nil
}

func (s categoryStore) Delete(_ context.Context, _ string, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = slices.DeleteFunc(s.categories, func(n string) bool { return n == name })
	return nil
}

func newTestRegistry(store *memoryStore) *workspace.Registry {
	return workspace.NewRegistry(func(ownerID string) *workspace.Workspace {
		return workspace.New(ownerID, workspace.Stores{
			Products:   productStore{store},
			Sales:      saleStore{store},
			Events:     eventStore{store},
			Categories: categoryStore{store},
		}, workspace.Options{Location: time.UTC})
	}, nil)
}
