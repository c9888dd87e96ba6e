package workspace

import (
	"context"

	"github.com/GTDGit/inventory_api/internal/models"
)

// ProductStore is the record store for products.
type ProductStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Product, error)
	Insert(ctx context.Context, ownerID string, in *models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id, ownerID string, patch *models.ProductPatch) (*models.Product, error)
	// DecrementStock subtracts qty from the stored stock and refuses to go
	// below zero.
	DecrementStock(ctx context.Context, id, ownerID string, qty int) (*models.Product, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// SaleStore is the record store for sales.
type SaleStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.Sale, error)
	Insert(ctx context.Context, s *models.Sale) (*models.Sale, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// EventStore is the record store for calendar events.
type EventStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.CalendarEvent, error)
	Insert(ctx context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error)
	Update(ctx context.Context, id, ownerID string, patch *models.EventPatch) (*models.CalendarEvent, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// CategoryStore keeps the owner's category names.
type CategoryStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]string, error)
	Insert(ctx context.Context, ownerID, name string) error
	Rename(ctx context.Context, ownerID, oldName, newName string) error
	Delete(ctx context.Context, ownerID, name string) error
}

// Stores bundles the record stores a Workspace reads and writes.
type Stores struct {
	Products   ProductStore
	Sales      SaleStore
	Events     EventStore
	Categories CategoryStore
}

// Notifier receives the metrics of an owner after every products or sales change.
type Notifier interface {
	MetricsChanged(ownerID string, m models.DerivedMetrics)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

// MetricsChanged implements Notifier.
func (NopNotifier) MetricsChanged(string, models.DerivedMetrics) {}
