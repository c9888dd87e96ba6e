package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an inventory item owned by a single user.
// Description and Supplier are nil when absent.
type Product struct {
	ID            string          `db:"id" json:"id"`
	OwnerID       string          `db:"user_id" json:"-"`
	Name          string          `db:"name" json:"name"`
	Category      string          `db:"category" json:"category"`
	Stock         int             `db:"quantity" json:"stock"`
	MinStock      int             `db:"low_stock_threshold" json:"minStock"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchasePrice"`
	SalePrice     decimal.Decimal `db:"sale_price" json:"salePrice"`
	Description   *string         `db:"description" json:"description,omitempty"`
	Supplier      *string         `db:"supplier" json:"supplier,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"-"`
	LastUpdated   time.Time       `db:"updated_at" json:"lastUpdated"`
}

// IsLowStock reports whether the product is at or below its reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// ProductInput carries the fields of a product to be created.
type ProductInput struct {
	Name          string          `json:"name" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"minStock"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	Description   *string         `json:"description"`
	Supplier      *string         `json:"supplier"`
}

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	Stock         *int             `json:"stock"`
	MinStock      *int             `json:"minStock"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
	Description   *string          `json:"description"`
	Supplier      *string          `json:"supplier"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Category == nil && p.Stock == nil && p.MinStock == nil &&
		p.PurchasePrice == nil && p.SalePrice == nil && p.Description == nil && p.Supplier == nil
}
