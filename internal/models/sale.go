package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records units of a product sold. ProductID may reference a product
// that has since been deleted; ProductName keeps the name at sale time.
type Sale struct {
	ID            string          `db:"id" json:"id"`
	OwnerID       string          `db:"user_id" json:"-"`
	ProductID     string          `db:"item_id" json:"productId"`
	ProductName   string          `db:"product_name" json:"productName"`
	Quantity      int             `db:"quantity" json:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalPrice    decimal.Decimal `db:"total_amount" json:"totalPrice"`
	Date          time.Time       `db:"sale_date" json:"date"`
	Customer      *string         `db:"customer_name" json:"customer,omitempty"`
	CustomerEmail *string         `db:"customer_email" json:"customerEmail,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"-"`
}

// SaleInput is the request to record a sale. A zero UnitPrice means the
// product's current sale price; a zero Date means now.
type SaleInput struct {
	ProductID     string          `json:"productId" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Date          time.Time       `json:"date"`
	Customer      *string         `json:"customer"`
	CustomerEmail *string         `json:"customerEmail"`
}
