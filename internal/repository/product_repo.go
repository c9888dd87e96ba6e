package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/inventory_api/internal/models"
	"github.com/GTDGit/inventory_api/internal/utils"
)

const productColumns = `id, user_id, name, category, quantity, low_stock_threshold,
        purchase_price, sale_price, description, supplier, created_at, updated_at`

// ProductRepository handles data access for inventory items.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListByOwner returns the owner's products, newest first.
func (r *ProductRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Product, error) {
	q := `SELECT ` + productColumns + ` FROM inventory_items
        WHERE user_id = $1
        ORDER BY created_at DESC`

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, q, ownerID); err != nil {
		return nil, err
	}
	return products, nil
}

// Insert creates a product and returns the stored row.
func (r *ProductRepository) Insert(ctx context.Context, ownerID string, in *models.ProductInput) (*models.Product, error) {
	q := `INSERT INTO inventory_items
            (user_id, name, category, quantity, low_stock_threshold, purchase_price, sale_price, description, supplier)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + productColumns

	var p models.Product
	err := r.db.QueryRowxContext(ctx, q,
		ownerID,
		in.Name,
		in.Category,
		in.Stock,
		in.MinStock,
		in.PurchasePrice,
		in.SalePrice,
		in.Description,
		in.Supplier,
	).StructScan(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies the non-nil fields of patch and returns the stored row.
// It returns sql.ErrNoRows when the product does not exist for the owner.
func (r *ProductRepository) Update(ctx context.Context, id, ownerID string, patch *models.ProductPatch) (*models.Product, error) {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Category != nil {
		b.add("category", *patch.Category)
	}
	if patch.Stock != nil {
		b.add("quantity", *patch.Stock)
	}
	if patch.MinStock != nil {
		b.add("low_stock_threshold", *patch.MinStock)
	}
	if patch.PurchasePrice != nil {
		b.add("purchase_price", *patch.PurchasePrice)
	}
	if patch.SalePrice != nil {
		b.add("sale_price", *patch.SalePrice)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if patch.Supplier != nil {
		b.add("supplier", *patch.Supplier)
	}

	b.raw("updated_at = NOW()")
	sets, next := b.clause()
	q := fmt.Sprintf(`UPDATE inventory_items SET %s
        WHERE id = $%d AND user_id = $%d
        RETURNING `+productColumns, sets, next, next+1)

	var p models.Product
	args := append(b.args, id, ownerID)
	if err := r.db.QueryRowxContext(ctx, q, args...).StructScan(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecrementStock subtracts qty from the stored quantity in a single
// statement, so writes made elsewhere since the last load are kept. It
// fails with utils.ErrInsufficientStock when the stored quantity is below
// qty and with sql.ErrNoRows when the product is gone.
func (r *ProductRepository) DecrementStock(ctx context.Context, id, ownerID string, qty int) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowxContext(ctx, `UPDATE inventory_items
        SET quantity = quantity - $1, updated_at = NOW()
        WHERE id = $2 AND user_id = $3 AND quantity >= $1
        RETURNING `+productColumns, qty, id, ownerID).StructScan(&p)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM inventory_items WHERE id = $1 AND user_id = $2)`, id, ownerID); err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: stored quantity is below %d", utils.ErrInsufficientStock, qty)
	}
	return nil, sql.ErrNoRows
}

// Delete removes a product. Sales referencing it are kept.
func (r *ProductRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
