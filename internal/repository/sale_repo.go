package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/inventory_api/internal/models"
)

const saleColumns = `id, user_id, item_id, product_name, quantity, unit_price, total_amount,
        sale_date, customer_name, customer_email, created_at`

// SaleRepository handles data access for sales.
type SaleRepository struct {
	db *sqlx.DB
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

// ListByOwner returns the owner's sales, most recent first.
func (r *SaleRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Sale, error) {
	q := `SELECT ` + saleColumns + ` FROM sales
        WHERE user_id = $1
        ORDER BY sale_date DESC, created_at DESC`

	sales := []models.Sale{}
	if err := r.db.SelectContext(ctx, &sales, q, ownerID); err != nil {
		return nil, err
	}
	return sales, nil
}

// Insert stores a sale and returns the stored row. The sale's ID is ignored.
func (r *SaleRepository) Insert(ctx context.Context, s *models.Sale) (*models.Sale, error) {
	q := `INSERT INTO sales
            (user_id, item_id, product_name, quantity, unit_price, total_amount, sale_date, customer_name, customer_email)
        VALUES (:user_id, :item_id, :product_name, :quantity, :unit_price, :total_amount, :sale_date, :customer_name, :customer_email)
        RETURNING ` + saleColumns

	rows, err := r.db.NamedQueryContext(ctx, q, s)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out models.Sale
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, errNoRowReturned
	}
	if err := rows.StructScan(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a sale. Stock is not restored.
func (r *SaleRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
