package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/inventory_api/internal/utils"
)

// CategoryRepository stores the owner's category names. Products reference
// categories by name only; nothing cascades.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByOwner returns category names in creation order.
func (r *CategoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]string, error) {
	names := []string{}
	err := r.db.SelectContext(ctx, &names,
		`SELECT name FROM categories WHERE user_id = $1 ORDER BY created_at ASC, name ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Insert adds a category. A duplicate name yields utils.ErrCategoryExists.
func (r *CategoryRepository) Insert(ctx context.Context, ownerID, name string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (user_id, name) VALUES ($1, $2)`, ownerID, name)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", utils.ErrCategoryExists, name)
	}
	return err
}

// Rename changes a category's name. A name that was only ever derived from
// products has no row yet, so newName is registered instead. Products keep
// their old category string.
func (r *CategoryRepository) Rename(ctx context.Context, ownerID, oldName, newName string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = $1 WHERE user_id = $2 AND name = $3`, newName, ownerID, oldName)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", utils.ErrCategoryExists, newName)
	}
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return err
	}
	return r.Insert(ctx, ownerID, newName)
}

// Delete removes a category name. Deleting an unstored name is not an error.
func (r *CategoryRepository) Delete(ctx context.Context, ownerID, name string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE user_id = $1 AND name = $2`, ownerID, name)
	return err
}
