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

const profileColumns = `id, email, password_hash, name, company, role, avatar, created_at, updated_at`

// ProfileRepository handles data access for owner profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a profile. A taken email yields utils.ErrEmailTaken.
func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	q := `INSERT INTO profiles (email, password_hash, name, company, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + profileColumns

	var out models.Profile
	err := r.db.QueryRowxContext(ctx, q, p.Email, p.PasswordHash, p.Name, p.Company, p.Role).StructScan(&out)
	if isUniqueViolation(err) {
		return nil, utils.ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByEmail returns nil, nil when no profile has the email.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID returns nil, nil when the profile does not exist.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies the non-nil fields of patch and returns the stored row.
func (r *ProfileRepository) Update(ctx context.Context, id string, patch *models.ProfilePatch) (*models.Profile, error) {
	var b setBuilder
	if patch.Name != nil {
		b.add("name", *patch.Name)
	}
	if patch.Company != nil {
		b.add("company", *patch.Company)
	}
	if patch.Role != nil {
		b.add("role", *patch.Role)
	}
	if patch.Avatar != nil {
		b.add("avatar", *patch.Avatar)
	}

	b.raw("updated_at = NOW()")
	sets, next := b.clause()
	q := fmt.Sprintf(`UPDATE profiles SET %s WHERE id = $%d RETURNING `+profileColumns, sets, next)

	var out models.Profile
	args := append(b.args, id)
	if err := r.db.QueryRowxContext(ctx, q, args...).StructScan(&out); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProfileNotFound
		}
		return nil, err
	}
	return &out, nil
}
