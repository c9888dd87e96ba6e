package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/GTDGit/inventory_api/internal/models"
)

const eventColumns = `id, user_id, title, description, start_date, event_type, color, created_at, updated_at`

// EventRepository handles data access for calendar events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListByOwner returns the owner's events in date order.
func (r *EventRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.CalendarEvent, error) {
	q := `SELECT ` + eventColumns + ` FROM events
        WHERE user_id = $1
        ORDER BY start_date ASC`

	events := []models.CalendarEvent{}
	if err := r.db.SelectContext(ctx, &events, q, ownerID); err != nil {
		return nil, err
	}
	return events, nil
}

// Insert stores an event and returns the stored row.
func (r *EventRepository) Insert(ctx context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error) {
	q := `INSERT INTO events (user_id, title, description, start_date, end_date, event_type, color)
        VALUES ($1, $2, $3, $4, $4, $5, $6)
        RETURNING ` + eventColumns

	var out models.CalendarEvent
	err := r.db.QueryRowxContext(ctx, q,
		e.OwnerID, e.Title, e.Description, e.Date, e.Type, e.Color,
	).StructScan(&out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies the non-nil fields of patch and returns the stored row.
func (r *EventRepository) Update(ctx context.Context, id, ownerID string, patch *models.EventPatch) (*models.CalendarEvent, error) {
	var b setBuilder
	if patch.Title != nil {
		b.add("title", *patch.Title)
	}
	if patch.Description != nil {
		b.add("description", *patch.Description)
	}
	if patch.Date != nil {
		b.add("start_date", *patch.Date)
		b.add("end_date", *patch.Date)
	}
	if patch.Type != nil {
		b.add("event_type", *patch.Type)
	}
	if patch.Color != nil {
		b.add("color", *patch.Color)
	}

	b.raw("updated_at = NOW()")
	sets, next := b.clause()
	q := fmt.Sprintf(`UPDATE events SET %s
        WHERE id = $%d AND user_id = $%d
        RETURNING `+eventColumns, sets, next, next+1)

	var out models.CalendarEvent
	args := append(b.args, id, ownerID)
	if err := r.db.QueryRowxContext(ctx, q, args...).StructScan(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an event.
func (r *EventRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
