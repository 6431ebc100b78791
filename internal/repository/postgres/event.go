package postgres

import (
	"context"

	"github.com/finnbusse/grabbe-cms/internal/domain/event"
	apperrors "github.com/finnbusse/grabbe-cms/pkg/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EventRepository struct {
	db *DB
}

func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, location, starts_at, ends_at, author_id, published, created_at, updated_at`

func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return r.scanEvent(r.db.Pool.QueryRow(ctx, query, id))
}

func (r *EventRepository) List(ctx context.Context, includeUnpublished bool) ([]*event.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE published OR $1 ORDER BY starts_at`

	rows, err := r.db.Pool.Query(ctx, query, includeUnpublished)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*event.Event
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) Create(ctx context.Context, input event.CreateEventInput) (*event.Event, error) {
	query := `
		INSERT INTO events (title, description, location, starts_at, ends_at, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + eventColumns

	return r.scanEvent(r.db.Pool.QueryRow(ctx, query,
		input.Title, input.Description, input.Location, input.StartsAt, input.EndsAt, input.AuthorID))
}

func (r *EventRepository) Update(ctx context.Context, id uuid.UUID, input event.UpdateEventInput) error {
	query := `
		UPDATE events
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    location = COALESCE($4, location),
		    starts_at = COALESCE($5, starts_at),
		    ends_at = COALESCE($6, ends_at),
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, id,
		input.Title, input.Description, input.Location, input.StartsAt, input.EndsAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errEventNotFound)
	}
	return nil
}

func (r *EventRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	query := `UPDATE events SET published = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id, published)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errEventNotFound)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound(errEventNotFound)
	}
	return nil
}

func (r *EventRepository) scanEvent(row rowScanner) (*event.Event, error) {
	e := &event.Event{}
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Location,
		&e.StartsAt,
		&e.EndsAt,
		&e.AuthorID,
		&e.Published,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NotFound(errEventNotFound)
		}
		return nil, err
	}
	return e, nil
}
