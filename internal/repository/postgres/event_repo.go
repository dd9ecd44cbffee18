package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventrsvp/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `id, owner_id, title, event_date, notes, status, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &e.EventDate, &e.Notes, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) CreateWithInvitees(ctx context.Context, e *domain.Event, invitees []*domain.Invitee) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (owner_id, title, event_date, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query, e.OwnerID, e.Title, e.EventDate, e.Notes, e.Status, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	for _, inv := range invitees {
		inv.EventID = e.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO invitees (event_id, name, phone)
			VALUES ($1, $2, $3)
			RETURNING id
		`, inv.EventID, inv.Name, inv.Phone).Scan(&inv.ID)
		if err != nil {
			return fmt.Errorf("insert invitee: %w", err)
		}
	}

	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListByStatus(ctx context.Context, status domain.EventStatus, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM events WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, status, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) ListInvitees(ctx context.Context, eventID string) ([]*domain.Invitee, error) {
	query := `
		SELECT id, event_id, name, phone
		FROM invitees
		WHERE event_id = $1
		ORDER BY name
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitees := make([]*domain.Invitee, 0)
	for rows.Next() {
		inv := &domain.Invitee{}
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.Name, &inv.Phone); err != nil {
			return nil, err
		}
		invitees = append(invitees, inv)
	}
	return invitees, rows.Err()
}

// UpdateStatus commits the transition only if the current status still equals
// from. A miss on an existing row means a concurrent transition won; the
// caller gets ErrInvalidState and the row is untouched.
func (r *eventRepository) UpdateStatus(ctx context.Context, eventID string, from, to domain.EventStatus) (*domain.Event, error) {
	query := `
		UPDATE events
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + eventColumns
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, eventID, from, to))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var current domain.EventStatus
	err = r.DB.QueryRowContext(ctx, `SELECT status FROM events WHERE id = $1`, eventID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return nil, domain.ErrInvalidState
}
