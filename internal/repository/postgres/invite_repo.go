package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventrsvp/internal/domain"
)

type inviteRepository struct {
	DB *sql.DB
}

func NewInviteRepository(db *sql.DB) domain.InviteRepository {
	return &inviteRepository{DB: db}
}

// inviteColumns joins invite rows with their invitee and event for links and
// admin listings.
const inviteColumns = `
	i.id, i.invitee_id, i.event_id, i.status, i.responded_at, i.created_at,
	p.name, p.phone, e.title, e.event_date
`

const inviteJoin = `
	FROM invites i
	INNER JOIN invitees p ON p.id = i.invitee_id
	INNER JOIN events e ON e.id = i.event_id
`

func scanInvite(row interface{ Scan(...any) error }) (*domain.Invite, error) {
	inv := &domain.Invite{}
	var respondedAt sql.NullTime
	err := row.Scan(
		&inv.ID, &inv.InviteeID, &inv.EventID, &inv.Status, &respondedAt, &inv.CreatedAt,
		&inv.InviteeName, &inv.InviteePhone, &inv.EventTitle, &inv.EventDate,
	)
	if err != nil {
		return nil, err
	}
	if respondedAt.Valid {
		inv.RespondedAt = &respondedAt.Time
	}
	return inv, nil
}

// ApproveAndMaterialize transitions the event paid -> approved and creates
// one pending invite per invitee, all in one transaction. The event row is
// locked by the conditional UPDATE, so two concurrent approvals cannot both
// succeed and invites are created at most once.
func (r *inviteRepository) ApproveAndMaterialize(ctx context.Context, eventID string) (*domain.Event, []*domain.Invite, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	e, err := scanEvent(tx.QueryRowContext(ctx, `
		UPDATE events
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING `+eventColumns,
		eventID, domain.EventStatusApproved, domain.EventStatusPaid))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, nil, err
		}
		var current domain.EventStatus
		err = tx.QueryRowContext(ctx, `SELECT status FROM events WHERE id = $1`, eventID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.ErrNotFound
		}
		if err != nil {
			return nil, nil, err
		}
		return nil, nil, domain.ErrInvalidState
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, name, phone FROM invitees WHERE event_id = $1 ORDER BY name
	`, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list invitees: %w", err)
	}
	type invitee struct {
		id, name, phone string
	}
	var invitees []invitee
	for rows.Next() {
		var inv invitee
		if err := rows.Scan(&inv.id, &inv.name, &inv.phone); err != nil {
			rows.Close()
			return nil, nil, err
		}
		invitees = append(invitees, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	invites := make([]*domain.Invite, 0, len(invitees))
	for _, p := range invitees {
		inv := &domain.Invite{
			InviteeID:    p.id,
			EventID:      eventID,
			Status:       domain.InviteStatusPending,
			InviteeName:  p.name,
			InviteePhone: p.phone,
			EventTitle:   e.Title,
			EventDate:    e.EventDate,
		}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO invites (invitee_id, event_id, status, created_at)
			VALUES ($1, $2, $3, NOW())
			RETURNING id, created_at
		`, inv.InviteeID, inv.EventID, inv.Status).Scan(&inv.ID, &inv.CreatedAt)
		if err != nil {
			return nil, nil, fmt.Errorf("insert invite: %w", err)
		}
		invites = append(invites, inv)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}
	return e, invites, nil
}

func (r *inviteRepository) GetByID(ctx context.Context, id string) (*domain.Invite, error) {
	query := `SELECT ` + inviteColumns + inviteJoin + ` WHERE i.id = $1`
	inv, err := scanInvite(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *inviteRepository) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Invite, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invites WHERE event_id = $1`, eventID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + inviteColumns + inviteJoin + `
		WHERE i.event_id = $1
		ORDER BY i.created_at ASC, p.name ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	invites := make([]*domain.Invite, 0)
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, 0, err
		}
		invites = append(invites, inv)
	}
	return invites, total, rows.Err()
}

// Respond records the RSVP only if the invite is still pending. A miss on an
// existing row means the invite was already answered; the first answer stays.
func (r *inviteRepository) Respond(ctx context.Context, id string, status domain.InviteStatus, respondedAt time.Time) (*domain.Invite, error) {
	query := `
		UPDATE invites i
		SET status = $2, responded_at = $3
		FROM invitees p, events e
		WHERE i.id = $1 AND i.status = $4
			AND p.id = i.invitee_id AND e.id = i.event_id
		RETURNING ` + inviteColumns
	inv, err := scanInvite(r.DB.QueryRowContext(ctx, query, id, status, respondedAt, domain.InviteStatusPending))
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var current domain.InviteStatus
	err = r.DB.QueryRowContext(ctx, `SELECT status FROM invites WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return nil, domain.ErrInvalidState
}
