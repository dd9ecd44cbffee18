package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"eventrsvp/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	salt TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS roles (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	code TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS user_roles (
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, role_id)
);

CREATE TABLE IF NOT EXISTS events (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	owner_id UUID NOT NULL REFERENCES users(id),
	title TEXT NOT NULL,
	event_date TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft'
		CHECK (status IN ('draft', 'paid', 'approved', 'rejected')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS invitees (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	phone TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS invites (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	invitee_id UUID NOT NULL UNIQUE REFERENCES invitees(id) ON DELETE CASCADE,
	event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
	status TEXT NOT NULL DEFAULT 'pending'
		CHECK (status IN ('pending', 'accepted', 'rejected', 'maybe')),
	responded_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates all tables if they do not exist and seeds the role
// rows. It is safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	for _, code := range []string{domain.RoleUser, domain.RoleAdmin} {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO roles (code) VALUES ($1) ON CONFLICT (code) DO NOTHING`, code); err != nil {
			return fmt.Errorf("seed role %q: %w", code, err)
		}
	}
	return nil
}

// SeedAdmin creates the default admin account if no user with that email
// exists yet, and grants it the admin role. The password is hashed before
// storage like any other credential.
func SeedAdmin(ctx context.Context, db *sql.DB, hasher domain.PasswordHasher, email, password, name string) error {
	var id string
	err := db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("look up admin: %w", err)
	}
	if err == sql.ErrNoRows {
		salt, err := hasher.GenerateSalt()
		if err != nil {
			return fmt.Errorf("generate admin salt: %w", err)
		}
		hash, err := hasher.Hash(salt, password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		now := time.Now()
		err = db.QueryRowContext(ctx, `
			INSERT INTO users (email, password_hash, salt, name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, email, hash, salt, name, now, now).Scan(&id)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE code = $2
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, id, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("grant admin role: %w", err)
	}
	return nil
}
