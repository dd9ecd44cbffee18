package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrInvalidInput   = errors.New("invalid input")

	// ErrInvalidState is returned when a status transition's precondition
	// no longer holds (e.g. paying a non-draft event, responding to an
	// already-answered invite). The row is left unchanged.
	ErrInvalidState = errors.New("invalid state for this operation")
)
