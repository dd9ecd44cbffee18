package domain

import (
	"context"
	"time"
)

// EventStatus is the closed set of event lifecycle states.
type EventStatus string

// Event lifecycle: draft -> paid -> {approved, rejected}. Paid is the
// reviewable state; approved and rejected are terminal.
const (
	EventStatusDraft    EventStatus = "draft"
	EventStatusPaid     EventStatus = "paid"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusDraft, EventStatusPaid, EventStatusApproved, EventStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
// No transition skips a state and none is reversible.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	switch s {
	case EventStatusDraft:
		return next == EventStatusPaid
	case EventStatusPaid:
		return next == EventStatusApproved || next == EventStatusRejected
	}
	return false
}

// Event represents a user-created event awaiting payment and admin review
// swagger:model Event
type Event struct {
	ID        string      `json:"id"`
	OwnerID   string      `json:"owner_id"`
	Title     string      `json:"title"`
	EventDate string      `json:"event_date"`
	Notes     string      `json:"notes"`
	Status    EventStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewEvent returns a new draft Event. ID is set by the repository on create.
func NewEvent(ownerID, title, eventDate, notes string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		OwnerID:   ownerID,
		Title:     title,
		EventDate: eventDate,
		Notes:     notes,
		Status:    EventStatusDraft,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// Invitee is a named contact supplied when the event is created. Invitees
// are not system users; the phone number is the simulated WhatsApp channel.
// swagger:model Invitee
type Invitee struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

// EventRepository defines the interface for event and invitee storage.
type EventRepository interface {
	// CreateWithInvitees inserts the event and its invitees in one
	// transaction; either all rows commit or none do.
	CreateWithInvitees(ctx context.Context, event *Event, invitees []*Invitee) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	// ListByStatus returns a page of events in the given status, oldest
	// first, plus the total count for pagination.
	ListByStatus(ctx context.Context, status EventStatus, params PaginationParams) ([]*Event, int, error)
	ListInvitees(ctx context.Context, eventID string) ([]*Invitee, error)
	// UpdateStatus performs a check-and-set transition: the row is updated
	// only if its status still equals from. If the event exists but the
	// precondition fails it returns ErrInvalidState.
	UpdateStatus(ctx context.Context, eventID string, from, to EventStatus) (*Event, error)
}

// Decision is the admin's verdict on a paid event.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// EventService defines the business logic for the event lifecycle.
type EventService interface {
	CreateEvent(ctx context.Context, ownerID, title, eventDate, notes string, invitees []*Invitee) (*Event, error)
	ListMine(ctx context.Context, ownerID string) ([]*Event, error)
	// Pay marks the caller's draft event as paid. Payment is simulated;
	// no settlement happens.
	Pay(ctx context.Context, ownerID, eventID string) (*Event, error)
	ListPending(ctx context.Context, params PaginationParams) ([]*Event, int, error)
	// Decide approves or rejects a paid event. Approval materializes one
	// pending invite per invitee and dispatches a simulated notification
	// for each.
	Decide(ctx context.Context, eventID string, decision Decision) (*Event, error)
}

// PaginationParams carries validated page/page_size values.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
