package domain

import (
	"context"
	"time"
)

// InviteStatus is the closed set of RSVP states for an invite.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusRejected InviteStatus = "rejected"
	InviteStatusMaybe    InviteStatus = "maybe"
)

// Valid reports whether s is a known invite status.
func (s InviteStatus) Valid() bool {
	switch s {
	case InviteStatusPending, InviteStatusAccepted, InviteStatusRejected, InviteStatusMaybe:
		return true
	}
	return false
}

// Terminal reports whether s is a final RSVP answer. A terminal invite
// rejects further respond calls.
func (s InviteStatus) Terminal() bool {
	return s == InviteStatusAccepted || s == InviteStatusRejected || s == InviteStatusMaybe
}

// Invite tracks one invitee's RSVP to an approved event. Exactly one invite
// exists per invitee, created when the event is approved.
// swagger:model Invite
type Invite struct {
	ID          string       `json:"id"`
	InviteeID   string       `json:"invitee_id"`
	EventID     string       `json:"event_id"`
	Status      InviteStatus `json:"status"`
	RespondedAt *time.Time   `json:"responded_at"`
	CreatedAt   time.Time    `json:"created_at"`

	// Joined details for invite links and admin listings.
	InviteeName  string `json:"invitee_name,omitempty"`
	InviteePhone string `json:"invitee_phone,omitempty"`
	EventTitle   string `json:"event_title,omitempty"`
	EventDate    string `json:"event_date,omitempty"`
}

// InviteRepository defines the interface for invite storage.
type InviteRepository interface {
	// ApproveAndMaterialize transitions the event paid -> approved and
	// inserts one pending invite per invitee in the same transaction.
	// It returns ErrInvalidState if the event is not paid, and the created
	// invites (with invitee details joined) on success.
	ApproveAndMaterialize(ctx context.Context, eventID string) (*Event, []*Invite, error)
	GetByID(ctx context.Context, id string) (*Invite, error)
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*Invite, int, error)
	// Respond performs a check-and-set pending -> status update. If the
	// invite exists but is no longer pending it returns ErrInvalidState.
	Respond(ctx context.Context, id string, status InviteStatus, respondedAt time.Time) (*Invite, error)
}

// InviteService defines the business logic for RSVP responses.
type InviteService interface {
	GetInvite(ctx context.Context, id string) (*Invite, error)
	// Respond records the RSVP exactly once; re-answering an already
	// terminal invite fails with ErrInvalidState and leaves the first
	// answer intact.
	Respond(ctx context.Context, id string, status InviteStatus) (*Invite, error)
	ListForEvent(ctx context.Context, eventID string, params PaginationParams) ([]*Invite, int, error)
}
