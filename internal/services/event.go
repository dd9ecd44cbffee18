package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"eventrsvp/internal/domain"
)

var inviteeEmailRegexp = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type eventService struct {
	eventRepo      domain.EventRepository
	inviteRepo     domain.InviteRepository
	notifier       domain.InviteNotifier
	emailService   domain.EmailService
	publicBaseURL  string
	contextTimeout time.Duration
	logger         *slog.Logger
}

// NewEventService creates an EventService. The notifier dispatches the
// simulated WhatsApp message per materialized invite; emailService may be
// nil, in which case no invite-link emails are attempted.
func NewEventService(eventRepo domain.EventRepository,
	inviteRepo domain.InviteRepository,
	notifier domain.InviteNotifier,
	emailService domain.EmailService,
	publicBaseURL string,
	timeout time.Duration,
	logger *slog.Logger,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		inviteRepo:     inviteRepo,
		notifier:       notifier,
		emailService:   emailService,
		publicBaseURL:  publicBaseURL,
		contextTimeout: timeout,
		logger:         logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, ownerID, title, eventDate, notes string, invitees []*domain.Invitee) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return nil, fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(invitees) == 0 {
		return nil, fmt.Errorf("%w: at least one invitee is required", domain.ErrInvalidInput)
	}
	for _, inv := range invitees {
		inv.Name = strings.TrimSpace(inv.Name)
		inv.Phone = strings.TrimSpace(inv.Phone)
		if inv.Name == "" || inv.Phone == "" {
			return nil, fmt.Errorf("%w: invitee name and phone are required", domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	event := domain.NewEvent(ownerID, title, strings.TrimSpace(eventDate), strings.TrimSpace(notes), now, now)
	if err := s.eventRepo.CreateWithInvitees(ctx, event, invitees); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListMine(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// Pay transitions the caller's draft event to paid. Events the caller does
// not own are reported as not found rather than forbidden, so ownership is
// not probeable.
func (s *eventService) Pay(ctx context.Context, ownerID, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}

	updated, err := s.eventRepo.UpdateStatus(ctx, eventID, domain.EventStatusDraft, domain.EventStatusPaid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		return nil, fmt.Errorf("mark paid: %w", err)
	}
	return updated, nil
}

func (s *eventService) ListPending(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.ListByStatus(ctx, domain.EventStatusPaid, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list pending events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) Decide(ctx context.Context, eventID string, decision domain.Decision) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	switch decision {
	case domain.DecisionReject:
		event, err := s.eventRepo.UpdateStatus(ctx, eventID, domain.EventStatusPaid, domain.EventStatusRejected)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
				return nil, err
			}
			return nil, fmt.Errorf("reject event: %w", err)
		}
		return event, nil

	case domain.DecisionApprove:
		event, invites, err := s.inviteRepo.ApproveAndMaterialize(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
				return nil, err
			}
			return nil, fmt.Errorf("approve event: %w", err)
		}
		s.dispatchInvites(ctx, invites)
		return event, nil

	default:
		return nil, fmt.Errorf("%w: decision must be %q or %q", domain.ErrInvalidInput, domain.DecisionApprove, domain.DecisionReject)
	}
}

// dispatchInvites sends one simulated WhatsApp message per invite and, for
// invitees whose contact looks like an email address, an invite-link email.
// Delivery failures are logged; the invites are already committed.
func (s *eventService) dispatchInvites(ctx context.Context, invites []*domain.Invite) {
	for _, inv := range invites {
		if err := s.notifier.NotifyInvitee(ctx, inv); err != nil {
			s.logger.WarnContext(ctx, "invite notification failed", "invite_id", inv.ID, "err", err)
		}
		if s.emailService == nil || !inviteeEmailRegexp.MatchString(inv.InviteePhone) {
			continue
		}
		data := &domain.InviteLinkEmailData{
			InviteeName: inv.InviteeName,
			EventTitle:  inv.EventTitle,
			EventDate:   inv.EventDate,
			InviteURL:   fmt.Sprintf("%s/api/invites/%s", s.publicBaseURL, inv.ID),
		}
		if err := s.emailService.SendInviteLink(ctx, inv.InviteePhone, data); err != nil {
			s.logger.WarnContext(ctx, "invite email failed", "invite_id", inv.ID, "err", err)
		}
	}
}
