package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventrsvp/internal/domain"
)

type inviteService struct {
	inviteRepo     domain.InviteRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewInviteService creates an InviteService.
func NewInviteService(inviteRepo domain.InviteRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.InviteService {
	return &inviteService{
		inviteRepo:     inviteRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *inviteService) GetInvite(ctx context.Context, id string) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	invite, err := s.inviteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return invite, nil
}

func (s *inviteService) Respond(ctx context.Context, id string, status domain.InviteStatus) (*domain.Invite, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !status.Valid() || !status.Terminal() {
		return nil, fmt.Errorf("%w: response must be accepted, rejected, or maybe", domain.ErrInvalidInput)
	}

	invite, err := s.inviteRepo.Respond(ctx, id, status, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		return nil, fmt.Errorf("respond to invite: %w", err)
	}
	return invite, nil
}

func (s *inviteService) ListForEvent(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Invite, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}

	invites, total, err := s.inviteRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list invites: %w", err)
	}
	if invites == nil {
		invites = []*domain.Invite{}
	}
	return invites, total, nil
}
