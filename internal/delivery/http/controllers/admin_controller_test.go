package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeInviteService implements domain.InviteService for handler tests.
type fakeInviteService struct {
	invite     *domain.Invite
	getErr     error
	respondErr error
	listTotal  int
	listErr    error
	lastStatus domain.InviteStatus
}

func (f *fakeInviteService) GetInvite(ctx context.Context, id string) (*domain.Invite, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.invite, nil
}

func (f *fakeInviteService) Respond(ctx context.Context, id string, status domain.InviteStatus) (*domain.Invite, error) {
	f.lastStatus = status
	if f.respondErr != nil {
		return nil, f.respondErr
	}
	return f.invite, nil
}

func (f *fakeInviteService) ListForEvent(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Invite, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	if f.invite == nil {
		return []*domain.Invite{}, f.listTotal, nil
	}
	return []*domain.Invite{f.invite}, f.listTotal, nil
}

func TestAdminController_Decide(t *testing.T) {
	approvedEvent := &domain.Event{ID: "event-1", Status: domain.EventStatusApproved}

	tests := []struct {
		name         string
		body         string
		svc          *fakeEventService
		wantStatus   int
		wantBodyCode string
		wantDecision domain.Decision
	}{
		{
			name:         "approve",
			body:         `{"decision":"approve"}`,
			svc:          &fakeEventService{decideEvent: approvedEvent},
			wantStatus:   http.StatusOK,
			wantDecision: domain.DecisionApprove,
		},
		{
			name:         "reject",
			body:         `{"decision":"reject"}`,
			svc:          &fakeEventService{decideEvent: &domain.Event{ID: "event-1", Status: domain.EventStatusRejected}},
			wantStatus:   http.StatusOK,
			wantDecision: domain.DecisionReject,
		},
		{
			name:         "unknown decision",
			body:         `{"decision":"postpone"}`,
			svc:          &fakeEventService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "event not found",
			body:         `{"decision":"approve"}`,
			svc:          &fakeEventService{decideErr: domain.ErrNotFound},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "already decided",
			body:         `{"decision":"approve"}`,
			svc:          &fakeEventService{decideErr: domain.ErrInvalidState},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAdminController(testControllerLogger(), tt.svc, &fakeInviteService{})
			req := httptest.NewRequest(http.MethodPost, "http://test/api/admin/events/event-1/decision", bytes.NewReader([]byte(tt.body)))
			req.SetPathValue("eventID", "event-1")
			rr := httptest.NewRecorder()

			ctrl.Decide(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				assert.Equal(t, tt.wantDecision, tt.svc.lastDecision)
			}
		})
	}
}

func TestAdminController_ListPending(t *testing.T) {
	svc := &fakeEventService{
		listEvents: []*domain.Event{
			{ID: "event-1", Status: domain.EventStatusPaid},
			{ID: "event-2", Status: domain.EventStatusPaid},
		},
		pendingTotal: 7,
	}
	ctrl := NewAdminController(testControllerLogger(), svc, &fakeInviteService{})
	req := httptest.NewRequest(http.MethodGet, "http://test/api/admin/events?page=1&page_size=2", nil)
	rr := httptest.NewRecorder()

	ctrl.ListPending(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var envelope struct {
		Data  PendingEventsResponse `json:"data"`
		Error *helpers.APIError     `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	require.Nil(t, envelope.Error)
	assert.Len(t, envelope.Data.Events, 2)
	assert.Equal(t, 7, envelope.Data.Pagination.Total)
	assert.Equal(t, 4, envelope.Data.Pagination.TotalPages)
}

func TestAdminController_ListEventInvites(t *testing.T) {
	respondedAt := time.Date(2025, 5, 10, 18, 30, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		inviteSvc := &fakeInviteService{
			invite: &domain.Invite{
				ID:          "invite-1",
				EventID:     "event-1",
				Status:      domain.InviteStatusAccepted,
				RespondedAt: &respondedAt,
				InviteeName: "Bob",
			},
			listTotal: 1,
		}
		ctrl := NewAdminController(testControllerLogger(), &fakeEventService{}, inviteSvc)
		req := httptest.NewRequest(http.MethodGet, "http://test/api/admin/events/event-1/invites", nil)
		req.SetPathValue("eventID", "event-1")
		rr := httptest.NewRecorder()

		ctrl.ListEventInvites(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope struct {
			Data  EventInvitesResponse `json:"data"`
			Error *helpers.APIError    `json:"error"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		require.Len(t, envelope.Data.Invites, 1)
		assert.Equal(t, "Bob", envelope.Data.Invites[0].InviteeName)
		assert.Equal(t, domain.InviteStatusAccepted, envelope.Data.Invites[0].Status)
	})

	t.Run("event not found", func(t *testing.T) {
		ctrl := NewAdminController(testControllerLogger(), &fakeEventService{}, &fakeInviteService{listErr: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodGet, "http://test/api/admin/events/missing/invites", nil)
		req.SetPathValue("eventID", "missing")
		rr := httptest.NewRecorder()

		ctrl.ListEventInvites(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
