package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteController_GetInvite(t *testing.T) {
	t.Run("success without auth", func(t *testing.T) {
		svc := &fakeInviteService{
			invite: &domain.Invite{
				ID:          "invite-1",
				Status:      domain.InviteStatusPending,
				InviteeName: "Bob",
				EventTitle:  "Birthday",
				EventDate:   "2025-06-15",
			},
		}
		ctrl := NewInviteController(testControllerLogger(), svc)
		req := httptest.NewRequest(http.MethodGet, "http://test/api/invites/invite-1", nil)
		req.SetPathValue("inviteID", "invite-1")
		rr := httptest.NewRecorder()

		ctrl.GetInvite(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope struct {
			Data  *domain.Invite    `json:"data"`
			Error *helpers.APIError `json:"error"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		assert.Equal(t, "Birthday", envelope.Data.EventTitle)
		assert.Equal(t, domain.InviteStatusPending, envelope.Data.Status)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewInviteController(testControllerLogger(), &fakeInviteService{getErr: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodGet, "http://test/api/invites/missing", nil)
		req.SetPathValue("inviteID", "missing")
		rr := httptest.NewRecorder()

		ctrl.GetInvite(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestInviteController_Respond(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		svc          *fakeInviteService
		wantStatus   int
		wantBodyCode string
		wantRecorded domain.InviteStatus
	}{
		{
			name: "accepted",
			body: `{"status":"accepted"}`,
			svc: &fakeInviteService{
				invite: &domain.Invite{ID: "invite-1", Status: domain.InviteStatusAccepted},
			},
			wantStatus:   http.StatusOK,
			wantRecorded: domain.InviteStatusAccepted,
		},
		{
			name: "maybe",
			body: `{"status":"maybe"}`,
			svc: &fakeInviteService{
				invite: &domain.Invite{ID: "invite-1", Status: domain.InviteStatusMaybe},
			},
			wantStatus:   http.StatusOK,
			wantRecorded: domain.InviteStatusMaybe,
		},
		{
			name:         "pending is not an answer",
			body:         `{"status":"pending"}`,
			svc:          &fakeInviteService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "unknown status",
			body:         `{"status":"yes"}`,
			svc:          &fakeInviteService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "already answered",
			body:         `{"status":"accepted"}`,
			svc:          &fakeInviteService{respondErr: domain.ErrInvalidState},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeInvalidState,
		},
		{
			name:         "invite not found",
			body:         `{"status":"accepted"}`,
			svc:          &fakeInviteService{respondErr: domain.ErrNotFound},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "service error",
			body:         `{"status":"accepted"}`,
			svc:          &fakeInviteService{respondErr: assert.AnError},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewInviteController(testControllerLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, "http://test/api/invites/invite-1/respond", bytes.NewReader([]byte(tt.body)))
			req.SetPathValue("inviteID", "invite-1")
			rr := httptest.NewRecorder()

			ctrl.Respond(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				assert.Equal(t, tt.wantRecorded, tt.svc.lastStatus)
			}
		})
	}
}
