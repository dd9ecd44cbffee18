package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createEvent  *domain.Event
	createErr    error
	listEvents   []*domain.Event
	listErr      error
	payEvent     *domain.Event
	payErr       error
	pendingTotal int
	pendingErr   error
	decideEvent  *domain.Event
	decideErr    error
	lastDecision domain.Decision
}

func (f *fakeEventService) CreateEvent(ctx context.Context, ownerID, title, eventDate, notes string, invitees []*domain.Invitee) (*domain.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createEvent, nil
}

func (f *fakeEventService) ListMine(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listEvents, nil
}

func (f *fakeEventService) Pay(ctx context.Context, ownerID, eventID string) (*domain.Event, error) {
	if f.payErr != nil {
		return nil, f.payErr
	}
	return f.payEvent, nil
}

func (f *fakeEventService) ListPending(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.pendingErr != nil {
		return nil, 0, f.pendingErr
	}
	return f.listEvents, f.pendingTotal, nil
}

func (f *fakeEventService) Decide(ctx context.Context, eventID string, decision domain.Decision) (*domain.Event, error) {
	f.lastDecision = decision
	if f.decideErr != nil {
		return nil, f.decideErr
	}
	return f.decideEvent, nil
}

func testControllerLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func authedRequest(method, target string, body []byte) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.SetIdentity(req.Context(), "user-123", []string{domain.RoleUser}))
}

func TestEventController_CreateEvent(t *testing.T) {
	validBody := `{"title":"Birthday","event_date":"2025-06-15","notes":"","invitees":[{"name":"Bob","phone":"+15550001"}]}`

	tests := []struct {
		name         string
		body         string
		svc          *fakeEventService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name: "success",
			body: validBody,
			svc: &fakeEventService{
				createEvent: &domain.Event{ID: "event-1", OwnerID: "user-123", Title: "Birthday", Status: domain.EventStatusDraft},
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:         "empty invitees",
			body:         `{"title":"Birthday","event_date":"2025-06-15","invitees":[]}`,
			svc:          &fakeEventService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "missing title",
			body:         `{"event_date":"2025-06-15","invitees":[{"name":"Bob","phone":"+15550001"}]}`,
			svc:          &fakeEventService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "invitee without phone",
			body:         `{"title":"Birthday","event_date":"2025-06-15","invitees":[{"name":"Bob"}]}`,
			svc:          &fakeEventService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "unknown field rejected",
			body:         `{"title":"Birthday","event_date":"2025-06-15","invitees":[{"name":"Bob","phone":"+1"}],"bogus":1}`,
			svc:          &fakeEventService{},
			wantStatus:   http.StatusBadRequest,
			wantBodyCode: helpers.ErrCodeBadRequest,
		},
		{
			name:         "service error",
			body:         validBody,
			svc:          &fakeEventService{createErr: assert.AnError},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testControllerLogger(), tt.svc)
			req := authedRequest(http.MethodPost, "http://test/api/events", []byte(tt.body))
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				require.Nil(t, envelope.Error)
			}
		})
	}
}

func TestEventController_Pay(t *testing.T) {
	tests := []struct {
		name         string
		svc          *fakeEventService
		wantStatus   int
		wantBodyCode string
	}{
		{
			name:       "success",
			svc:        &fakeEventService{payEvent: &domain.Event{ID: "event-1", Status: domain.EventStatusPaid}},
			wantStatus: http.StatusOK,
		},
		{
			name:         "not found",
			svc:          &fakeEventService{payErr: domain.ErrNotFound},
			wantStatus:   http.StatusNotFound,
			wantBodyCode: helpers.ErrCodeNotFound,
		},
		{
			name:         "already paid",
			svc:          &fakeEventService{payErr: domain.ErrInvalidState},
			wantStatus:   http.StatusConflict,
			wantBodyCode: helpers.ErrCodeInvalidState,
		},
		{
			name:         "service error",
			svc:          &fakeEventService{payErr: assert.AnError},
			wantStatus:   http.StatusInternalServerError,
			wantBodyCode: helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(testControllerLogger(), tt.svc)
			req := authedRequest(http.MethodPost, "http://test/api/events/event-1/pay", nil)
			req.SetPathValue("eventID", "event-1")
			rr := httptest.NewRecorder()

			ctrl.Pay(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBodyCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestEventController_ListMine(t *testing.T) {
	t.Run("returns events", func(t *testing.T) {
		svc := &fakeEventService{listEvents: []*domain.Event{
			{ID: "event-1", Status: domain.EventStatusDraft},
			{ID: "event-2", Status: domain.EventStatusPaid},
		}}
		ctrl := NewEventController(testControllerLogger(), svc)
		req := authedRequest(http.MethodGet, "http://test/api/events/mine", nil)
		rr := httptest.NewRecorder()

		ctrl.ListMine(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var envelope struct {
			Data  []*domain.Event   `json:"data"`
			Error *helpers.APIError `json:"error"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
		require.Nil(t, envelope.Error)
		require.Len(t, envelope.Data, 2)
		assert.Equal(t, "event-1", envelope.Data[0].ID)
	})

	t.Run("no identity in context", func(t *testing.T) {
		ctrl := NewEventController(testControllerLogger(), &fakeEventService{})
		req := httptest.NewRequest(http.MethodGet, "http://test/api/events/mine", nil)
		rr := httptest.NewRecorder()

		ctrl.ListMine(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
