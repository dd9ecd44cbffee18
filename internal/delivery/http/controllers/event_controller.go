package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// InviteeRequest is one guest entry in the create-event body.
type InviteeRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	Title     string           `json:"title"`
	EventDate string           `json:"event_date"`
	Notes     string           `json:"notes"`
	Invitees  []InviteeRequest `json:"invitees"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.EventDate) == "" {
		errs = append(errs, "event_date is required")
	}
	if len(c.Invitees) == 0 {
		errs = append(errs, "at least one invitee is required")
	}
	for _, inv := range c.Invitees {
		if strings.TrimSpace(inv.Name) == "" || strings.TrimSpace(inv.Phone) == "" {
			errs = append(errs, "every invitee needs a name and a phone")
			break
		}
	}
	return errs
}

// CreateEventResponse is the data payload for POST /api/events (201).
type CreateEventResponse struct {
	Event    *domain.Event     `json:"event"`
	Invitees []*domain.Invitee `json:"invitees"`
}

// CreateEventSuccessResponse is the success response envelope for POST /api/events (201).
type CreateEventSuccessResponse struct {
	Data  CreateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListMyEventsSuccessResponse is the success response envelope for GET /api/events/mine (200).
type ListMyEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// PayEventSuccessResponse is the success response envelope for POST /api/events/{eventID}/pay (200).
type PayEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a draft event with its invitee list
// @Description Creates an event in draft status together with its invitees in one transaction. The invitee list must be non-empty; invitees are named contacts, not system users. The authenticated user becomes the owner.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data with invitees"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the event and its invitees"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong role)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	invitees := make([]*domain.Invitee, len(req.Invitees))
	for i, inv := range req.Invitees {
		invitees[i] = &domain.Invitee{Name: inv.Name, Phone: inv.Phone}
	}
	event, err := c.Service.CreateEvent(r.Context(), userID, req.Title, req.EventDate, req.Notes, invitees)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{Event: event, Invitees: invitees})
}

// ListMine godoc
// @Summary List events owned by the current user
// @Description Returns the caller's events in creation order. Requires a user-role Bearer token.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyEventsSuccessResponse "data is an array of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong role)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/mine [get]
func (c *EventController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListMine(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Pay godoc
// @Summary Mark an event as paid
// @Description Simulates payment for a draft event and transitions it to paid, making it visible to admins for review. Only the owner can pay; events owned by others report 404. Paying twice fails with 409 invalid_state and does not double-charge.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.PayEventSuccessResponse "data contains the paid event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong role)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state (not a draft)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID}/pay [post]
func (c *EventController) Pay(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.Pay(r.Context(), userID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidState) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeInvalidState, "event is not in draft status")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
