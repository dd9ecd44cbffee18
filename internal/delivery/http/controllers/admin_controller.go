package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// DecideEventRequest is the request body for POST /api/admin/events/{eventID}/decision.
type DecideEventRequest struct {
	Decision string `json:"decision"`
}

// Validate implements Validator.
func (d DecideEventRequest) Validate() []string {
	var errs []string
	switch domain.Decision(d.Decision) {
	case domain.DecisionApprove, domain.DecisionReject:
	default:
		errs = append(errs, "decision must be approve or reject")
	}
	return errs
}

// PendingEventsResponse is the data payload for GET /api/admin/events/pending.
type PendingEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// EventInvitesResponse is the data payload for GET /api/admin/events/{eventID}/invites.
type EventInvitesResponse struct {
	Invites    []*domain.Invite       `json:"invites"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type AdminController struct {
	Logger       *slog.Logger
	EventService domain.EventService
	InviteSvc    domain.InviteService
}

func NewAdminController(logger *slog.Logger, eventSvc domain.EventService, inviteSvc domain.InviteService) *AdminController {
	return &AdminController{
		Logger:       logger,
		EventService: eventSvc,
		InviteSvc:    inviteSvc,
	}
}

// ListPending godoc
// @Summary List paid events awaiting review
// @Description Returns the paid events queue, oldest first, for the admin to approve or reject. Draft events are never shown here.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong role)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/events [get]
func (c *AdminController) ListPending(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.EventService.ListPending(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, PendingEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Decide godoc
// @Summary Approve or reject a paid event
// @Description Records the admin's verdict on a paid event. Approval transitions the event to approved and creates one pending invite per invitee, then sends each invitee a simulated notification with their personal invite link. Rejection transitions the event to rejected and creates nothing. Both outcomes are final.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body DecideEventRequest true "approve or reject"
// @Success 200 {object} helpers.APIResponse "data contains the decided event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong role)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state (not paid)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/events/{eventID}/decision [post]
func (c *AdminController) Decide(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req DecideEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.EventService.Decide(r.Context(), eventID, domain.Decision(req.Decision))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidState) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeInvalidState, "event is not awaiting review")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListEventInvites godoc
// @Summary List invites and responses for an event
// @Description Returns the invites of an approved event with invitee details and current RSVP status, so the admin can see who answered what.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains invites and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (wrong role)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/events/{eventID}/invites [get]
func (c *AdminController) ListEventInvites(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	params := helpers.ParsePagination(r)
	invites, total, err := c.InviteSvc.ListForEvent(r.Context(), eventID, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventInvitesResponse{
		Invites:    invites,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
