package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// RespondRequest is the request body for POST /api/invites/{inviteID}/respond.
type RespondRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (v RespondRequest) Validate() []string {
	var errs []string
	status := domain.InviteStatus(v.Status)
	if !status.Valid() || !status.Terminal() {
		errs = append(errs, "status must be accepted, rejected, or maybe")
	}
	return errs
}

// InviteController serves the public invite-link endpoints. No auth: the
// invite ID in the URL is the capability.
type InviteController struct {
	Logger  *slog.Logger
	Service domain.InviteService
}

func NewInviteController(logger *slog.Logger, svc domain.InviteService) *InviteController {
	return &InviteController{
		Logger:  logger,
		Service: svc,
	}
}

// GetInvite godoc
// @Summary View an invite
// @Description Returns the invite with event details and current RSVP status. This is the page behind the link sent to the invitee; no authentication is required.
// @Tags invites
// @Produce json
// @Param inviteID path string true "Invite ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the invite"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invites/{inviteID} [get]
func (c *InviteController) GetInvite(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteID")
	if inviteID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing inviteID")
		return
	}
	invite, err := c.Service.GetInvite(r.Context(), inviteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invite not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invite)
}

// Respond godoc
// @Summary Answer an invite
// @Description Records the invitee's RSVP: accepted, rejected, or maybe. Each invite accepts exactly one answer; a second attempt fails with 409 invalid_state and the first answer stands.
// @Tags invites
// @Accept json
// @Produce json
// @Param inviteID path string true "Invite ID (UUID)"
// @Param body body RespondRequest true "RSVP answer"
// @Success 200 {object} helpers.APIResponse "data contains the answered invite"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_state (already answered)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/invites/{inviteID}/respond [post]
func (c *InviteController) Respond(w http.ResponseWriter, r *http.Request) {
	inviteID := r.PathValue("inviteID")
	if inviteID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing inviteID")
		return
	}
	var req RespondRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	invite, err := c.Service.Respond(r.Context(), inviteID, domain.InviteStatus(req.Status))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "invite not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidState) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeInvalidState, "invite has already been answered")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, invite)
}
