package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Protected routes are wrapped with RequireAuth plus the role check for
// their surface; invite-link routes stay public.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	adminController *controllers.AdminController,
	inviteController *controllers.InviteController,
) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(verifier, logger)
	userOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.RoleUser)(h))
	}
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.RoleAdmin)(h))
	}

	// Auth
	mux.HandleFunc("POST /api/signup", authController.SignUp)
	mux.HandleFunc("POST /api/login", authController.Login)
	mux.HandleFunc("POST /api/admin/login", authController.AdminLogin)

	// User events
	mux.HandleFunc("POST /api/events", userOnly(eventController.CreateEvent))
	mux.HandleFunc("GET /api/events/mine", userOnly(eventController.ListMine))
	mux.HandleFunc("POST /api/events/{eventID}/pay", userOnly(eventController.Pay))

	// Admin review
	mux.HandleFunc("GET /api/admin/events", adminOnly(adminController.ListPending))
	mux.HandleFunc("POST /api/admin/events/{eventID}/decision", adminOnly(adminController.Decide))
	mux.HandleFunc("GET /api/admin/events/{eventID}/invites", adminOnly(adminController.ListEventInvites))

	// Public invite links
	mux.HandleFunc("GET /api/invites/{inviteID}", inviteController.GetInvite)
	mux.HandleFunc("POST /api/invites/{inviteID}/respond", inviteController.Respond)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
