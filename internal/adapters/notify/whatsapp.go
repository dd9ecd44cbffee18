package notify

import (
	"context"
	"fmt"
	"log/slog"

	"eventrsvp/internal/domain"
)

// whatsappStub simulates sending a WhatsApp message per invite by logging.
// No network call is made; the invite record itself is the durable artifact.
type whatsappStub struct {
	logger  *slog.Logger
	baseURL string
}

// NewWhatsAppStub returns an InviteNotifier that logs one line per invite,
// including the public invite link built from baseURL.
func NewWhatsAppStub(logger *slog.Logger, baseURL string) domain.InviteNotifier {
	return &whatsappStub{logger: logger, baseURL: baseURL}
}

func (w *whatsappStub) NotifyInvitee(ctx context.Context, invite *domain.Invite) error {
	w.logger.InfoContext(ctx, "whatsapp invite sent",
		"invitee", invite.InviteeName,
		"phone", invite.InviteePhone,
		"event_id", invite.EventID,
		"link", fmt.Sprintf("%s/api/invites/%s", w.baseURL, invite.ID),
	)
	return nil
}
