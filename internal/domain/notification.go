package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeMessageEmailData holds data for the signup welcome email.
type WelcomeMessageEmailData struct {
	Email string
	Name  string
}

// InviteLinkEmailData holds data for the invite-link email sent when an
// event is approved and the invitee has an email-shaped contact.
type InviteLinkEmailData struct {
	InviteeName string
	EventTitle  string
	EventDate   string
	InviteURL   string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendInviteLink(ctx context.Context, to string, data *InviteLinkEmailData) error
}

// InviteNotifier dispatches one message per materialized invite. The
// production implementation simulates a WhatsApp send by logging.
type InviteNotifier interface {
	NotifyInvitee(ctx context.Context, invite *Invite) error
}
