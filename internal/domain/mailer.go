package domain

import "context"

// EmailMessage is one rendered email. Either body may be empty.
type EmailMessage struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers rendered emails.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// SpeakerWelcomeEmailData holds data for the email sent after registration.
type SpeakerWelcomeEmailData struct {
	Email     string
	FirstName string
	SpeakerID string
}

// SessionDecisionEmailData holds data for the accepted/rejected email.
type SessionDecisionEmailData struct {
	Email        string
	FirstName    string
	SessionTitle string
	Status       string
	Accepted     bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendSpeakerWelcome(ctx context.Context, data *SpeakerWelcomeEmailData) error
	SendSessionDecision(ctx context.Context, data *SessionDecisionEmailData) error
}
