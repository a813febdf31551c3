package services

import (
	"context"
	"fmt"
	"log/slog"

	"conferencecfp/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendSpeakerWelcome sends the "speaker_welcome" template to a newly registered speaker.
func (s *emailService) SendSpeakerWelcome(ctx context.Context, data *domain.SpeakerWelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("speaker welcome data is nil")
	}
	if err := s.send(ctx, data.Email, "speaker_welcome", data); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "speaker welcome email sent", "speaker_id", data.SpeakerID)
	return nil
}

// SendSessionDecision sends the "session_decision" template after a session is accepted or rejected.
func (s *emailService) SendSessionDecision(ctx context.Context, data *domain.SessionDecisionEmailData) error {
	if data == nil {
		return fmt.Errorf("session decision data is nil")
	}
	if err := s.send(ctx, data.Email, "session_decision", data); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "session decision email sent", "status", data.Status)
	return nil
}

func (s *emailService) send(ctx context.Context, to, template string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	msg := domain.EmailMessage{To: to, Subject: subject, HTMLBody: htmlBody, TextBody: textBody}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	return nil
}
