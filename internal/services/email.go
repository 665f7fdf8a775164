package services

import (
	"context"
	"fmt"
	"log/slog"

	"shmirascheduler/internal/domain"
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

// SendShiftConfirmation sends the signup/drop confirmation using the
// "shift_confirmation" template.
func (s *emailService) SendShiftConfirmation(ctx context.Context, data *domain.ShiftConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("shift confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("shift_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render shift_confirmation template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send shift confirmation: %w", err)
	}
	s.logger.Info("shift confirmation sent", "to", data.Email, "action", data.Action)
	return nil
}

// SendDeathNotice sends the death-notice notification using the "death_notice"
// template.
func (s *emailService) SendDeathNotice(ctx context.Context, data *domain.DeathNoticeEmailData) error {
	if data == nil {
		return fmt.Errorf("death notice data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("death_notice", data)
	if err != nil {
		return fmt.Errorf("failed to render death_notice template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send death notice: %w", err)
	}
	s.logger.Info("death notice sent", "to", data.Email, "deceased", data.DeceasedName)
	return nil
}
