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

// ShiftConfirmationEmailData holds data for the signup/drop confirmation email.
type ShiftConfirmationEmailData struct {
	Email         string
	VolunteerName string
	Action        string // "Signup" or "Drop"
	DeceasedName  string
	LocationName  string
	Address       string
	Date          string
	Time          string
	PortalURL     string
}

// DeathNoticeEmailData holds data for the death-notice notification email.
type DeathNoticeEmailData struct {
	Email        string
	FirstName    string
	LastName     string
	DeceasedName string
	Pronoun      string
	VerbPhrase   string
	LocationName string
	Address      string
	StartText    string
	EndText      string
	PersonalInfo string
	PortalURL    string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendShiftConfirmation(ctx context.Context, data *ShiftConfirmationEmailData) error
	SendDeathNotice(ctx context.Context, data *DeathNoticeEmailData) error
}
