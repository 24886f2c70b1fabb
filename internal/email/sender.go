package email

import "context"

// MethodLine is one "method: detail" row of the notification email.
type MethodLine struct {
	Label  string
	Detail string
}

// ContactSubmittedData fills the contact_submitted template.
type ContactSubmittedData struct {
	Title        string
	SubmissionID string
	SubjectLabel string
	Subject      string
	MethodsLabel string
	Methods      []MethodLine
	MessageLabel string
	Message      string
	ReceivedAt   string
}

// Sender delivers the owner's notification emails.
type Sender interface {
	SendContactSubmitted(ctx context.Context, toEmail, subject string, data ContactSubmittedData) error
}

// NoopSender drops every email. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendContactSubmitted(context.Context, string, string, ContactSubmittedData) error {
	return nil
}
