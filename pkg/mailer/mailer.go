package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends transactional email through the Resend API
type ResendMailer struct {
	client   *resend.Client
	from     string
	fromName string
}

// NewResendMailer creates a ResendMailer
func NewResendMailer(apiKey, fromEmail, fromName string) *ResendMailer {
	return &ResendMailer{
		client:   resend.NewClient(apiKey),
		from:     fromEmail,
		fromName: fromName,
	}
}

// Send delivers a single HTML email
func (m *ResendMailer) Send(ctx context.Context, to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.fromName, m.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	_, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send to %s: %w", to, err)
	}
	return nil
}
