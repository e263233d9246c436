package services

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// Email is one outbound message for the contact relay.
type Email struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Text    string
}

// Mailer dispatches a single email through the provider. The relay treats
// each dispatch independently so partial-success reporting can be added
// later without touching callers.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// ResendMailer sends through the Resend API. The API key stays server-side;
// the browser only ever talks to the relay endpoint.
type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, msg Email) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	_, err := m.client.Emails.SendWithContext(ctx, params)
	return err
}
