package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Mailgun sends rendered mails through the Mailgun HTTP API.
type Mailgun struct {
	Domain string
	Sender string
	client *mg.MailgunImpl
}

// NewMailgun builds a client for domain. apiBase overrides the default (US) endpoint, e.g. mg.APIBaseEU.
func NewMailgun(domain, apiKey, sender, apiBase string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{Domain: domain, Sender: sender, client: client}
}

// Send sends an email via Mailgun and returns the Mailgun message id. html is optional.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) (string, error) {
	msg := m.client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, id, err := m.client.Send(c, msg)
	return id, err
}
