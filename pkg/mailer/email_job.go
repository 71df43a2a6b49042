package mailer

import "time"

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Html is optional; Text is recommended as fallback.
// You can also use a template by specifying Template and Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "activation"
	Data     map[string]any `json:"data,omitempty"`
}

// SentMail is what the worker archives after a successful send.
type SentMail struct {
	To        string    `json:"to"`
	Template  string    `json:"template,omitempty"`
	Subject   string    `json:"subject"`
	Text      string    `json:"text,omitempty"`
	HTML      string    `json:"html,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}
