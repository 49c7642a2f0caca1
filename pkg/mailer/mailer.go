package mailer

import "context"

// Message represents a single email to be delivered.
type Message struct {
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string // HTML allowed
}

// Sender abstracts the outbound mail transport so the provider (SMTP relay,
// AWS SES, ...) is a configuration-time decision and tests can substitute an
// in-memory fake.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
