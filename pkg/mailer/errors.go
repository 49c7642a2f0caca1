package mailer

import "fmt"

// Kind classifies a delivery failure so the caller can choose a response
// status without parsing provider-specific error strings.
type Kind string

const (
	// KindAuth means the transport rejected our credentials.
	KindAuth Kind = "auth"
	// KindEnvelope means the sender or recipient address was refused.
	KindEnvelope Kind = "envelope"
	// KindConnection means the transport could not be reached in time.
	KindConnection Kind = "connection"
	// KindUnknown covers everything the transport did not classify.
	KindUnknown Kind = "unknown"
)

// MailError wraps a transport failure with its classification.
type MailError struct {
	Kind Kind
	Op   string // "smtp.send", "ses.send"
	Err  error
}

func (e *MailError) Error() string {
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *MailError) Unwrap() error {
	return e.Err
}

func newError(op string, kind Kind, err error) *MailError {
	return &MailError{Kind: kind, Op: op, Err: err}
}
