package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"
)

// SMTPSender delivers mail through a plain SMTP relay.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
}

// NewSMTPSender creates a new SMTP sender. Host and port are required.
func NewSMTPSender(host, port, username, password string) (*SMTPSender, error) {
	if host == "" || port == "" {
		return nil, fmt.Errorf("SMTP host and port are required")
	}
	return &SMTPSender{host: host, port: port, username: username, password: password}, nil
}

// IsConfigured reports whether the sender has credentials to authenticate with.
func (s *SMTPSender) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	raw, err := buildRawMessage(msg)
	if err != nil {
		return newError("smtp.send", KindUnknown, err)
	}

	if err := smtp.SendMail(addr, auth, msg.From, msg.To, raw); err != nil {
		return newError("smtp.send", classifySMTP(err), err)
	}
	return nil
}

// buildRawMessage assembles an RFC822 message. When both a text and an HTML
// body are present it produces multipart/alternative, otherwise a single part.
// Header-bound values must not contain CR/LF: a line break inside any of them
// would terminate its header early and inject whatever follows as additional
// headers (Bcc, extra recipients), so the message is refused instead.
func buildRawMessage(msg Message) ([]byte, error) {
	headerValues := append([]string{msg.From, msg.ReplyTo, msg.Subject}, msg.To...)
	for _, v := range headerValues {
		if strings.ContainsAny(v, "\r\n") {
			return nil, fmt.Errorf("header value contains CR or LF: %q", v)
		}
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", msg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		w := multipart.NewWriter(&buf)
		fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", w.Boundary())
		part, err := w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/plain; charset=\"UTF-8\""}})
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(part, msg.TextBody); err != nil {
			return nil, err
		}
		part, err = w.CreatePart(textproto.MIMEHeader{"Content-Type": {"text/html; charset=\"UTF-8\""}})
		if err != nil {
			return nil, err
		}
		if _, err := io.WriteString(part, msg.HTMLBody); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
	case msg.HTMLBody != "":
		buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		buf.WriteString(msg.HTMLBody)
	default:
		buf.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		buf.WriteString(msg.TextBody)
	}

	return buf.Bytes(), nil
}

// classifySMTP maps SMTP reply codes and transport errors onto the failure
// taxonomy. net/smtp surfaces negative replies as *textproto.Error.
func classifySMTP(err error) Kind {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535, 538:
			return KindAuth
		case 501, 550, 551, 552, 553, 554:
			return KindEnvelope
		case 421:
			return KindConnection
		default:
			return KindUnknown
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnection
	}
	if errors.Is(err, io.EOF) {
		return KindConnection
	}
	return KindUnknown
}
