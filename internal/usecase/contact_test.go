package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"contact-relay-backend/config"
	"contact-relay-backend/internal/domain"
	"contact-relay-backend/internal/usecase"
	"contact-relay-backend/pkg/mailer"
	"contact-relay-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FakeSender captures messages in memory and fails on demand.
type FakeSender struct {
	Sent []mailer.Message
	// Errs[i] is returned for the i-th Send call; nil or missing means success
	Errs []error
}

func (f *FakeSender) Send(ctx context.Context, msg mailer.Message) error {
	call := len(f.Sent)
	f.Sent = append(f.Sent, msg)
	if call < len(f.Errs) && f.Errs[call] != nil {
		return f.Errs[call]
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		MailFrom:       "noreply@site.test",
		ContactEmailTo: "owner@site.test",
		AckEnabled:     true,
	}
}

func newUsecase(sender mailer.Sender, cfg *config.Config) domain.ContactUsecase {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return usecase.NewContactUsecase(sender, validation.New(), log, cfg)
}

func validRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Hello,\nthis is a test.",
	}
}

func TestSendContactMessage(t *testing.T) {
	t.Run("valid submission sends notification then acknowledgement", func(t *testing.T) {
		sender := &FakeSender{}
		uc := newUsecase(sender, testConfig())

		err := uc.SendContactMessage(context.Background(), validRequest())
		require.NoError(t, err)
		require.Len(t, sender.Sent, 2)

		notification := sender.Sent[0]
		assert.Equal(t, []string{"owner@site.test"}, notification.To)
		assert.Equal(t, "noreply@site.test", notification.From)
		assert.Equal(t, "jane@example.com", notification.ReplyTo)
		assert.Contains(t, notification.Subject, "Jane Doe")

		ack := sender.Sent[1]
		assert.Equal(t, []string{"jane@example.com"}, ack.To)
		assert.Equal(t, "noreply@site.test", ack.From)
		assert.Empty(t, ack.ReplyTo)
	})

	t.Run("acknowledgement disabled sends only the notification", func(t *testing.T) {
		cfg := testConfig()
		cfg.AckEnabled = false
		sender := &FakeSender{}
		uc := newUsecase(sender, cfg)

		err := uc.SendContactMessage(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Len(t, sender.Sent, 1)
	})

	t.Run("invalid submission is rejected before any send", func(t *testing.T) {
		sender := &FakeSender{}
		uc := newUsecase(sender, testConfig())

		err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
			Email: "not-an-email",
		})
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, []string{
			"Name is required",
			"Valid email is required",
			"Message is required",
		}, vErr.Messages)
		assert.Empty(t, sender.Sent)
	})

	t.Run("notification failure is surfaced and skips the acknowledgement", func(t *testing.T) {
		authErr := &mailer.MailError{Kind: mailer.KindAuth, Op: "smtp.send", Err: errors.New("535 bad credentials")}
		sender := &FakeSender{Errs: []error{authErr}}
		uc := newUsecase(sender, testConfig())

		err := uc.SendContactMessage(context.Background(), validRequest())
		var mErr *mailer.MailError
		require.ErrorAs(t, err, &mErr)
		assert.Equal(t, mailer.KindAuth, mErr.Kind)
		assert.Len(t, sender.Sent, 1)
	})

	t.Run("acknowledgement failure does not fail the request", func(t *testing.T) {
		ackErr := &mailer.MailError{Kind: mailer.KindEnvelope, Op: "smtp.send", Err: errors.New("550 no such user")}
		sender := &FakeSender{Errs: []error{nil, ackErr}}
		uc := newUsecase(sender, testConfig())

		err := uc.SendContactMessage(context.Background(), validRequest())
		assert.NoError(t, err)
		assert.Len(t, sender.Sent, 2)
	})

	t.Run("missing transport reports not configured", func(t *testing.T) {
		uc := newUsecase(nil, testConfig())
		err := uc.SendContactMessage(context.Background(), validRequest())
		assert.ErrorIs(t, err, domain.ErrMailNotConfigured)
	})

	t.Run("identical submissions trigger independent sends", func(t *testing.T) {
		sender := &FakeSender{}
		uc := newUsecase(sender, testConfig())

		require.NoError(t, uc.SendContactMessage(context.Background(), validRequest()))
		require.NoError(t, uc.SendContactMessage(context.Background(), validRequest()))
		assert.Len(t, sender.Sent, 4)
	})
}

func TestContactEmailRendering(t *testing.T) {
	t.Run("newlines become line breaks", func(t *testing.T) {
		sender := &FakeSender{}
		uc := newUsecase(sender, testConfig())

		req := validRequest()
		req.Message = "line one\r\nline two\nline three"
		require.NoError(t, uc.SendContactMessage(context.Background(), req))
		require.Len(t, sender.Sent, 2)

		html := sender.Sent[0].HTMLBody
		assert.Contains(t, html, "line one<br>line two<br>line three")
	})

	t.Run("user input is HTML-escaped", func(t *testing.T) {
		sender := &FakeSender{}
		uc := newUsecase(sender, testConfig())

		req := validRequest()
		req.Name = `<script>alert("x")</script>`
		req.Message = `a <b>bold</b> claim & more`
		require.NoError(t, uc.SendContactMessage(context.Background(), req))
		require.Len(t, sender.Sent, 2)

		for _, msg := range sender.Sent {
			assert.NotContains(t, msg.HTMLBody, "<script>")
			assert.NotContains(t, msg.HTMLBody, "<b>bold</b>")
		}
		assert.Contains(t, sender.Sent[0].HTMLBody, "&lt;script&gt;")
	})

	t.Run("line breaks in the name cannot reach the subject header", func(t *testing.T) {
		sender := &FakeSender{}
		uc := newUsecase(sender, testConfig())

		req := validRequest()
		req.Name = "Jane\r\nBcc: victim@example.com"
		require.NoError(t, uc.SendContactMessage(context.Background(), req))
		require.Len(t, sender.Sent, 2)

		subject := sender.Sent[0].Subject
		assert.NotContains(t, subject, "\r")
		assert.NotContains(t, subject, "\n")
		assert.Equal(t, "New contact form submission from Jane Bcc: victim@example.com", subject)
	})

	t.Run("fields are trimmed before rendering", func(t *testing.T) {
		sender := &FakeSender{}
		uc := newUsecase(sender, testConfig())

		req := validRequest()
		req.Name = "  Jane Doe  "
		require.NoError(t, uc.SendContactMessage(context.Background(), req))
		require.Len(t, sender.Sent, 2)

		assert.Equal(t, "New contact form submission from Jane Doe", sender.Sent[0].Subject)
		assert.False(t, strings.Contains(sender.Sent[0].Subject, "  Jane"))
	})
}
