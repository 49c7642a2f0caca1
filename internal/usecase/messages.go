package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"contact-relay-backend/internal/domain"
	"contact-relay-backend/pkg/mailer"
)

// contactEmailData holds the data rendered into the contact emails. The
// message is pre-split into lines so the template can join them with <br>
// while html/template escapes each line as plain text.
type contactEmailData struct {
	Name         string
	Email        string
	MessageLines []string
}

// notificationTemplate is the HTML body sent to the site owner
const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Form Submission</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div class="value">{{.Name}} ({{.Email}})</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This email was sent from the website contact form.</p>
            <p>To reply, send an email to: {{.Email}}</p>
        </div>
    </div>
</body>
</html>`

// acknowledgementTemplate is the HTML body sent back to the submitter
const acknowledgementTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>We Received Your Message</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Thank You, {{.Name}}</h1>
        </div>
        <div class="content">
            <p>We received your message and will get back to you as soon as possible.</p>
            <p>For reference, this is what you sent us:</p>
            <p>{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
        </div>
        <div class="footer">
            <p>This is an automated confirmation. There is no need to reply.</p>
        </div>
    </div>
</body>
</html>`

var (
	notificationTmpl    = template.Must(template.New("notification").Parse(notificationTemplate))
	acknowledgementTmpl = template.Must(template.New("acknowledgement").Parse(acknowledgementTemplate))
)

func newContactEmailData(req *domain.ContactRequest) contactEmailData {
	normalized := strings.ReplaceAll(req.Message, "\r\n", "\n")
	return contactEmailData{
		// The name ends up in the Subject header; interior CR/LF would let
		// a submitter smuggle additional headers into the outbound message,
		// so collapse any whitespace run to a single space.
		Name:         strings.Join(strings.Fields(req.Name), " "),
		Email:        strings.TrimSpace(req.Email),
		MessageLines: strings.Split(normalized, "\n"),
	}
}

// buildNotification renders the message relayed to the site owner. Reply-To
// points at the submitter so the owner can answer directly.
func buildNotification(from, to string, req *domain.ContactRequest) (mailer.Message, error) {
	data := newContactEmailData(req)

	var body bytes.Buffer
	if err := notificationTmpl.Execute(&body, data); err != nil {
		return mailer.Message{}, fmt.Errorf("failed to render notification template: %w", err)
	}

	text := fmt.Sprintf("New contact form submission\r\n\r\nFrom: %s (%s)\r\n\r\n%s\r\n",
		data.Name, data.Email, strings.Join(data.MessageLines, "\r\n"))

	return mailer.Message{
		From:     from,
		To:       []string{to},
		ReplyTo:  data.Email,
		Subject:  fmt.Sprintf("New contact form submission from %s", data.Name),
		TextBody: text,
		HTMLBody: body.String(),
	}, nil
}

// buildAcknowledgement renders the confirmation sent back to the submitter.
func buildAcknowledgement(from string, req *domain.ContactRequest) (mailer.Message, error) {
	data := newContactEmailData(req)

	var body bytes.Buffer
	if err := acknowledgementTmpl.Execute(&body, data); err != nil {
		return mailer.Message{}, fmt.Errorf("failed to render acknowledgement template: %w", err)
	}

	text := fmt.Sprintf("Hi %s,\r\n\r\nWe received your message and will get back to you as soon as possible.\r\n",
		data.Name)

	return mailer.Message{
		From:     from,
		To:       []string{data.Email},
		Subject:  "We received your message",
		TextBody: text,
		HTMLBody: body.String(),
	}, nil
}
