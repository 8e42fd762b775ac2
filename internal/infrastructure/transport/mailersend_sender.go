package transport

import (
	"context"
	"fmt"

	"github.com/mailersend/mailersend-go"
)

// MailerSendSender delivers verification codes by email via MailerSend.
type MailerSendSender struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

// NewMailerSendSender creates a new MailerSend-backed email sender
func NewMailerSendSender(apiKey, fromName, fromEmail string) (*MailerSendSender, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, fmt.Errorf("mailersend sender requires api key and from address")
	}
	return &MailerSendSender{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}, nil
}

// Send emails the code to the recipient
func (m *MailerSendSender) Send(ctx context.Context, recipient, code string) error {
	subject := "Your verification code"
	html := fmt.Sprintf(`
		<h2>Verify your email address</h2>
		<p>Your verification code is: <strong style="font-size: 24px;">%s</strong></p>
		<p>This code will expire in 5 minutes.</p>
		<p>If you didn't request this, please ignore this email.</p>
	`, code)
	text := fmt.Sprintf("Your verification code is: %s\n\nThis code will expire in 5 minutes.", code)

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: recipient}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
