package notification

import (
	"context"

	"gopkg.in/mail.v2"
)

// Mailer delivers plain-text email over SMTP.
type Mailer struct {
	dialer *mail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: mail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	message := mail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	return m.dialer.DialAndSend(message)
}
