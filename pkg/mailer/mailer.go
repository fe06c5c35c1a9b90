package mailer

import (
	"gopkg.in/gomail.v2"
)

// Mailer dispatches a single HTML e-mail. Sends are best-effort: callers log
// failures and move on, nothing is queued for retry.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer talks to a plain SMTP endpoint (a local relay such as
// mailhog in development). Password may be empty.
func NewSMTPMailer(host string, port int, from, password string) Mailer {
	dialer := &gomail.Dialer{Host: host, Port: port}
	if password != "" {
		dialer.Username = from
		dialer.Password = password
	}
	return &smtpMailer{
		dialer: dialer,
		from:   from,
	}
}

func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
