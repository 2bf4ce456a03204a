package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Guntherdrb/paratodos-gemini/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for the lead-notification emails sent to
// tienda owners.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendAviso sends a plain-text notification email.
func (m *Mailer) SendAviso(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
