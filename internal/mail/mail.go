// Package mail wraps the outbound SMTP transport used by the contact form.
package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"pydenweb/internal/config"
)

// Message is a fully composed outbound email.
type Message struct {
	// FromName is shown as the display name of the configured sender account.
	FromName string
	// ReplyTo lets the recipient answer the visitor directly.
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends composed messages to the configured contact mailbox.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// smtpMailer implements Mailer over SMTP with go-mail.
type smtpMailer struct {
	cfg config.SMTPConfig
}

// NewSMTP creates a Mailer from SMTP settings. It validates configuration but
// does not dial; the connection is established per send.
func NewSMTP(cfg config.SMTPConfig) (Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.User == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp credentials are required")
	}
	return &smtpMailer{cfg: cfg}, nil
}

func (s *smtpMailer) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.FromFormat(msg.FromName, s.cfg.User); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := m.To(s.cfg.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("set reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.cfg.User),
		gomail.WithPassword(s.cfg.Password),
	}
	if s.cfg.Port == 465 {
		opts = append(opts, gomail.WithSSL())
	}

	c, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
