package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/trang-ptt/INSTARE-BE/internal/infrastructure/mail/port"
)

// SMTPMailer satisfies port.Mailer over plain SMTP with optional AUTH.
type SMTPMailer struct {
	addr string // host:port
	host string
	from string
	auth smtp.Auth
}

// NewSMTPMailerFromEnv builds a mailer from SMTP_ADDR, MAIL_FROM and the
// optional SMTP_USER/SMTP_PASSWORD pair.
func NewSMTPMailerFromEnv() (*SMTPMailer, error) {
	addr := os.Getenv("SMTP_ADDR")
	from := os.Getenv("MAIL_FROM")
	if addr == "" || from == "" {
		return nil, errors.New("mail: SMTP_ADDR and MAIL_FROM environment variables are required")
	}
	host := addr
	if i := strings.LastIndex(addr, ":"); i > 0 {
		host = addr[:i]
	}
	m := &SMTPMailer{addr: addr, host: host, from: from}
	if user := os.Getenv("SMTP_USER"); user != "" {
		m.auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), host)
	}
	return m, nil
}

var _ port.Mailer = (*SMTPMailer)(nil)

func (s *SMTPMailer) Send(_ context.Context, m port.Mail) error {
	if m.To == "" {
		return errors.New("mail: recipient is required")
	}
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", s.from, m.To, m.Subject, m.Body)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{m.To}, []byte(msg)); err != nil {
		return fmt.Errorf("mail: send to %s: %w", m.To, err)
	}
	return nil
}
