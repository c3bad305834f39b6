package captable

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// NewMailer selects a mail provider by name. Unknown providers fall back
// to the log mailer so a misconfigured environment never drops requests.
func NewMailer(provider, addr, from string, logger Logger) Mailer {
	if logger == nil {
		logger = defLogger{}
	}

	switch strings.ToLower(provider) {
	case "smtp":
		if addr == "" {
			logger.Error("smtp mailer selected without an address, falling back to log mailer")
			return LogMailer{logger: logger}
		}
		return &SMTPMailer{addr: addr, from: from}
	case "noop":
		return NoopMailer{}
	default:
		return LogMailer{logger: logger}
	}
}

// LogMailer writes outgoing mail to the logger. Default in development.
type LogMailer struct {
	logger Logger
}

func (m LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.logger.Info("mail out to=%s subject=%q\n%s", to, subject, body)
	return nil
}

// NoopMailer drops mail silently; used in tests
type NoopMailer struct{}

func (NoopMailer) Send(ctx context.Context, to, subject, body string) error {
	return nil
}

// SMTPMailer delivers mail through a plain SMTP relay
type SMTPMailer struct {
	addr string
	from string
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	return smtp.SendMail(m.addr, nil, m.from, []string{to}, []byte(msg))
}
