package digest

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/kolinabir/hirelens/internal/config"
)

// EmailSender delivers digest emails. Satisfied by SMTPSender; tests
// substitute a recorder.
type EmailSender interface {
	Send(to []string, subject, htmlBody string) error
}

type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers one HTML email to all recipients in a single SMTP
// transaction. Recipients go in BCC so subscribers never see each other.
func (s *SMTPSender) Send(to []string, subject, htmlBody string) error {
	if s.cfg.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}
	if len(to) == 0 {
		return nil
	}

	msg := buildMessage(s.cfg.From, subject, htmlBody)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, to, msg); err != nil {
		return fmt.Errorf("failed to send digest email: %w", err)
	}
	return nil
}

func buildMessage(from, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: undisclosed-recipients:;\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
