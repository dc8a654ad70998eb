package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

// Message is a plain email to deliver.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers email messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer returns an SMTP mailer when a host is configured, otherwise a
// log-only mailer so notification paths stay exercised in development.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) Mailer {
	if cfg.Configured() {
		return &smtpMailer{cfg: cfg}
	}
	logger.Warn("SMTP_HOST not provided; mail notifications will be logged only")
	return &logMailer{logger: logger}
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func (m *smtpMailer) Send(_ context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("mail: empty recipient")
	}

	var payload strings.Builder
	payload.WriteString("From: Helpdesk System <" + m.cfg.From + ">\r\n")
	payload.WriteString("To: " + msg.To + "\r\n")
	payload.WriteString("Subject: " + msg.Subject + "\r\n")
	payload.WriteString("MIME-Version: 1.0\r\n")
	payload.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	payload.WriteString("\r\n")
	payload.WriteString(msg.Body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, []byte(payload.String()))
}

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("mail (log-only)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
