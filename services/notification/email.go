package notification

import (
	"context"
	"fmt"
	"net"
	"net/smtp"

	"quadras/config"
	"quadras/utils"

	"go.uber.org/zap"
)

// EmailSender delivers notification emails over SMTP. When no SMTP host is
// configured, sends are logged and dropped so local environments work
// without a mail server.
type EmailSender struct{}

// NewEmailSender creates an EmailSender using the loaded configuration.
func NewEmailSender() *EmailSender {
	return &EmailSender{}
}

// Send delivers one plain-text email.
func (s *EmailSender) Send(_ context.Context, to, subject, body string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" {
		utils.GetLogger().Info("smtp not configured, dropping email",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		cfg.EmailFrom, to, subject, body)

	port := cfg.SMTPPort
	if port == "" {
		port = "587"
	}
	addr := net.JoinHostPort(cfg.SMTPHost, port)
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, cfg.EmailFrom, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
