package mailer

import (
	"fmt"
	"net/smtp"

	"media-reviews/pkg/utils"

	"go.uber.org/zap"
)

// Mailer delivers confirmation codes over SMTP. Without SMTP config it only
// logs the code, which is the development mode.
type Mailer struct {
	cfg utils.EmailConfig
	log *zap.Logger
}

func New(cfg utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		cfg: cfg,
		log: log.With(zap.String("component", "mailer")),
	}
}

// SendConfirmationCode emails the signup confirmation code
func (m *Mailer) SendConfirmationCode(to, username, code string) error {
	if m.cfg.Host == "" {
		m.log.Info("SMTP not configured, confirmation code logged only",
			zap.String("email", to),
			zap.String("confirmation_code", code))
		return nil
	}

	subject := "Your confirmation code"
	body := fmt.Sprintf("Hello %s,\n\nYour confirmation code: %s\n", username, code)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, message); err != nil {
		m.log.Error("Failed to send confirmation email",
			zap.Error(err),
			zap.String("email", to))
		return fmt.Errorf("send confirmation email to %s: %w", to, err)
	}

	return nil
}
