package mail

import (
	"context"
	"fmt"

	"github.com/dateit-app/dateit-backend/internal/config"
	"github.com/dateit-app/dateit-backend/pkg/logger"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewMailer(cfg *config.SMTPConfig) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

const verificationBody = `<p>Hi %s,</p>
<p>Welcome to DateIt! Confirm your email address to finish creating your account:</p>
<p><a href="%s">Verify my email</a></p>
<p>The link expires in 15 minutes. If you didn't sign up, you can ignore this message.</p>`

// SendVerification emails the account confirmation link.
func (m *Mailer) SendVerification(ctx context.Context, to, name, link string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your DateIt account")
	msg.SetBody("text/html", fmt.Sprintf(verificationBody, name, link))

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail to %s: %w", to, err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	logger.L().Debug("verification email sent", zap.String("to", to))
	return nil
}
