package mailer

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"

	"eballot/internal/apperror"
	"eballot/internal/config"
)

// Sender delivers one-time passcodes. Satisfied by SMTP and by test fakes.
type Sender interface {
	SendOTP(to, code string, ttl time.Duration) error
}

// SMTP sends mail through a gomail dialer. When the SMTP_* variables are
// missing the dialer stays nil and every send fails Unconfigured, so an
// OTP is never recorded as issued without a mail going out.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
	log    *logrus.Logger
}

func New(cfg *config.Config, log *logrus.Logger) *SMTP {
	m := &SMTP{from: cfg.EmailFrom, log: log}
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		log.Warn("email service not configured – set SMTP_* environment variables")
		return m
	}
	m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	return m
}

func (m *SMTP) SendOTP(to, code string, ttl time.Duration) error {
	if m.dialer == nil {
		return apperror.Unconfigured("email service")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your UMak eBallot verification code")
	msg.SetBody("text/html", otpBody(code, ttl))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Errorf("failed to send OTP mail to %s: %v", to, err)
		return fmt.Errorf("sending OTP mail: %w", err)
	}
	return nil
}

func otpBody(code string, ttl time.Duration) string {
	minutes := int(ttl.Minutes())
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="font-family:sans-serif;background:#f2f3f8;padding:24px;color:#2d2d2d">
  <div style="max-width:520px;margin:0 auto;background:#fff;border-radius:12px;overflow:hidden">
    <div style="background:#304ffe;text-align:center;padding:36px 28px;color:#fff">
      <h1 style="margin:0;font-size:22px">UMak eBallot</h1>
    </div>
    <div style="padding:32px 28px">
      <p>Your one-time verification code is:</p>
      <p style="font-size:32px;font-weight:700;letter-spacing:6px;text-align:center">%s</p>
      <p>This code expires in %d minutes. If you did not request it, ignore this email.</p>
    </div>
  </div>
</body>
</html>`, code, minutes)
}
