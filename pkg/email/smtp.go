package email

import (
	"context"
	"fmt"
	"net/smtp"
	"time"
)

// SMTPConfig configures the SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

// SMTPTransport sends through an SMTP relay with PLAIN auth. net/smtp upgrades
// to TLS with STARTTLS when the server offers it.
type SMTPTransport struct {
	cfg SMTPConfig
	// sendMail is smtp.SendMail, replaced in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	now      func() time.Time
}

func NewSMTPTransport(cfg SMTPConfig) *SMTPTransport {
	return &SMTPTransport{cfg: cfg, sendMail: smtp.SendMail, now: time.Now}
}

func (t *SMTPTransport) Name() string { return "smtp" }

// IsConfigured checks if the transport has a usable relay configuration
func (t *SMTPTransport) IsConfigured() bool {
	return t.cfg.Host != "" && t.cfg.Port != ""
}

// Send delivers msg. net/smtp has no context support; ctx is only checked
// before dialing.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	if !t.IsConfigured() {
		return fmt.Errorf("smtp transport is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := BuildMIME(msg, t.now(), "")
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	var auth smtp.Auth
	if t.cfg.Username != "" {
		auth = smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%s", t.cfg.Host, t.cfg.Port)
	if err := t.sendMail(addr, auth, msg.From.Address, msg.To, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
