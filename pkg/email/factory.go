package email

import (
	"fmt"
	"log/slog"

	"go-formrelay-backend/config"
)

// NewTransport builds the transport selected by MAIL_TRANSPORT.
func NewTransport(cfg *config.Config, log *slog.Logger) (Transport, error) {
	switch cfg.Mail.Transport {
	case config.TransportSMTP:
		t := NewSMTPTransport(SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		})
		if !t.IsConfigured() {
			return nil, fmt.Errorf("email: SMTP_HOST is required for the smtp transport")
		}
		return t, nil
	case config.TransportResend:
		if cfg.Mail.ResendAPIKey == "" {
			return nil, fmt.Errorf("email: MAIL_RESEND_API_KEY is required for the resend transport")
		}
		return NewResendTransport(cfg.Mail.ResendAPIKey), nil
	case config.TransportLog:
		return NewLogTransport(log), nil
	case config.TransportSendmail:
		return NewSendmailTransport(cfg.Mail.SendmailPath), nil
	default:
		return nil, fmt.Errorf("email: unknown transport %q", cfg.Mail.Transport)
	}
}

// MetaFromConfig returns the sender identity configured for the company.
func MetaFromConfig(cfg *config.Config) CompanyMeta {
	return CompanyMeta{
		Name:      cfg.Company.Name,
		FromEmail: cfg.Company.FromEmail,
		Address:   cfg.Company.Address,
	}
}
