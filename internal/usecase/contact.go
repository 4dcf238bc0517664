package usecase

import (
	"context"
	"time"

	"go-formrelay-backend/internal/domain"
	"go-formrelay-backend/pkg/email"
	"go-formrelay-backend/pkg/logger"
	"go-formrelay-backend/pkg/ratelimit"
	"go-formrelay-backend/pkg/security"
	"go-formrelay-backend/pkg/submissionlog"
	"go-formrelay-backend/pkg/validation"
)

const (
	msgContactSent       = "Thank you for contacting us! We will get back to you within 24 hours."
	msgContactSendFailed = "Failed to send email. Please try again later or contact us directly."
)

// ContactConfig holds the contact form settings.
type ContactConfig struct {
	ReceivingEmail   string
	Cooldown         time.Duration
	MaxMessageLength int
	Company          email.CompanyMeta
	// Now defaults to time.Now.
	Now func() time.Time
}

type contactUsecase struct {
	cfg       ContactConfig
	rules     validation.ContactRules
	gate      *cooldownGate
	transport email.Transport
	secLog    *security.SecurityLogger
	sink      *submissionlog.Sink
	now       func() time.Time
}

// NewContactUsecase creates a new contact usecase. sink may be nil.
func NewContactUsecase(
	limiter *ratelimit.Limiter,
	transport email.Transport,
	secLog *security.SecurityLogger,
	sink *submissionlog.Sink,
	cfg ContactConfig,
) domain.ContactUsecase {
	secLog = orNop(secLog)
	return &contactUsecase{
		cfg: cfg,
		rules: validation.ContactRules{
			MaxMessageLength: cfg.MaxMessageLength,
			Keywords:         validation.NewKeywordDenylist(validation.DefaultSpamKeywords...),
		},
		gate: &cooldownGate{
			limiter:  limiter,
			purpose:  purposeContact,
			form:     formContact,
			verb:     "submitting",
			cooldown: cfg.Cooldown,
			secLog:   secLog,
		},
		transport: transport,
		secLog:    secLog,
		sink:      sink,
		now:       orNow(cfg.Now),
	}
}

// Submit validates the request and sends it to the receiving address
func (uc *contactUsecase) Submit(ctx context.Context, req *domain.ContactRequest) (*domain.SubmissionResult, error) {
	now := uc.now()
	meta := req.Meta

	if err := uc.gate.check(ctx, meta, now); err != nil {
		return nil, err
	}

	v, err := uc.rules.Validate(req)
	if err != nil {
		logRejection(ctx, uc.secLog, formContact, req.Email, meta, err)
		return nil, err
	}

	msg, err := email.ComposeContact(uc.cfg.Company, email.ContactEmailData{
		To:          uc.cfg.ReceivingEmail,
		Name:        v.Name,
		Email:       v.Email,
		Subject:     v.Subject,
		Message:     v.Message,
		Phone:       v.Phone,
		Company:     v.Company,
		ClientIP:    meta.ClientIP,
		SubmittedAt: now,
	})
	if err != nil {
		logger.Log.Error("Failed to compose contact email", "request_id", meta.RequestID, "error", err)
		return nil, domain.DispatchFailure(msgContactSendFailed, err)
	}

	if err := uc.transport.Send(ctx, msg); err != nil {
		logger.Log.Error("Failed to send contact email",
			"transport", uc.transport.Name(),
			"request_id", meta.RequestID,
			"error", err,
		)
		return nil, domain.DispatchFailure(msgContactSendFailed, err)
	}

	if err := uc.sink.Append("contact_submissions", now,
		submissionlog.Field{Label: "Name", Value: v.Name},
		submissionlog.Field{Label: "Email", Value: v.Email},
		submissionlog.Field{Label: "Subject", Value: v.Subject},
		submissionlog.Field{Label: "IP", Value: meta.ClientIP},
	); err != nil {
		logger.Log.Warn("Failed to write contact submission log", "error", err)
	}

	uc.gate.record(ctx, meta, now)

	logger.Log.Info("Contact form submitted",
		"request_id", meta.RequestID,
		"email", security.MaskEmail(v.Email),
	)
	return &domain.SubmissionResult{Message: msgContactSent}, nil
}
