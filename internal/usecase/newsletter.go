package usecase

import (
	"context"
	"net/url"
	"strings"
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
	msgSubscribedDoubleOptIn = "Thank you for subscribing! Please check your email to confirm your subscription."
	msgSubscribed            = "Thank you for subscribing! You will receive our latest updates and insights."
	msgConfirmationFailed    = "Failed to send confirmation email. Please try again later."
)

// ConfirmationPath is where double opt-in links point.
const ConfirmationPath = "/confirm-subscription"

// NewsletterConfig holds the newsletter settings.
type NewsletterConfig struct {
	// ReceivingEmail gets admin notifications and answers subscriber replies.
	ReceivingEmail     string
	Cooldown           time.Duration
	AdminNotification  bool
	SendConfirmation   bool
	RequireDoubleOptIn bool
	// PublicBaseURL overrides the request origin in confirmation links.
	PublicBaseURL string
	Company       email.CompanyMeta
	Now           func() time.Time
}

type newsletterUsecase struct {
	cfg       NewsletterConfig
	rules     validation.NewsletterRules
	gate      *cooldownGate
	repo      domain.SubscriberRepository
	transport email.Transport
	secLog    *security.SecurityLogger
	sink      *submissionlog.Sink
	now       func() time.Time
}

// NewNewsletterUsecase creates a newsletter usecase. A nil repo disables the
// duplicate check and persistence.
func NewNewsletterUsecase(
	limiter *ratelimit.Limiter,
	repo domain.SubscriberRepository,
	transport email.Transport,
	secLog *security.SecurityLogger,
	sink *submissionlog.Sink,
	cfg NewsletterConfig,
) domain.NewsletterUsecase {
	secLog = orNop(secLog)
	return &newsletterUsecase{
		cfg: cfg,
		rules: validation.NewsletterRules{
			Disposable: validation.NewDomainDenylist(validation.DefaultDisposableDomains...),
			NewToken:   GenerateToken,
		},
		gate: &cooldownGate{
			limiter:  limiter,
			purpose:  purposeNewsletter,
			form:     formNewsletter,
			verb:     "subscribing",
			cooldown: cfg.Cooldown,
			secLog:   secLog,
		},
		repo:      repo,
		transport: transport,
		secLog:    secLog,
		sink:      sink,
		now:       orNow(cfg.Now),
	}
}

func (uc *newsletterUsecase) Subscribe(ctx context.Context, req *domain.NewsletterRequest) (*domain.SubmissionResult, error) {
	now := uc.now()
	meta := req.Meta

	if err := uc.gate.check(ctx, meta, now); err != nil {
		return nil, err
	}

	sub, err := uc.rules.Validate(req)
	if err != nil {
		logRejection(ctx, uc.secLog, formNewsletter, req.Email, meta, err)
		return nil, err
	}

	if uc.alreadySubscribed(ctx, sub.Email, meta) {
		uc.secLog.Log(ctx, security.SecurityEvent{
			Event:        security.EventDuplicateSubscription,
			Form:         formNewsletter,
			SubjectType:  "email",
			SubjectValue: security.MaskEmail(sub.Email),
			IP:           meta.ClientIP,
			RequestID:    meta.RequestID,
		})
		return nil, domain.DuplicateSubscription()
	}

	if uc.cfg.SendConfirmation {
		if err := uc.sendConfirmation(ctx, sub, meta, now); err != nil {
			logger.Log.Error("Failed to send confirmation email",
				"transport", uc.transport.Name(),
				"request_id", meta.RequestID,
				"error", err,
			)
			return nil, domain.DispatchFailure(msgConfirmationFailed, err)
		}
	}

	if uc.repo != nil {
		status := domain.SubscriberActive
		if uc.cfg.RequireDoubleOptIn {
			status = domain.SubscriberPending
		}
		_, err := uc.repo.InsertIfAbsent(ctx, &domain.SubscriberRecord{
			Email:             sub.Email,
			IPAddress:         meta.ClientIP,
			SubscriptionToken: sub.SubscriptionToken,
			SubscribedAt:      now,
			Status:            status,
		})
		if err != nil {
			logger.Log.Error("Failed to store subscriber", "request_id", meta.RequestID, "error", err)
		}
	}

	if uc.cfg.AdminNotification {
		uc.notifyAdmin(ctx, sub, meta, now)
	}

	if err := uc.sink.Append("newsletter_subscriptions", now,
		submissionlog.Field{Label: "Email", Value: sub.Email},
		submissionlog.Field{Label: "IP", Value: meta.ClientIP},
	); err != nil {
		logger.Log.Warn("Failed to write newsletter subscription log", "error", err)
	}

	uc.gate.record(ctx, meta, now)

	logger.Log.Info("Newsletter subscription accepted",
		"request_id", meta.RequestID,
		"email", security.MaskEmail(sub.Email),
	)
	if uc.cfg.RequireDoubleOptIn {
		return &domain.SubmissionResult{Message: msgSubscribedDoubleOptIn}, nil
	}
	return &domain.SubmissionResult{Message: msgSubscribed}, nil
}

// alreadySubscribed treats lookup errors as "not subscribed".
func (uc *newsletterUsecase) alreadySubscribed(ctx context.Context, addr string, meta domain.SubmissionMeta) bool {
	if uc.repo == nil {
		return false
	}
	exists, err := uc.repo.ExistsWithStatus(ctx, addr, domain.SubscriberPending, domain.SubscriberActive)
	if err != nil {
		logger.Log.Error("Subscriber lookup failed", "request_id", meta.RequestID, "error", err)
		return false
	}
	return exists
}

func (uc *newsletterUsecase) sendConfirmation(ctx context.Context, sub *domain.ValidatedSubscription, meta domain.SubmissionMeta, now time.Time) error {
	data := email.ConfirmationEmailData{
		Email:        sub.Email,
		ContactEmail: uc.cfg.ReceivingEmail,
		SubmittedAt:  now,
	}
	if uc.cfg.RequireDoubleOptIn {
		data.ConfirmationLink = confirmationLink(uc.baseURL(meta), sub.SubscriptionToken)
	}

	msg, err := email.ComposeConfirmation(uc.cfg.Company, data)
	if err != nil {
		return err
	}
	return uc.transport.Send(ctx, msg)
}

func (uc *newsletterUsecase) notifyAdmin(ctx context.Context, sub *domain.ValidatedSubscription, meta domain.SubmissionMeta, now time.Time) {
	msg, err := email.ComposeAdminNotification(uc.cfg.Company, email.AdminNotificationData{
		To:          uc.cfg.ReceivingEmail,
		Email:       sub.Email,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
		SubmittedAt: now,
	})
	if err == nil {
		err = uc.transport.Send(ctx, msg)
	}
	if err != nil {
		logger.Log.Warn("Failed to send admin notification", "request_id", meta.RequestID, "error", err)
	}
}

func (uc *newsletterUsecase) baseURL(meta domain.SubmissionMeta) string {
	if uc.cfg.PublicBaseURL != "" {
		return uc.cfg.PublicBaseURL
	}
	return meta.BaseURL
}

func confirmationLink(base, token string) string {
	return strings.TrimRight(base, "/") + ConfirmationPath + "?token=" + url.QueryEscape(token)
}
