package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"go-formrelay-backend/internal/domain"
	"go-formrelay-backend/pkg/logger"
	"go-formrelay-backend/pkg/ratelimit"
	"go-formrelay-backend/pkg/security"
	"go-formrelay-backend/pkg/validation"
)

const (
	purposeContact    = "contact_form"
	purposeNewsletter = "newsletter"

	formContact    = "contact"
	formNewsletter = "newsletter"
)

// GenerateToken returns 32 random bytes, hex encoded.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// cooldownGate wraps the limiter for one form.
type cooldownGate struct {
	limiter  *ratelimit.Limiter
	purpose  string
	form     string
	verb     string
	cooldown time.Duration
	secLog   *security.SecurityLogger
}

func (g *cooldownGate) key(meta domain.SubmissionMeta) string {
	return ratelimit.Key(meta.SessionID, g.purpose, meta.ClientIP)
}

// check rejects a submission that arrives inside the cooldown window. Store
// failures let the submission through.
func (g *cooldownGate) check(ctx context.Context, meta domain.SubmissionMeta, now time.Time) error {
	if g.limiter == nil || g.cooldown <= 0 {
		return nil
	}
	d, err := g.limiter.Check(ctx, g.key(meta), g.cooldown, now)
	if err != nil {
		logger.Log.Warn("Rate limit store unavailable", "form", g.form, "error", err)
	}
	if d.Allowed {
		return nil
	}
	g.secLog.LogRateLimitTriggered(ctx, g.form, meta.ClientIP, meta.UserAgent, meta.RequestID, d.RetryAfter)
	return domain.RateLimited(d.RetryAfter, g.verb)
}

func (g *cooldownGate) record(ctx context.Context, meta domain.SubmissionMeta, now time.Time) {
	if g.limiter == nil {
		return
	}
	if err := g.limiter.Record(ctx, g.key(meta), now); err != nil {
		logger.Log.Warn("Failed to record submission time", "form", g.form, "error", err)
	}
}

// logRejection reports a validation failure. Spam goes to the security log,
// everything else is debug noise.
func logRejection(ctx context.Context, secLog *security.SecurityLogger, form, email string, meta domain.SubmissionMeta, err error) {
	subErr, ok := domain.AsSubmissionError(err)
	if !ok {
		logger.Log.Error("Validation aborted", "form", form, "request_id", meta.RequestID, "error", err)
		return
	}

	switch subErr.Kind {
	case domain.KindSpamDetected:
		event := security.EventSpamDetected
		reason := subErr.Message
		if validation.IsHoneypot(err) {
			event = security.EventHoneypotTriggered
			reason = "honeypot field filled"
		} else if subErr.Err != nil {
			reason = subErr.Err.Error()
		}
		secLog.LogSpam(ctx, event, form, email, meta.ClientIP, meta.RequestID, reason)
	default:
		logger.Log.Debug("Submission rejected",
			"form", form,
			"kind", subErr.Kind,
			"field", subErr.Field,
			"request_id", meta.RequestID,
		)
	}
}

func orNop(l *security.SecurityLogger) *security.SecurityLogger {
	if l == nil {
		return security.Nop()
	}
	return l
}

func orNow(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
