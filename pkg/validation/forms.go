package validation

import (
	"fmt"
	"strings"

	"go-formrelay-backend/internal/domain"
)

// HoneypotField is the form field that must stay empty.
const HoneypotField = "website"

const msgSpam = "Spam detected."

// ContactRules validates contact submissions. The zero value uses the
// default keyword list and a 5000 character message limit.
type ContactRules struct {
	MaxMessageLength int
	Keywords         *KeywordDenylist
}

// Validate runs the contact rules in order and stops at the first failure.
// The returned error is always a *domain.SubmissionError.
func (r ContactRules) Validate(req *domain.ContactRequest) (*domain.ValidatedContact, error) {
	if req.Website != "" {
		return nil, honeypotHit()
	}

	required := []struct{ field, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
	}
	for _, f := range required {
		if IsBlank(f.value) {
			return nil, domain.MissingField(f.field, "Please fill in all required fields. Missing: "+f.field)
		}
	}

	v := &domain.ValidatedContact{
		Name:    SanitizeText(req.Name),
		Email:   SanitizeEmail(req.Email),
		Subject: SanitizeText(req.Subject),
		Message: SanitizeText(req.Message),
		Phone:   SanitizeText(req.Phone),
		Company: SanitizeText(req.Company),
	}

	if !LengthBetween(v.Name, 2, 100) {
		return nil, domain.InvalidField("name", "Name must be between 2 and 100 characters.")
	}
	if !IsEmail(v.Email) {
		return nil, domain.InvalidField("email", "Please provide a valid email address.")
	}
	if !LengthBetween(v.Subject, 3, 200) {
		return nil, domain.InvalidField("subject", "Subject must be between 3 and 200 characters.")
	}
	if Length(v.Message) < 10 {
		return nil, domain.InvalidField("message", "Message must be at least 10 characters long.")
	}
	maxLen := r.maxMessageLength()
	if Length(v.Message) > maxLen {
		return nil, domain.InvalidField("message", fmt.Sprintf("Message is too long. Maximum %d characters allowed.", maxLen))
	}

	keywords := r.Keywords
	if keywords == nil {
		keywords = NewKeywordDenylist(DefaultSpamKeywords...)
	}
	if kw, hit := keywords.Match(v.Message + " " + v.Subject); hit {
		err := domain.SpamDetected("Your message contains prohibited content.")
		err.Err = fmt.Errorf("keyword %q", kw)
		return nil, err
	}

	return v, nil
}

func (r ContactRules) maxMessageLength() int {
	if r.MaxMessageLength > 0 {
		return r.MaxMessageLength
	}
	return 5000
}

// NewsletterRules validates newsletter signups. NewToken supplies the
// subscription token of an accepted signup.
type NewsletterRules struct {
	Disposable *DomainDenylist
	NewToken   func() (string, error)
}

// Validate runs the newsletter rules in order and stops at the first failure.
func (r NewsletterRules) Validate(req *domain.NewsletterRequest) (*domain.ValidatedSubscription, error) {
	if req.Website != "" {
		return nil, honeypotHit()
	}
	if IsBlank(req.Email) {
		return nil, domain.MissingField("email", "Please provide an email address.")
	}

	email := SanitizeEmail(req.Email)
	if !IsEmail(email) {
		return nil, domain.InvalidField("email", "Please provide a valid email address.")
	}

	disposable := r.Disposable
	if disposable == nil {
		disposable = NewDomainDenylist(DefaultDisposableDomains...)
	}
	if disposable.Contains(email) {
		err := domain.SpamDetected("Disposable email addresses are not allowed.")
		err.Field = "email"
		err.Err = fmt.Errorf("disposable domain %q", EmailDomain(email))
		return nil, err
	}

	sub := &domain.ValidatedSubscription{Email: strings.ToLower(email)}
	if r.NewToken != nil {
		token, err := r.NewToken()
		if err != nil {
			return nil, fmt.Errorf("generate subscription token: %w", err)
		}
		sub.SubscriptionToken = token
	}
	return sub, nil
}

func honeypotHit() *domain.SubmissionError {
	err := domain.SpamDetected(msgSpam)
	err.Field = HoneypotField
	return err
}

// IsHoneypot reports whether err was raised by the honeypot field.
func IsHoneypot(err error) bool {
	subErr, ok := domain.AsSubmissionError(err)
	return ok && subErr.Kind == domain.KindSpamDetected && subErr.Field == HoneypotField
}
