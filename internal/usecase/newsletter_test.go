package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"go-formrelay-backend/internal/domain"
	"go-formrelay-backend/internal/usecase"
	"go-formrelay-backend/pkg/email"
	"go-formrelay-backend/pkg/submissionlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var activeOrPending = []domain.SubscriberStatus{domain.SubscriberPending, domain.SubscriberActive}

func newsletterRequest(session, addr string) *domain.NewsletterRequest {
	return &domain.NewsletterRequest{Email: addr, Meta: meta(session)}
}

func newsletterConfig(c *clock) usecase.NewsletterConfig {
	return usecase.NewsletterConfig{
		ReceivingEmail:    "newsletter@nexgensolutions.com",
		Cooldown:          30 * time.Second,
		AdminNotification: true,
		SendConfirmation:  true,
		Company:           company,
		Now:               c.Now,
	}
}

func sentTo(addr string) interface{} {
	return mock.MatchedBy(func(msg *email.Message) bool {
		return len(msg.To) == 1 && msg.To[0] == addr
	})
}

func TestSubscribeSendsConfirmationAndNotification(t *testing.T) {
	c := newClock()
	transport := new(MockTransport)
	logDir := t.TempDir()
	uc := usecase.NewNewsletterUsecase(newLimiter(t), nil, transport, nil, submissionlog.New(logDir), newsletterConfig(c))

	transport.On("Send", mock.Anything, mock.MatchedBy(func(msg *email.Message) bool {
		return msg.To[0] == "reader@example.com" &&
			msg.Subject == "Welcome to NexGen Solutions Newsletter!" &&
			msg.ReplyTo.Address == "newsletter@nexgensolutions.com"
	})).Return(nil).Once()
	transport.On("Send", mock.Anything, mock.MatchedBy(func(msg *email.Message) bool {
		return msg.To[0] == "newsletter@nexgensolutions.com" &&
			msg.Subject == "New Newsletter Subscription"
	})).Return(nil).Once()

	res, err := uc.Subscribe(context.Background(), newsletterRequest("s1", "reader@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Thank you for subscribing! You will receive our latest updates and insights.", res.Message)
	transport.AssertExpectations(t)

	data, err := os.ReadFile(filepath.Join(logDir, "newsletter_subscriptions_2026-03.log"))
	require.NoError(t, err)
	assert.Equal(t, "[2026-03-14 09:30:00] Email: reader@example.com | IP: 203.0.113.7\n", string(data))
}

func TestSubscribeDoubleOptIn(t *testing.T) {
	c := newClock()
	cfg := newsletterConfig(c)
	cfg.RequireDoubleOptIn = true
	cfg.AdminNotification = false

	transport := new(MockTransport)
	repo := new(MockSubscriberRepo)
	uc := usecase.NewNewsletterUsecase(newLimiter(t), repo, transport, nil, nil, cfg)

	var sent *email.Message
	transport.On("Send", mock.Anything, sentTo("reader@example.com")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(*email.Message) }).
		Return(nil).Once()
	repo.On("ExistsWithStatus", mock.Anything, "reader@example.com", activeOrPending).Return(false, nil)

	var stored *domain.SubscriberRecord
	repo.On("InsertIfAbsent", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.SubscriberRecord) }).
		Return(true, nil)

	res, err := uc.Subscribe(context.Background(), newsletterRequest("s1", "reader@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Thank you for subscribing! Please check your email to confirm your subscription.", res.Message)

	require.NotNil(t, stored)
	assert.Equal(t, domain.SubscriberPending, stored.Status)
	assert.Equal(t, "203.0.113.7", stored.IPAddress)
	assert.Equal(t, c.Now(), stored.SubscribedAt)

	require.NotNil(t, sent)
	link := regexp.MustCompile(`https://forms\.example\.com/confirm-subscription\?token=([0-9a-f]{64})`).FindStringSubmatch(sent.TextBody)
	require.Len(t, link, 2)
	assert.Equal(t, stored.SubscriptionToken, link[1])
}

func TestSubscribeUsesPublicBaseURL(t *testing.T) {
	c := newClock()
	cfg := newsletterConfig(c)
	cfg.RequireDoubleOptIn = true
	cfg.AdminNotification = false
	cfg.PublicBaseURL = "https://www.nexgensolutions.com/"

	transport := new(MockTransport)
	uc := usecase.NewNewsletterUsecase(newLimiter(t), nil, transport, nil, nil, cfg)

	transport.On("Send", mock.Anything, mock.MatchedBy(func(msg *email.Message) bool {
		return regexp.MustCompile(`https://www\.nexgensolutions\.com/confirm-subscription\?token=`).MatchString(msg.TextBody)
	})).Return(nil).Once()

	_, err := uc.Subscribe(context.Background(), newsletterRequest("s1", "reader@example.com"))
	require.NoError(t, err)
	transport.AssertExpectations(t)
}

func TestSubscribeConfirmationFailure(t *testing.T) {
	c := newClock()
	transport := new(MockTransport)
	repo := new(MockSubscriberRepo)
	uc := usecase.NewNewsletterUsecase(newLimiter(t), repo, transport, nil, nil, newsletterConfig(c))

	repo.On("ExistsWithStatus", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	transport.On("Send", mock.Anything, sentTo("reader@example.com")).Return(errors.New("smtp down")).Once()

	_, err := uc.Subscribe(context.Background(), newsletterRequest("s1", "reader@example.com"))
	subErr := requireKind(t, err, domain.KindDispatchFailure)
	assert.Equal(t, "Failed to send confirmation email. Please try again later.", subErr.Message)

	repo.AssertNotCalled(t, "InsertIfAbsent", mock.Anything, mock.Anything)
	transport.AssertNumberOfCalls(t, "Send", 1)

	// No cooldown after a failed dispatch.
	transport.On("Send", mock.Anything, mock.Anything).Return(nil)
	repo.On("InsertIfAbsent", mock.Anything, mock.Anything).Return(true, nil)
	_, err = uc.Subscribe(context.Background(), newsletterRequest("s1", "reader@example.com"))
	assert.NoError(t, err)
}

func TestSubscribeAdminFailureIsSwallowed(t *testing.T) {
	c := newClock()
	transport := new(MockTransport)
	uc := usecase.NewNewsletterUsecase(newLimiter(t), nil, transport, nil, nil, newsletterConfig(c))

	transport.On("Send", mock.Anything, sentTo("reader@example.com")).Return(nil).Once()
	transport.On("Send", mock.Anything, sentTo("newsletter@nexgensolutions.com")).Return(errors.New("quota")).Once()

	res, err := uc.Subscribe(context.Background(), newsletterRequest("s1", "reader@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Thank you for subscribing! You will receive our latest updates and insights.", res.Message)
	transport.AssertExpectations(t)
}

func TestSubscribeDuplicate(t *testing.T) {
	c := newClock()
	secLog, logs := observedSecurityLogger()
	transport := new(MockTransport)
	repo := new(MockSubscriberRepo)
	uc := usecase.NewNewsletterUsecase(newLimiter(t), repo, transport, secLog, nil, newsletterConfig(c))

	repo.On("ExistsWithStatus", mock.Anything, "reader@example.com", activeOrPending).Return(true, nil)

	_, err := uc.Subscribe(context.Background(), newsletterRequest("s1", "Reader@Example.com"))
	subErr := requireKind(t, err, domain.KindDuplicateSubscription)
	assert.Equal(t, "This email is already subscribed to our newsletter.", subErr.Message)

	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "InsertIfAbsent", mock.Anything, mock.Anything)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "duplicate_subscription", logs.All()[0].Message)
}

func TestSubscribeRepositoryErrorsAreSwallowed(t *testing.T) {
	c := newClock()
	cfg := newsletterConfig(c)
	cfg.SendConfirmation = false
	cfg.AdminNotification = false

	transport := new(MockTransport)
	repo := new(MockSubscriberRepo)
	uc := usecase.NewNewsletterUsecase(newLimiter(t), repo, transport, nil, nil, cfg)

	repo.On("ExistsWithStatus", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("db down"))
	repo.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(rec *domain.SubscriberRecord) bool {
		return rec.Status == domain.SubscriberActive && len(rec.SubscriptionToken) == 64
	})).Return(false, errors.New("db down"))

	res, err := uc.Subscribe(context.Background(), newsletterRequest("s1", "reader@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Thank you for subscribing! You will receive our latest updates and insights.", res.Message)
	repo.AssertExpectations(t)
	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubscribeCooldown(t *testing.T) {
	c := newClock()
	transport := new(MockTransport)
	uc := usecase.NewNewsletterUsecase(newLimiter(t), nil, transport, nil, nil, newsletterConfig(c))
	transport.On("Send", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Subscribe(context.Background(), newsletterRequest("s1", "reader@example.com"))
	require.NoError(t, err)

	_, err = uc.Subscribe(context.Background(), newsletterRequest("s1", "other@example.com"))
	subErr := requireKind(t, err, domain.KindRateLimited)
	assert.Equal(t, "Please wait 30 seconds before subscribing again.", subErr.Message)
	assert.Equal(t, 30, subErr.RetryAfter)

	c.Advance(30 * time.Second)
	_, err = uc.Subscribe(context.Background(), newsletterRequest("s1", "other@example.com"))
	assert.NoError(t, err)
}

func TestSubscribeRejectsDisposableAndHoneypot(t *testing.T) {
	c := newClock()
	transport := new(MockTransport)
	uc := usecase.NewNewsletterUsecase(newLimiter(t), nil, transport, nil, nil, newsletterConfig(c))

	_, err := uc.Subscribe(context.Background(), newsletterRequest("s1", "bot@guerrillamail.com"))
	subErr := requireKind(t, err, domain.KindSpamDetected)
	assert.Equal(t, "Disposable email addresses are not allowed.", subErr.Message)

	req := newsletterRequest("s1", "reader@example.com")
	req.Website = "filled"
	_, err = uc.Subscribe(context.Background(), req)
	subErr = requireKind(t, err, domain.KindSpamDetected)
	assert.Equal(t, "Spam detected.", subErr.Message)

	transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
