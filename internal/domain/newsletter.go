package domain

import (
	"context"
	"time"
)

// NewsletterRequest represents a newsletter signup
type NewsletterRequest struct {
	Email   string `form:"email" json:"email"`
	Website string `form:"website" json:"website"`

	Meta SubmissionMeta `form:"-" json:"-"`
}

// ValidatedSubscription is produced by the validator once the email passed
// every rule. SubscriptionToken is 64 hex characters.
type ValidatedSubscription struct {
	Email             string
	SubscriptionToken string
}

type SubscriberStatus string

const (
	SubscriberPending      SubscriberStatus = "pending"
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

// SubscriberRecord is a row in the subscriber table.
type SubscriberRecord struct {
	Email             string           `json:"email"`
	IPAddress         string           `json:"ip_address"`
	SubscriptionToken string           `json:"subscription_token"`
	SubscribedAt      time.Time        `json:"subscribed_at"`
	Status            SubscriberStatus `json:"status"`
}

// SubscriberRepository persists newsletter subscribers.
type SubscriberRepository interface {
	// ExistsWithStatus reports whether email has a record in one of statuses.
	ExistsWithStatus(ctx context.Context, email string, statuses ...SubscriberStatus) (bool, error)
	// InsertIfAbsent stores record unless a pending or active record exists.
	// An unsubscribed record is replaced. Reports whether a row was written.
	InsertIfAbsent(ctx context.Context, record *SubscriberRecord) (bool, error)
	// EnsureSchema creates the subscriber table when missing.
	EnsureSchema(ctx context.Context) error
}

// NewsletterUsecase defines the interface for newsletter signups
type NewsletterUsecase interface {
	Subscribe(ctx context.Context, req *NewsletterRequest) (*SubmissionResult, error)
}
