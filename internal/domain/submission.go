package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a submission was rejected.
type ErrorKind string

const (
	KindMethodNotAllowed      ErrorKind = "method_not_allowed"
	KindRateLimited           ErrorKind = "rate_limited"
	KindMissingField          ErrorKind = "missing_field"
	KindInvalidField          ErrorKind = "invalid_field"
	KindSpamDetected          ErrorKind = "spam_detected"
	KindDuplicateSubscription ErrorKind = "duplicate_subscription"
	KindDispatchFailure       ErrorKind = "dispatch_failure"
)

// SubmissionError is the single failure shape of both pipelines. Message is
// shown to the submitter verbatim and never carries internal details.
type SubmissionError struct {
	Kind       ErrorKind
	Field      string
	Message    string
	RetryAfter int
	Err        error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// AsSubmissionError unwraps err into a *SubmissionError when possible.
func AsSubmissionError(err error) (*SubmissionError, bool) {
	var subErr *SubmissionError
	if errors.As(err, &subErr) {
		return subErr, true
	}
	return nil, false
}

func MissingField(field, message string) *SubmissionError {
	return &SubmissionError{Kind: KindMissingField, Field: field, Message: message}
}

func InvalidField(field, message string) *SubmissionError {
	return &SubmissionError{Kind: KindInvalidField, Field: field, Message: message}
}

func SpamDetected(message string) *SubmissionError {
	return &SubmissionError{Kind: KindSpamDetected, Message: message}
}

func RateLimited(retryAfter int, verb string) *SubmissionError {
	return &SubmissionError{
		Kind:       KindRateLimited,
		RetryAfter: retryAfter,
		Message:    fmt.Sprintf("Please wait %d seconds before %s again.", retryAfter, verb),
	}
}

func DuplicateSubscription() *SubmissionError {
	return &SubmissionError{
		Kind:    KindDuplicateSubscription,
		Field:   "email",
		Message: "This email is already subscribed to our newsletter.",
	}
}

func DispatchFailure(message string, err error) *SubmissionError {
	return &SubmissionError{Kind: KindDispatchFailure, Message: message, Err: err}
}

// SubmissionMeta describes the request a submission arrived with.
type SubmissionMeta struct {
	ClientIP  string
	SessionID string
	UserAgent string
	// BaseURL is scheme://host of the request, used for links in emails.
	BaseURL   string
	RequestID string
}

// SubmissionResult is returned on success.
type SubmissionResult struct {
	Message string
}
