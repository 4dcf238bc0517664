package domain

import "context"

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
	Phone   string `form:"phone" json:"phone"`
	Company string `form:"company" json:"company"`
	// Website is the honeypot field and must stay empty.
	Website string `form:"website" json:"website"`

	Meta SubmissionMeta `form:"-" json:"-"`
}

// ValidatedContact holds sanitized contact fields. Only the validator
// constructs it, after every rule has passed.
type ValidatedContact struct {
	Name    string
	Email   string
	Subject string
	Message string
	Phone   string
	Company string
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates the request and sends it to the receiving address
	Submit(ctx context.Context, req *ContactRequest) (*SubmissionResult, error)
}
