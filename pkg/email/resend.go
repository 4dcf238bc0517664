package email

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
)

// resendSender is the subset of the Resend emails service used here.
type resendSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendTransport sends through the Resend HTTP API.
type ResendTransport struct {
	emails resendSender
}

func NewResendTransport(apiKey string) *ResendTransport {
	client := resend.NewClient(apiKey)
	return &ResendTransport{emails: client.Emails}
}

func (t *ResendTransport) Name() string { return "resend" }

func (t *ResendTransport) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	headers := map[string]string{
		"X-Entity-Ref-ID": uuid.New().String(),
	}
	for k, v := range msg.Headers {
		headers[k] = headerValue(v)
	}

	params := &resend.SendEmailRequest{
		From:    msg.From.String(),
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTMLBody,
		Text:    msg.TextBody,
		Headers: headers,
	}
	if msg.ReplyTo != nil {
		params.ReplyTo = msg.ReplyTo.String()
	}

	if _, err := t.emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
