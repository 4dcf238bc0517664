package email

import (
	"context"
	"log/slog"
	"strings"
)

// LogTransport records messages in the application log instead of sending
// them. Meant for local development.
type LogTransport struct {
	log *slog.Logger
}

func NewLogTransport(log *slog.Logger) *LogTransport {
	return &LogTransport{log: log}
}

func (t *LogTransport) Name() string { return "log" }

func (t *LogTransport) Send(ctx context.Context, msg *Message) error {
	replyTo := ""
	if msg.ReplyTo != nil {
		replyTo = msg.ReplyTo.String()
	}
	t.log.InfoContext(ctx, "Email not sent (log transport)",
		"from", msg.From.String(),
		"to", strings.Join(msg.To, ", "),
		"reply_to", replyTo,
		"subject", msg.Subject,
		"text_bytes", len(msg.TextBody),
		"html_bytes", len(msg.HTMLBody),
	)
	return nil
}
