package email

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// SendmailTransport pipes messages to the local mail agent.
type SendmailTransport struct {
	path string
	now  func() time.Time
}

func NewSendmailTransport(path string) *SendmailTransport {
	return &SendmailTransport{path: path, now: time.Now}
}

func (t *SendmailTransport) Name() string { return "sendmail" }

func (t *SendmailTransport) Send(ctx context.Context, msg *Message) error {
	raw, err := BuildMIME(msg, t.now(), "")
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	// -t reads recipients from the headers, -i keeps lone dots in the body.
	cmd := exec.CommandContext(ctx, t.path, "-t", "-i", "-f", msg.From.Address)
	cmd.Stdin = bytes.NewReader(raw)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sendmail failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
