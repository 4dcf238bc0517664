package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"strings"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-formrelay-backend/config"
)

func composed(t *testing.T) *Message {
	t.Helper()
	msg, err := ComposeContact(testMeta, sampleContact())
	require.NoError(t, err)
	return msg
}

func TestBuildMIME(t *testing.T) {
	msg := composed(t)
	msg.Headers = map[string]string{"X-Form": "contact\r\nBcc: evil@example.com"}

	raw, err := BuildMIME(msg, testTime, "fixedboundary")
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "contact@nexgen.test", parsed.Header.Get("To"))
	assert.Empty(t, parsed.Header.Get("Bcc"))
	assert.Equal(t, "contactBcc: evil@example.com", parsed.Header.Get("X-Form"))

	replyTo, err := parsed.Header.AddressList("Reply-To")
	require.NoError(t, err)
	require.Len(t, replyTo, 1)
	assert.Equal(t, "jane@example.com", replyTo[0].Address)
	assert.Equal(t, "Jane & Co", replyTo[0].Name)

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "[Contact Form] Quote for <project>", subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)
	assert.Equal(t, "fixedboundary", params["boundary"])

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	var types, bodies []string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		// NextPart decodes quoted-printable transparently.
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		types = append(types, part.Header.Get("Content-Type"))
		bodies = append(bodies, strings.ReplaceAll(string(content), "\r\n", "\n"))
	}
	assert.Equal(t, []string{"text/plain; charset=UTF-8", "text/html; charset=UTF-8"}, types)
	assert.Equal(t, []string{msg.TextBody, msg.HTMLBody}, bodies)
}

func TestBuildMIMEDeterministicWithBoundary(t *testing.T) {
	a, err := BuildMIME(composed(t), testTime, "b1")
	require.NoError(t, err)
	b, err := BuildMIME(composed(t), testTime, "b1")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSMTPTransport(t *testing.T) {
	tr := NewSMTPTransport(SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "user", Password: "pass"})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotAuth smtp.Auth
	tr.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo = addr, a, from, to
		return nil
	}

	require.NoError(t, tr.Send(context.Background(), composed(t)))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "noreply@nexgen.test", gotFrom)
	assert.Equal(t, []string{"contact@nexgen.test"}, gotTo)
	assert.NotNil(t, gotAuth)

	tr.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("421 try later") }
	assert.ErrorContains(t, tr.Send(context.Background(), composed(t)), "421")
}

func TestSMTPTransportNotConfigured(t *testing.T) {
	tr := NewSMTPTransport(SMTPConfig{})
	assert.False(t, tr.IsConfigured())
	assert.Error(t, tr.Send(context.Background(), composed(t)))
}

type fakeResend struct {
	got *resend.SendEmailRequest
	err error
}

func (f *fakeResend) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "em_123"}, nil
}

func TestResendTransport(t *testing.T) {
	fake := &fakeResend{}
	tr := &ResendTransport{emails: fake}

	msg := composed(t)
	require.NoError(t, tr.Send(context.Background(), msg))
	require.NotNil(t, fake.got)
	assert.Equal(t, msg.To, fake.got.To)
	assert.Equal(t, msg.HTMLBody, fake.got.Html)
	assert.Equal(t, msg.TextBody, fake.got.Text)
	assert.Contains(t, fake.got.ReplyTo, "jane@example.com")
	assert.NotEmpty(t, fake.got.Headers["X-Entity-Ref-ID"])

	fake.err = errors.New("rate limited")
	assert.Error(t, tr.Send(context.Background(), msg))
}

func TestLogTransport(t *testing.T) {
	var buf bytes.Buffer
	tr := NewLogTransport(slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, tr.Send(context.Background(), composed(t)))
	assert.Contains(t, buf.String(), "contact@nexgen.test")
}

func TestNewTransport(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.Mail.Transport = config.TransportLog
	tr, err := NewTransport(cfg, log)
	require.NoError(t, err)
	assert.Equal(t, "log", tr.Name())

	cfg.Mail.Transport = config.TransportSendmail
	cfg.Mail.SendmailPath = "/usr/sbin/sendmail"
	tr, err = NewTransport(cfg, log)
	require.NoError(t, err)
	assert.Equal(t, "sendmail", tr.Name())

	cfg.Mail.Transport = config.TransportSMTP
	_, err = NewTransport(cfg, log)
	assert.Error(t, err)

	cfg.SMTP.Host, cfg.SMTP.Port = "smtp.example.com", "587"
	tr, err = NewTransport(cfg, log)
	require.NoError(t, err)
	assert.Equal(t, "smtp", tr.Name())

	cfg.Mail.Transport = config.TransportResend
	_, err = NewTransport(cfg, log)
	assert.Error(t, err)

	cfg.Mail.ResendAPIKey = "re_test"
	tr, err = NewTransport(cfg, log)
	require.NoError(t, err)
	assert.Equal(t, "resend", tr.Name())
}
