package email

import (
	"context"
	"net/mail"
	"strings"
)

// Message is a composed email ready for a transport. Transports decide how to
// encode it on the wire.
type Message struct {
	From     mail.Address
	To       []string
	ReplyTo  *mail.Address
	Subject  string
	HTMLBody string
	TextBody string
	// Headers are extra headers added by the caller.
	Headers map[string]string
}

// Transport hands a message to an outbound mail system.
type Transport interface {
	Send(ctx context.Context, msg *Message) error
	Name() string
}

// CompanyMeta identifies the sender in every message.
type CompanyMeta struct {
	Name      string
	FromEmail string
	Address   string
}

func (m CompanyMeta) from() mail.Address {
	return mail.Address{Name: m.Name, Address: m.FromEmail}
}

// headerValue removes characters that would end a header line.
func headerValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return -1
		}
		return r
	}, s)
}
