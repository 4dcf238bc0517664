package email

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"sort"
	"strings"
	"time"
)

// BuildMIME encodes msg as a multipart/alternative message with the plain
// text part first. A non-empty boundary is used as-is, otherwise one is
// generated.
func BuildMIME(msg *Message, date time.Time, boundary string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if boundary != "" {
		if err := mw.SetBoundary(boundary); err != nil {
			return nil, fmt.Errorf("invalid boundary: %w", err)
		}
	}

	if err := writePart(mw, "text/plain; charset=UTF-8", msg.TextBody); err != nil {
		return nil, err
	}
	if err := writePart(mw, "text/html; charset=UTF-8", msg.HTMLBody); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	writeHeader(&out, "From", msg.From.String())
	writeHeader(&out, "To", strings.Join(msg.To, ", "))
	if msg.ReplyTo != nil {
		writeHeader(&out, "Reply-To", msg.ReplyTo.String())
	}
	writeHeader(&out, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&out, "Date", date.Format(time.RFC1123Z))
	writeHeader(&out, "MIME-Version", "1.0")
	writeHeader(&out, "Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()))

	keys := make([]string, 0, len(msg.Headers))
	for k := range msg.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeHeader(&out, textproto.CanonicalMIMEHeaderKey(headerValue(k)), msg.Headers[k])
	}

	out.WriteString("\r\n")
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

func writeHeader(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s: %s\r\n", key, headerValue(value))
}

func writePart(mw *multipart.Writer, contentType, content string) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	h.Set("Content-Transfer-Encoding", "quoted-printable")
	pw, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", contentType, err)
	}
	qw := quotedprintable.NewWriter(pw)
	if _, err := qw.Write([]byte(content)); err != nil {
		return err
	}
	return qw.Close()
}
