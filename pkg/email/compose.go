package email

import (
	"bytes"
	"fmt"
	"html"
	htmltemplate "html/template"
	"net/mail"
	"strings"
	texttemplate "text/template"
	"time"
)

// TimestampLayout renders submission times in message bodies.
const TimestampLayout = "January 2, 2006, 3:04 pm MST"

var (
	contactHTML      = htmltemplate.Must(htmltemplate.New("contact.html").Parse(contactHTMLTemplate))
	contactText      = texttemplate.Must(texttemplate.New("contact.txt").Parse(contactTextTemplate))
	confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation.html").Parse(confirmationHTMLTemplate))
	confirmationText = texttemplate.Must(texttemplate.New("confirmation.txt").Parse(confirmationTextTemplate))
	adminHTML        = htmltemplate.Must(htmltemplate.New("admin.html").Parse(adminHTMLTemplate))
	adminText        = texttemplate.Must(texttemplate.New("admin.txt").Parse(adminTextTemplate))
)

// ContactEmailData holds a validated contact submission. Name, Subject,
// Message, Phone and Company are already entity-encoded.
type ContactEmailData struct {
	To          string
	Name        string
	Email       string
	Subject     string
	Message     string
	Phone       string
	Company     string
	ClientIP    string
	SubmittedAt time.Time
}

// ConfirmationEmailData is the welcome message for a new subscriber.
// ConfirmationLink is empty unless double opt-in is enabled.
type ConfirmationEmailData struct {
	Email            string
	ConfirmationLink string
	ContactEmail     string
	SubmittedAt      time.Time
}

// AdminNotificationData tells the newsletter inbox about a new subscriber.
type AdminNotificationData struct {
	To          string
	Email       string
	ClientIP    string
	UserAgent   string
	SubmittedAt time.Time
}

type contactView struct {
	Company      string
	Year         int
	Submitted    string
	Email        string
	ClientIP     string
	Name         htmltemplate.HTML
	Subject      htmltemplate.HTML
	Message      htmltemplate.HTML
	Phone        htmltemplate.HTML
	Organization htmltemplate.HTML
}

// ComposeContact renders the contact notification. The result depends only on
// its arguments.
func ComposeContact(meta CompanyMeta, d ContactEmailData) (*Message, error) {
	view := contactView{
		Company:   meta.Name,
		Year:      d.SubmittedAt.Year(),
		Submitted: d.SubmittedAt.Format(TimestampLayout),
		Email:     d.Email,
		ClientIP:  d.ClientIP,
		// Pre-encoded values must not be escaped a second time.
		Name:         htmltemplate.HTML(d.Name),
		Subject:      htmltemplate.HTML(d.Subject),
		Message:      htmltemplate.HTML(nl2br(d.Message)),
		Phone:        htmltemplate.HTML(d.Phone),
		Organization: htmltemplate.HTML(d.Company),
	}

	htmlBody, err := renderHTML(contactHTML, view)
	if err != nil {
		return nil, err
	}

	textView := view
	textView.Message = htmltemplate.HTML(normalizeNewlines(d.Message))
	textBody, err := renderText(contactText, textView)
	if err != nil {
		return nil, err
	}

	return &Message{
		From: meta.from(),
		To:   []string{d.To},
		// Header display names are not HTML, so decode the entities here;
		// mail.Address handles header encoding.
		ReplyTo:  &mail.Address{Name: html.UnescapeString(d.Name), Address: d.Email},
		Subject:  headerValue("[Contact Form] " + html.UnescapeString(d.Subject)),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

type confirmationView struct {
	Company          string
	PostalAddress    string
	Year             int
	Email            string
	ContactEmail     string
	ConfirmationLink string
}

// ComposeConfirmation renders the welcome message sent to a subscriber.
func ComposeConfirmation(meta CompanyMeta, d ConfirmationEmailData) (*Message, error) {
	view := confirmationView{
		Company:          meta.Name,
		PostalAddress:    meta.Address,
		Year:             d.SubmittedAt.Year(),
		Email:            d.Email,
		ContactEmail:     d.ContactEmail,
		ConfirmationLink: d.ConfirmationLink,
	}

	htmlBody, err := renderHTML(confirmationHTML, view)
	if err != nil {
		return nil, err
	}
	textBody, err := renderText(confirmationText, view)
	if err != nil {
		return nil, err
	}

	replyTo := &mail.Address{Address: d.ContactEmail}
	return &Message{
		From:     meta.from(),
		To:       []string{d.Email},
		ReplyTo:  replyTo,
		Subject:  headerValue(fmt.Sprintf("Welcome to %s Newsletter!", meta.Name)),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

type adminView struct {
	Email     string
	ClientIP  string
	UserAgent string
	Submitted string
}

// ComposeAdminNotification renders the new-subscriber notice.
func ComposeAdminNotification(meta CompanyMeta, d AdminNotificationData) (*Message, error) {
	userAgent := d.UserAgent
	if userAgent == "" {
		userAgent = "Unknown"
	}
	view := adminView{
		Email:     d.Email,
		ClientIP:  d.ClientIP,
		UserAgent: userAgent,
		Submitted: d.SubmittedAt.Format(TimestampLayout),
	}

	htmlBody, err := renderHTML(adminHTML, view)
	if err != nil {
		return nil, err
	}
	textBody, err := renderText(adminText, view)
	if err != nil {
		return nil, err
	}

	from := meta.from()
	return &Message{
		From:     from,
		To:       []string{d.To},
		ReplyTo:  &mail.Address{Address: from.Address},
		Subject:  "New Newsletter Subscription",
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

func renderHTML(tmpl *htmltemplate.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func renderText(tmpl *texttemplate.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// nl2br turns line breaks into <br> while keeping the newline for readability.
func nl2br(s string) string {
	return strings.ReplaceAll(normalizeNewlines(s), "\n", "<br>\n")
}
