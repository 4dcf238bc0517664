package email

// contactHTMLTemplate is the HTML body sent to the contact inbox. Form values
// arrive entity-encoded and are inserted as-is.
const contactHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2c3e50; color: white; padding: 20px; text-align: center; }
        .content { background-color: #f9f9f9; padding: 20px; border: 1px solid #ddd; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #2c3e50; }
        .value { margin-top: 5px; padding: 10px; background-color: white; border-left: 3px solid #3498db; }
        .footer { text-align: center; padding: 20px; font-size: 12px; color: #777; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2>{{.Company}}</h2>
            <p>New Contact Form Submission</p>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Name:</div>
                <div class="value">{{.Name}}</div>
            </div>
            <div class="field">
                <div class="label">Email:</div>
                <div class="value"><a href="mailto:{{.Email}}">{{.Email}}</a></div>
            </div>
{{- if .Phone}}
            <div class="field">
                <div class="label">Phone:</div>
                <div class="value">{{.Phone}}</div>
            </div>
{{- end}}
{{- if .Organization}}
            <div class="field">
                <div class="label">Company:</div>
                <div class="value">{{.Organization}}</div>
            </div>
{{- end}}
            <div class="field">
                <div class="label">Subject:</div>
                <div class="value">{{.Subject}}</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="value">{{.Message}}</div>
            </div>
            <div class="field">
                <div class="label">Submitted:</div>
                <div class="value">{{.Submitted}}</div>
            </div>
            <div class="field">
                <div class="label">IP Address:</div>
                <div class="value">{{.ClientIP}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This email was sent from the contact form on your website.</p>
            <p>&copy; {{.Year}} {{.Company}}. All rights reserved.</p>
        </div>
    </div>
</body>
</html>
`

const contactTextTemplate = `New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
{{if .Phone}}Phone: {{.Phone}}
{{end}}{{if .Organization}}Company: {{.Organization}}
{{end}}Subject: {{.Subject}}

Message:
{{.Message}}

Submitted: {{.Submitted}}
IP Address: {{.ClientIP}}
`

const confirmationHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f4f4f4; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 20px auto; background-color: white; border-radius: 8px; overflow: hidden; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 40px 20px; text-align: center; }
        .content { padding: 40px 30px; }
        .button { display: inline-block; padding: 15px 30px; background-color: #667eea; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0; font-weight: bold; }
        .benefits { background-color: #f9f9f9; padding: 20px; border-radius: 5px; margin: 20px 0; }
        .footer { background-color: #2c3e50; color: #bbb; padding: 20px; text-align: center; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Welcome to {{.Company}}!</h1>
        </div>
        <div class="content">
            <h2>Thank you for subscribing!</h2>
            <p>We're excited to have you join our community.</p>
{{- if .ConfirmationLink}}
            <p>To complete your subscription, please confirm your email address by clicking the button below:</p>
            <div style="text-align: center;">
                <a href="{{.ConfirmationLink}}" class="button">Confirm Subscription</a>
            </div>
            <p style="font-size: 14px; color: #777;">If the button doesn't work, copy and paste this link into your browser:<br>
            <a href="{{.ConfirmationLink}}">{{.ConfirmationLink}}</a></p>
{{- end}}
            <div class="benefits">
                <h3>What to Expect:</h3>
                <ul>
                    <li>Weekly insights on digital transformation and technology</li>
                    <li>Exclusive resources and case studies</li>
                    <li>Industry trends and best practices</li>
                    <li>Special offers and early event access</li>
                </ul>
            </div>
            <p>You can unsubscribe at any time.</p>
            <p>Subscribed address: {{.Email}}</p>
            <p>If you have any questions, reply to this email or contact us at <a href="mailto:{{.ContactEmail}}">{{.ContactEmail}}</a>.</p>
            <p>Best regards,<br><strong>The {{.Company}} Team</strong></p>
        </div>
        <div class="footer">
            <p>&copy; {{.Year}} {{.Company}}. All rights reserved.</p>
{{- if .PostalAddress}}
            <p>{{.PostalAddress}}</p>
{{- end}}
        </div>
    </div>
</body>
</html>
`

const confirmationTextTemplate = `Welcome to {{.Company}} Newsletter!

Thank you for subscribing!

{{if .ConfirmationLink}}To complete your subscription, please confirm your email address by visiting:
{{.ConfirmationLink}}

{{end}}What to Expect:
- Weekly insights on digital transformation and technology
- Exclusive resources and case studies
- Industry trends and best practices
- Special offers and early event access

You can unsubscribe at any time.
Subscribed address: {{.Email}}
If you have any questions, reply to this email or contact us at {{.ContactEmail}}.

Best regards,
The {{.Company}} Team
`

const adminHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2>New newsletter subscription</h2>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>IP Address:</strong> {{.ClientIP}}</p>
    <p><strong>Timestamp:</strong> {{.Submitted}}</p>
    <p><strong>User Agent:</strong> {{.UserAgent}}</p>
</body>
</html>
`

const adminTextTemplate = `New newsletter subscription:

Email: {{.Email}}
IP Address: {{.ClientIP}}
Timestamp: {{.Submitted}}
User Agent: {{.UserAgent}}
`
