// Package email sends the transactional support emails through
// Resend: one notification to the support inbox, one confirmation
// back to the user.
package email

import (
	"context"
	"fmt"
	"html"
	"os"

	"github.com/resend/resend-go/v2"
)

type Client struct {
	resend    *resend.Client
	from      string
	supportTo string
}

func New() *Client {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "TaskPilot <support@taskpilot.app>"
	}
	supportTo := os.Getenv("SUPPORT_EMAIL")
	if supportTo == "" {
		supportTo = "support@taskpilot.app"
	}
	return &Client{
		resend:    resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:      from,
		supportTo: supportTo,
	}
}

// SendSupportRequest delivers the support notification and the user
// confirmation, returning both message ids.
func (c *Client) SendSupportRequest(ctx context.Context, name, fromEmail, subject, message string) (string, string, error) {
	safeName := html.EscapeString(name)
	safeMessage := html.EscapeString(message)

	supportParams := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{c.supportTo},
		ReplyTo: fromEmail,
		Subject: "[Support] " + subject,
		Html: fmt.Sprintf("<p><strong>%s</strong> (%s) wrote:</p><p>%s</p>",
			safeName, html.EscapeString(fromEmail), safeMessage),
	}
	supportSent, err := c.resend.Emails.SendWithContext(ctx, supportParams)
	if err != nil {
		return "", "", fmt.Errorf("failed to send support notification: %w", err)
	}

	confirmParams := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{fromEmail},
		Subject: "We received your message",
		Html: fmt.Sprintf("<p>Hi %s,</p><p>Thanks for reaching out. We've received your message and will get back to you soon.</p><blockquote>%s</blockquote>",
			safeName, safeMessage),
	}
	confirmSent, err := c.resend.Emails.SendWithContext(ctx, confirmParams)
	if err != nil {
		return supportSent.Id, "", fmt.Errorf("failed to send confirmation: %w", err)
	}

	return supportSent.Id, confirmSent.Id, nil
}
