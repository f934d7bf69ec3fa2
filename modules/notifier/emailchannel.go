package notifier

import (
	"context"
	"fmt"
	"html"

	"github.com/dmitrymomot/schoolkit/pkg/email"
)

// DocumentRenderer renders the invoice document attached to invoice
// emails. The billing service satisfies it.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, id int64) ([]byte, error)
}

// EmailChannel delivers notifications by email with the invoice
// document attached. Deployments without an email transport configured
// skip instead of failing, so local environments work without
// credentials.
type EmailChannel struct {
	sender email.Sender
	docs   DocumentRenderer
}

// NewEmailChannel creates an email channel. A nil sender disables
// delivery; every event is then skipped.
func NewEmailChannel(sender email.Sender, docs DocumentRenderer) *EmailChannel {
	return &EmailChannel{sender: sender, docs: docs}
}

// Name implements the Channel interface.
func (c *EmailChannel) Name() string { return "email" }

// Deliver implements the Channel interface.
func (c *EmailChannel) Deliver(ctx context.Context, event Event) (Outcome, error) {
	if c.sender == nil {
		return OutcomeSkipped, nil
	}
	if event.Recipient.Email == "" {
		return OutcomeSkipped, nil
	}

	msg := email.Message{
		To:       event.Recipient.Email,
		Subject:  event.Title,
		BodyHTML: emailBodyHTML(event),
		BodyText: event.Body,
		Tag:      string(event.Kind),
	}

	if c.docs != nil {
		doc, err := c.docs.RenderDocument(ctx, event.Invoice.ID)
		if err != nil {
			return OutcomeFailed, fmt.Errorf("render invoice document: %w", err)
		}
		msg.Attachments = append(msg.Attachments, email.Attachment{
			Filename:    fmt.Sprintf("invoice-%s.pdf", event.Invoice.Number()),
			ContentType: "application/pdf",
			Content:     doc,
		})
	}

	if err := c.sender.Send(ctx, msg); err != nil {
		return OutcomeFailed, fmt.Errorf("send notification email: %w", err)
	}
	return OutcomeDelivered, nil
}

func emailBodyHTML(event Event) string {
	return fmt.Sprintf(
		"<h2>%s</h2><p>%s</p><p>Hello %s, the invoice document is attached to this email.</p>",
		html.EscapeString(event.Title),
		html.EscapeString(event.Body),
		html.EscapeString(event.Recipient.Name),
	)
}
