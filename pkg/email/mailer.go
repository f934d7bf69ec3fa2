package email

import (
	"context"
	"fmt"
	"regexp"
)

// Sender represents an outbound email transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Attachment is a file attached to an outgoing message.
// Content is the raw file body; transports handle their own encoding.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message represents a single outbound email.
// BodyText is the plaintext alternative to BodyHTML; messages should
// carry both so text-only clients stay readable.
type Message struct {
	To          string
	Subject     string
	BodyHTML    string
	BodyText    string
	Tag         string // optional, used for provider-side categorization
	Attachments []Attachment
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the message can be sent.
func (m Message) Validate() error {
	if m.To == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	}
	if !emailRegex.MatchString(m.To) {
		return fmt.Errorf("%w: recipient must be a valid email address", ErrInvalidMessage)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if m.BodyHTML == "" && m.BodyText == "" {
		return fmt.Errorf("%w: message body is required", ErrInvalidMessage)
	}
	return nil
}
