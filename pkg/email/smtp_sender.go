package email

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

type smtpSender struct {
	client *mail.Client
	config Config
}

// NewSMTPSender creates a Sender backed by an SMTP relay.
// The relay host and sender address are required; authentication is
// enabled only when a username is configured, so unauthenticated
// relays (local MTAs, test containers) work out of the box.
func NewSMTPSender(cfg Config) (Sender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("%w: SMTPHost is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}

	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &smtpSender{client: client, config: cfg}, nil
}

// MustNewSMTPSender creates an SMTP sender that panics on invalid config.
// Fails fast during initialization rather than allowing a broken relay
// configuration to start serving.
func MustNewSMTPSender(cfg Config) Sender {
	sender, err := NewSMTPSender(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

func (s *smtpSender) Send(ctx context.Context, params Message) error {
	if err := params.Validate(); err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.config.SenderName, s.config.SenderEmail); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	if err := msg.To(params.To); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	msg.Subject(params.Subject)

	// Plaintext body first, HTML as the preferred alternative.
	if params.BodyText != "" {
		msg.SetBodyString(mail.TypeTextPlain, params.BodyText)
		if params.BodyHTML != "" {
			msg.AddAlternativeString(mail.TypeTextHTML, params.BodyHTML)
		}
	} else {
		msg.SetBodyString(mail.TypeTextHTML, params.BodyHTML)
	}

	for _, at := range params.Attachments {
		opts := []mail.FileOption{}
		if at.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(at.ContentType)))
		}
		if err := msg.AttachReader(at.Filename, bytes.NewReader(at.Content), opts...); err != nil {
			return fmt.Errorf("%w: attaching %s: %v", ErrFailedToSendEmail, at.Filename, err)
		}
	}

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}

	return nil
}
