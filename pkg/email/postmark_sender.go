package email

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mrz1836/postmark"
)

type postmarkSender struct {
	client *postmark.Client
	config Config
}

// NewPostmarkSender creates a Postmark-backed email sender.
// The server token is required for runtime operation - this enforces
// explicit configuration rather than silent failures in production.
func NewPostmarkSender(cfg Config) (Sender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}

	return &postmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, ""),
		config: cfg,
	}, nil
}

func (s *postmarkSender) Send(ctx context.Context, params Message) error {
	if err := params.Validate(); err != nil {
		return err
	}

	msg := postmark.Email{
		From:     fmt.Sprintf("%s <%s>", s.config.SenderName, s.config.SenderEmail),
		To:       params.To,
		Subject:  params.Subject,
		HTMLBody: params.BodyHTML,
		TextBody: params.BodyText,
		Tag:      params.Tag,
	}

	for _, at := range params.Attachments {
		msg.Attachments = append(msg.Attachments, postmark.Attachment{
			Name:        at.Filename,
			Content:     base64.StdEncoding.EncodeToString(at.Content),
			ContentType: at.ContentType,
		})
	}

	resp, err := s.client.SendEmail(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode != 0 {
		return fmt.Errorf("%w: postmark error %d: %s", ErrFailedToSendEmail, resp.ErrorCode, resp.Message)
	}

	return nil
}
