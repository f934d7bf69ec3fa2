package notifier

import (
	"context"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// WebPushConfig holds the VAPID identity of the push sender. With the
// keys unset the push channel reports skipped for every event.
type WebPushConfig struct {
	VAPIDPublicKey  string `env:"WEBPUSH_VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `env:"WEBPUSH_VAPID_PRIVATE_KEY"`
	Subscriber      string `env:"WEBPUSH_SUBSCRIBER"` // mailto: or https: contact
	TTL             int    `env:"WEBPUSH_TTL" envDefault:"3600"`
}

// Configured reports whether the VAPID key pair is present.
func (c WebPushConfig) Configured() bool {
	return c.VAPIDPublicKey != "" && c.VAPIDPrivateKey != ""
}

// PushSender sends an encrypted payload to one push subscription.
type PushSender interface {
	Send(ctx context.Context, sub Subscription, payload []byte) error
}

// WebPushSender delivers payloads through the Web Push protocol using
// VAPID authentication. A 404 or 410 from the push service is reported
// as ErrEndpointGone so the caller can prune the subscription.
type WebPushSender struct {
	config WebPushConfig
}

// NewWebPushSender creates a sender with the given VAPID identity.
func NewWebPushSender(config WebPushConfig) *WebPushSender {
	return &WebPushSender{config: config}
}

func (s *WebPushSender) Send(ctx context.Context, sub Subscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.config.Subscriber,
		VAPIDPublicKey:  s.config.VAPIDPublicKey,
		VAPIDPrivateKey: s.config.VAPIDPrivateKey,
		TTL:             s.config.TTL,
	})
	if err != nil {
		return fmt.Errorf("send web push: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return fmt.Errorf("%w: status %d", ErrEndpointGone, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("push service rejected notification: status %d", resp.StatusCode)
	}
	return nil
}
