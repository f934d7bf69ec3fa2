// Package email provides outbound mail delivery with attachment support
// behind a single Sender interface.
//
// Three implementations are included:
//
//   - SMTP sender for classic relay configurations (host + optional auth)
//   - Postmark sender for API-based delivery
//   - Dev sender that writes messages to disk for local inspection
//
// A nil Sender is a valid runtime configuration: callers that hold no
// sender (no relay credentials configured) skip email delivery instead
// of failing.
package email
