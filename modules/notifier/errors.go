package notifier

import "errors"

var (
	// ErrRecordNotFound is returned when an inbox record does not exist.
	ErrRecordNotFound = errors.New("notification record not found")
	// ErrForbidden is returned when a user operates on another user's
	// inbox record.
	ErrForbidden = errors.New("notification belongs to another user")
	// ErrNoSubscription is returned when a user has no stored push
	// subscription.
	ErrNoSubscription = errors.New("no push subscription")
	// ErrEndpointGone marks a push endpoint the push service reports as
	// permanently unreachable. The subscription is pruned on sight.
	ErrEndpointGone = errors.New("push endpoint gone")
	// ErrInvalidSubscription is returned when a push subscription misses
	// its endpoint or keys.
	ErrInvalidSubscription = errors.New("invalid push subscription")
)
