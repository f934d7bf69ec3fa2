package notifier

import "context"

// Outcome is the per-channel delivery result.
type Outcome string

const (
	// OutcomeDelivered means the channel handed the notification to its
	// destination.
	OutcomeDelivered Outcome = "delivered"
	// OutcomeSkipped means the channel had no way to reach the recipient
	// (no live session, no subscription, no relay configured). Expected
	// and common; not an error.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the channel tried and failed. The failure is
	// contained: it is logged, never propagated to the caller that
	// triggered the event.
	OutcomeFailed Outcome = "failed"
)

// Result is one channel's observed outcome for one event.
type Result struct {
	Channel string
	Outcome Outcome
	Err     error
}

// Channel is one notification delivery mechanism. Implementations must
// respect the context deadline; the dispatcher bounds every call.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, event Event) (Outcome, error)
}
