package billing

import "context"

// EventHandler consumes the two domain events the billing service
// emits. The notification dispatcher is the production implementation;
// handlers must not block, and their failures must never reach the
// state transition that triggered the event.
type EventHandler interface {
	// InvoiceCreated fires after every successful issuance.
	InvoiceCreated(ctx context.Context, inv Invoice)

	// InvoicePaid fires after the guarded Pay path and after an
	// administrative transition into the paid status.
	InvoicePaid(ctx context.Context, inv Invoice)
}

// NoopEvents is an EventHandler that does nothing.
type NoopEvents struct{}

func (NoopEvents) InvoiceCreated(ctx context.Context, inv Invoice) {}
func (NoopEvents) InvoicePaid(ctx context.Context, inv Invoice)    {}
