package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dmitrymomot/schoolkit/modules/billing"
	"github.com/dmitrymomot/schoolkit/modules/directory"
	"github.com/dmitrymomot/schoolkit/modules/enrollment"
	"github.com/dmitrymomot/schoolkit/pkg/logger"
)

// EventBridge turns billing and enrollment domain events into
// notification events and hands them to the dispatcher. It satisfies
// billing.EventHandler and enrollment.EventHandler so the domain
// services stay unaware of the notification machinery.
type EventBridge struct {
	dispatcher *Dispatcher
	people     directory.Resolver
	logger     *slog.Logger
}

// BridgeOption configures an EventBridge.
type BridgeOption func(*EventBridge)

// WithBridgeLogger sets the logger for the EventBridge.
func WithBridgeLogger(log *slog.Logger) BridgeOption {
	return func(b *EventBridge) {
		if log != nil {
			b.logger = log
		}
	}
}

// NewEventBridge creates a bridge that notifies the student's guardian
// about invoice events.
func NewEventBridge(d *Dispatcher, people directory.Resolver, opts ...BridgeOption) *EventBridge {
	b := &EventBridge{
		dispatcher: d,
		people:     people,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// InvoiceCreated notifies the guardian that a new invoice was issued.
func (b *EventBridge) InvoiceCreated(ctx context.Context, inv billing.Invoice) {
	b.dispatch(ctx, KindInvoiceCreated, inv)
}

// InvoicePaid notifies the guardian that an invoice was settled.
func (b *EventBridge) InvoicePaid(ctx context.Context, inv billing.Invoice) {
	b.dispatch(ctx, KindInvoicePaid, inv)
}

// EnrollmentApproved records the approval; the invoices it carries are
// announced individually through InvoiceCreated.
func (b *EventBridge) EnrollmentApproved(ctx context.Context, e enrollment.Enrollment, invoices []billing.Invoice) {
	b.logger.LogAttrs(ctx, slog.LevelInfo, "enrollment approval notified",
		logger.EnrollmentID(e.ID),
		logger.UserID(e.StudentID),
		slog.Int("invoices", len(invoices)),
	)
}

// dispatch resolves the recipient and fans the event out. A recipient
// that cannot be resolved is logged and dropped; notification delivery
// never fails the mutation that produced the event.
func (b *EventBridge) dispatch(ctx context.Context, kind Kind, inv billing.Invoice) {
	student, err := b.people.Student(ctx, inv.StudentID)
	if err != nil {
		b.logger.LogAttrs(ctx, slog.LevelError, "notification recipient lookup failed",
			logger.UserID(inv.StudentID),
			logger.InvoiceID(inv.ID),
			logger.Error(err),
		)
		return
	}
	guardian, err := b.people.Guardian(ctx, inv.StudentID)
	if err != nil {
		b.logger.LogAttrs(ctx, slog.LevelError, "notification recipient lookup failed",
			logger.UserID(inv.StudentID),
			logger.InvoiceID(inv.ID),
			logger.Error(err),
		)
		return
	}

	event := Event{
		Kind:      kind,
		Recipient: guardian,
		Student:   student,
		Invoice:   inv,
		Entity: EntityRef{
			Type: "invoice",
			ID:   strconv.FormatInt(inv.ID, 10),
		},
		OccurredAt: time.Now(),
	}
	event.Title, event.Body = render(kind, student, inv)

	b.dispatcher.Dispatch(ctx, event)
}

func render(kind Kind, student directory.Person, inv billing.Invoice) (title, body string) {
	switch kind {
	case KindInvoicePaid:
		title = fmt.Sprintf("Invoice %s paid", inv.Number())
		body = fmt.Sprintf("Invoice %s (%s) for %s has been paid. Amount: %s.",
			inv.Number(), inv.Fee.Name, student.Name, inv.FormattedAmount())
	default:
		title = fmt.Sprintf("New invoice %s", inv.Number())
		body = fmt.Sprintf("Invoice %s (%s) has been issued for %s. Amount due: %s.",
			inv.Number(), inv.Fee.Name, student.Name, inv.FormattedAmount())
		if inv.DueDate != nil {
			body += fmt.Sprintf(" Due by %s.", inv.DueDate.Format("02 Jan 2006"))
		}
	}
	return title, body
}
