package notifier

import (
	"time"

	"github.com/dmitrymomot/schoolkit/modules/billing"
	"github.com/dmitrymomot/schoolkit/modules/directory"
)

// Kind identifies the domain event behind a notification.
type Kind string

const (
	KindInvoiceCreated Kind = "invoice.created"
	KindInvoicePaid    Kind = "invoice.paid"
)

// EntityRef points a notification at the domain entity it concerns.
type EntityRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Event is the unit of fan-out: one domain event resolved to a
// recipient, with the human-readable rendering every channel shares and
// the invoice snapshot the email channel renders into a document.
type Event struct {
	Kind       Kind
	Recipient  directory.Person // the student's guardian
	Student    directory.Person
	Invoice    billing.Invoice
	Title      string
	Body       string
	Entity     EntityRef
	OccurredAt time.Time
}
