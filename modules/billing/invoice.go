package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/schoolkit/modules/catalog"
)

// Status represents the invoice lifecycle state.
type Status string

const (
	// StatusPending is the initial state of every issued invoice.
	StatusPending Status = "pending"
	// StatusPaid is terminal for the guarded Pay path.
	StatusPaid Status = "paid"
	// StatusOverdue is advisory: set by an administrative override, not
	// by an automatic due-date sweep.
	StatusOverdue Status = "overdue"
)

// Valid reports whether s is a supported invoice status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// FeeSnapshot is the fee captured onto an invoice at issuance time.
// Later edits to the fee definition never alter this snapshot.
type FeeSnapshot struct {
	FeeID       uuid.UUID       `json:"fee_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
}

// SnapshotOf captures a fee definition's billing-relevant fields.
func SnapshotOf(fee catalog.FeeDefinition) FeeSnapshot {
	return FeeSnapshot{
		FeeID:       fee.ID,
		Name:        fee.Name,
		Description: fee.Description,
		Amount:      fee.Amount,
		Currency:    fee.Currency,
	}
}

// Invoice is a bill issued to a student's guardian. Created only by the
// billing service, never directly by a client request.
type Invoice struct {
	ID        int64       `json:"id"`
	StudentID uuid.UUID   `json:"student_id"`
	Fee       FeeSnapshot `json:"fee"`
	Status    Status      `json:"status"`
	DueDate   *time.Time  `json:"due_date,omitempty"`
	PaidAt    *time.Time  `json:"paid_at,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// Number renders the invoice number: the id as a fixed-width
// zero-padded decimal.
func (i Invoice) Number() string {
	return fmt.Sprintf("%06d", i.ID)
}

// FormattedAmount renders the invoice amount with its currency code.
func (i Invoice) FormattedAmount() string {
	return FormatAmount(i.Fee.Amount, i.Fee.Currency)
}
