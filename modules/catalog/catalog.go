package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeDefinition is a named fee that classes attach as an enrollment or
// tuition fee. Amount and currency are copied onto invoices at issuance
// time, so later edits never change what was already billed.
type FeeDefinition struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ClassOffering is a class a student can enroll in. Zero, one, or two
// fee definitions may be attached.
type ClassOffering struct {
	ID              uuid.UUID  `json:"id"`
	SchoolID        uuid.UUID  `json:"school_id"`
	TeacherID       uuid.UUID  `json:"teacher_id"`
	Name            string     `json:"name"`
	EnrollmentFeeID *uuid.UUID `json:"enrollment_fee_id,omitempty"`
	TuitionFeeID    *uuid.UUID `json:"tuition_fee_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// FeeIDs returns the attached fee definition ids in billing order
// (enrollment fee first, then tuition fee).
func (c ClassOffering) FeeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, 2)
	if c.EnrollmentFeeID != nil {
		ids = append(ids, *c.EnrollmentFeeID)
	}
	if c.TuitionFeeID != nil {
		ids = append(ids, *c.TuitionFeeID)
	}
	return ids
}
