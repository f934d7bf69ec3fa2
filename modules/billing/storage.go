package billing

import (
	"context"

	"github.com/google/uuid"
)

// Storage handles invoice persistence. Create assigns the sequential
// invoice id (the basis of the invoice number) to the passed invoice.
type Storage interface {
	Create(ctx context.Context, inv *Invoice) error
	ByID(ctx context.Context, id int64) (Invoice, error)
	Update(ctx context.Context, inv Invoice) error

	// Delete removes invoices by id. Used only by the issuance rollback
	// path; settled invoices are never deleted through the service.
	Delete(ctx context.Context, ids ...int64) error

	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Invoice, error)
}
