package billing

import "errors"

var (
	// ErrInvoiceNotFound is returned when a referenced invoice does not exist.
	ErrInvoiceNotFound = errors.New("billing: invoice not found")
	// ErrAlreadyPaid is returned by Pay for an invoice that is already settled.
	ErrAlreadyPaid = errors.New("billing: invoice already paid")
	// ErrUnknownStatus is returned by SetStatus for unsupported status values.
	ErrUnknownStatus = errors.New("billing: unknown invoice status")
	// ErrInvalidIssue is returned when issuance input is malformed.
	ErrInvalidIssue = errors.New("billing: invalid issuance parameters")
)
