// Package billing owns the invoice lifecycle: issuance with fee
// snapshots, the guarded payment transition, administrative status
// overrides, and invoice document rendering.
//
// Invoices are created only here - enrollment approval and the
// admin-direct path both go through the Service. Every successful
// issuance emits InvoiceCreated and every settlement emits InvoicePaid;
// the notification dispatcher consumes both.
package billing
