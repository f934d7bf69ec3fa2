// Package invoicedoc renders an invoice snapshot into a paginated PDF
// document, returned as a byte buffer.
//
// Rendering is pure: no network or storage side effects, and identical
// input produces identical bytes. Callers never observe a partial
// buffer - Render either returns the complete document or an error.
// The email notification channel attaches the result; the billing
// service also exposes it standalone for downloads.
package invoicedoc
