package invoicedoc

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Party identifies one side of the invoice (issuer, student, guardian).
type Party struct {
	Name   string
	Detail string // address line, email, or empty
}

// Data is the snapshot rendered into the document. It carries every
// value the document shows; rendering performs no lookups, so the same
// Data always produces the same bytes.
type Data struct {
	Number          string // zero-padded invoice number, e.g. "000042"
	Issuer          Party
	Student         Party
	Guardian        Party
	ItemName        string
	ItemDescription string
	Amount          string // formatted amount including currency code
	Status          string
	IssuedAt        time.Time
	DueDate         *time.Time
	PaidAt          *time.Time
	PaymentRef      string // shown only in the payment confirmation block
}

// Validate checks the minimum set of fields the document requires.
func (d Data) Validate() error {
	if d.Number == "" {
		return fmt.Errorf("%w: invoice number is required", ErrInvalidData)
	}
	if d.ItemName == "" {
		return fmt.Errorf("%w: line item name is required", ErrInvalidData)
	}
	if d.Amount == "" {
		return fmt.Errorf("%w: amount is required", ErrInvalidData)
	}
	return nil
}

const dateLayout = "02 Jan 2006"

// Render produces the paginated invoice document as a byte buffer.
// It is synchronous and deterministic for a fixed Data value; document
// metadata dates are pinned to IssuedAt so repeated renders of the same
// invoice are byte-identical.
func Render(d Data) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(d.IssuedAt)
	pdf.SetModificationDate(d.IssuedAt)
	pdf.SetTitle("Invoice "+d.Number, false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Issuer header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, d.Issuer.Name, "", 1, "L", false, 0, "")
	if d.Issuer.Detail != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, d.Issuer.Detail, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 7, "INVOICE "+d.Number, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Issued: "+d.IssuedAt.Format(dateLayout), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Status: "+d.Status, "", 1, "L", false, 0, "")
	if d.DueDate != nil {
		pdf.CellFormat(0, 5, "Due: "+d.DueDate.Format(dateLayout), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Bill-to block
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Student: "+d.Student.Name, "", 1, "L", false, 0, "")
	if d.Guardian.Name != "" {
		guardian := d.Guardian.Name
		if d.Guardian.Detail != "" {
			guardian += " (" + d.Guardian.Detail + ")"
		}
		pdf.CellFormat(0, 5, "Guardian: "+guardian, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Line item table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 7, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	item := d.ItemName
	if d.ItemDescription != "" {
		item += " - " + d.ItemDescription
	}
	pdf.CellFormat(120, 7, item, "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, d.Amount, "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(120, 7, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, d.Amount, "1", 1, "R", false, 0, "")

	// Payment confirmation only once the invoice is settled.
	if d.PaidAt != nil {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 6, "Payment confirmation", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, "Paid on: "+d.PaidAt.Format(dateLayout), "", 1, "L", false, 0, "")
		if d.PaymentRef != "" {
			pdf.CellFormat(0, 5, "Reference: "+d.PaymentRef, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return buf.Bytes(), nil
}
