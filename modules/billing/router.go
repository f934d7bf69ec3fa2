package billing

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/core"
)

// Router exposes the billing operations over HTTP:
//
//	POST /                       issue an ad-hoc invoice from a fee
//	GET  /{id}                   fetch an invoice
//	GET  /{id}/document          download the invoice as PDF
//	POST /{id}/pay               mark an invoice paid
//	POST /{id}/status            administrative status override
//	POST /{id}/due-date          set or clear the due date
//	GET  /students/{studentID}   list a student's invoices
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()
	r.Post("/", handleIssue(svc))
	r.Get("/{id}", handleGet(svc))
	r.Get("/{id}/document", handleDocument(svc))
	r.Post("/{id}/pay", handlePay(svc))
	r.Post("/{id}/status", handleSetStatus(svc))
	r.Post("/{id}/due-date", handleSetDueDate(svc))
	r.Get("/students/{studentID}", handleListByStudent(svc))
	return r
}

func invoiceID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func handleIssue(svc *Service) http.HandlerFunc {
	type request struct {
		StudentID uuid.UUID  `json:"student_id"`
		FeeID     uuid.UUID  `json:"fee_id"`
		DueDate   *time.Time `json:"due_date,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		inv, err := svc.IssueFromFee(r.Context(), req.StudentID, req.FeeID, req.DueDate)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusCreated, inv)
	}
}

func handleGet(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := invoiceID(r)
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		inv, err := svc.Invoice(r.Context(), id)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusOK, inv)
	}
}

func handleDocument(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := invoiceID(r)
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		inv, err := svc.Invoice(r.Context(), id)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		doc, err := svc.RenderDocument(r.Context(), id)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+inv.Number()+".pdf"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc)
	}
}

func handlePay(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := invoiceID(r)
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		inv, err := svc.Pay(r.Context(), id)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusOK, inv)
	}
}

func handleSetStatus(svc *Service) http.HandlerFunc {
	type request struct {
		Status Status `json:"status"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := invoiceID(r)
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		inv, err := svc.SetStatus(r.Context(), id, req.Status)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusOK, inv)
	}
}

func handleSetDueDate(svc *Service) http.HandlerFunc {
	type request struct {
		DueDate *time.Time `json:"due_date"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := invoiceID(r)
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		inv, err := svc.SetDueDate(r.Context(), id, req.DueDate)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusOK, inv)
	}
}

func handleListByStudent(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID, err := uuid.Parse(chi.URLParam(r, "studentID"))
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		invoices, err := svc.InvoicesByStudent(r.Context(), studentID)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusOK, invoices)
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrInvoiceNotFound):
		return core.ErrNotFound
	case errors.Is(err, ErrAlreadyPaid):
		return core.ErrConflict
	case errors.Is(err, ErrUnknownStatus), errors.Is(err, ErrInvalidIssue):
		return core.ErrUnprocessableEntity
	default:
		return err
	}
}
