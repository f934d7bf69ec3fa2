package enrollment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/core"
	"github.com/dmitrymomot/schoolkit/modules/billing"
)

// Router exposes the enrollment operations over HTTP:
//
//	POST /              submit an enrollment request
//	GET  /{id}          fetch an enrollment
//	POST /{id}/approve  approve a pending enrollment
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()
	r.Post("/", handleSubmit(svc))
	r.Get("/{id}", handleGet(svc))
	r.Post("/{id}/approve", handleApprove(svc))
	return r
}

func handleSubmit(svc *Service) http.HandlerFunc {
	type request struct {
		StudentID uuid.UUID `json:"student_id"`
		ClassID   uuid.UUID `json:"class_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		e, err := svc.Submit(r.Context(), req.StudentID, req.ClassID)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusCreated, e)
	}
}

func handleGet(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		e, err := svc.Enrollment(r.Context(), id)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusOK, e)
	}
}

func handleApprove(svc *Service) http.HandlerFunc {
	type response struct {
		Enrollment Enrollment        `json:"enrollment"`
		Invoices   []billing.Invoice `json:"invoices"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		e, invoices, err := svc.Approve(r.Context(), id)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusOK, response{Enrollment: e, Invoices: invoices})
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return core.ErrNotFound
	case errors.Is(err, ErrStudentNotFound), errors.Is(err, ErrClassNotFound):
		return core.ErrUnprocessableEntity
	case errors.Is(err, ErrAlreadySubmitted), errors.Is(err, ErrNotPending):
		return core.ErrConflict
	default:
		return err
	}
}
