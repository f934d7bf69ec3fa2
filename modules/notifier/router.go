package notifier

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/core"
)

// UserResolver extracts the authenticated user from the request, e.g.
// from a session or token middleware further up the chain.
type UserResolver func(r *http.Request) (uuid.UUID, error)

// Router exposes the inbox and push-subscription operations over HTTP:
//
//	GET    /                   list the user's notifications
//	GET    /unread-count       count unread notifications
//	POST   /read-all           mark all notifications read
//	POST   /{id}/read          mark one notification read
//	DELETE /{id}               delete one notification
//	PUT    /push/subscription  register the browser push subscription
//	DELETE /push/subscription  remove the push subscription
//
// The push routes are mounted only when a push channel is provided.
func Router(inbox *Inbox, push *PushChannel, user UserResolver) chi.Router {
	r := chi.NewRouter()

	r.Get("/", handleList(inbox, user))
	r.Get("/unread-count", handleUnreadCount(inbox, user))
	r.Post("/read-all", handleMarkAllRead(inbox, user))
	r.Post("/{id}/read", handleMarkRead(inbox, user))
	r.Delete("/{id}", handleDelete(inbox, user))

	if push != nil {
		r.Put("/push/subscription", handleSubscribe(push, user))
		r.Delete("/push/subscription", handleUnsubscribe(push, user))
	}

	return r
}

func handleList(inbox *Inbox, user UserResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := user(r)
		if err != nil {
			core.WriteError(w, core.ErrForbidden)
			return
		}

		records, err := inbox.List(r.Context(), userID)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusOK, records)
	}
}

func handleUnreadCount(inbox *Inbox, user UserResolver) http.HandlerFunc {
	type response struct {
		Count int `json:"count"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := user(r)
		if err != nil {
			core.WriteError(w, core.ErrForbidden)
			return
		}

		count, err := inbox.UnreadCount(r.Context(), userID)
		if err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		core.WriteJSON(w, http.StatusOK, response{Count: count})
	}
}

func handleMarkAllRead(inbox *Inbox, user UserResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := user(r)
		if err != nil {
			core.WriteError(w, core.ErrForbidden)
			return
		}

		if err := inbox.MarkAllRead(r.Context(), userID); err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleMarkRead(inbox *Inbox, user UserResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := user(r)
		if err != nil {
			core.WriteError(w, core.ErrForbidden)
			return
		}
		recordID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		if err := inbox.MarkRead(r.Context(), userID, recordID); err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDelete(inbox *Inbox, user UserResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := user(r)
		if err != nil {
			core.WriteError(w, core.ErrForbidden)
			return
		}
		recordID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		if err := inbox.Delete(r.Context(), userID, recordID); err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSubscribe(push *PushChannel, user UserResolver) http.HandlerFunc {
	type request struct {
		Endpoint string `json:"endpoint"`
		P256dh   string `json:"p256dh"`
		Auth     string `json:"auth"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := user(r)
		if err != nil {
			core.WriteError(w, core.ErrForbidden)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.WriteError(w, core.ErrBadRequest)
			return
		}

		sub := Subscription{
			UserID:    userID,
			Endpoint:  req.Endpoint,
			P256dh:    req.P256dh,
			Auth:      req.Auth,
			CreatedAt: time.Now(),
		}
		if err := push.Subscribe(r.Context(), sub); err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleUnsubscribe(push *PushChannel, user UserResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := user(r)
		if err != nil {
			core.WriteError(w, core.ErrForbidden)
			return
		}

		if err := push.Unsubscribe(r.Context(), userID); err != nil {
			core.WriteError(w, mapError(err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return core.ErrNotFound
	case errors.Is(err, ErrForbidden):
		return core.ErrForbidden
	case errors.Is(err, ErrInvalidSubscription):
		return core.ErrUnprocessableEntity
	default:
		return err
	}
}
