package enrollment_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/modules/billing"
	"github.com/dmitrymomot/schoolkit/modules/enrollment"
)

func TestRouter(t *testing.T) {
	t.Parallel()

	t.Run("submit then approve", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		h := enrollment.Router(f.svc)

		body := fmt.Sprintf(`{"student_id":%q,"class_id":%q}`, f.student.ID, f.class.ID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, rec.Code)

		var submitted struct {
			Data enrollment.Enrollment `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))
		assert.Equal(t, enrollment.StatusPending, submitted.Data.Status)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/"+submitted.Data.ID.String()+"/approve", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var approved struct {
			Data struct {
				Enrollment enrollment.Enrollment `json:"enrollment"`
				Invoices   []billing.Invoice     `json:"invoices"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
		assert.Equal(t, enrollment.StatusApproved, approved.Data.Enrollment.Status)
		assert.Len(t, approved.Data.Invoices, 2)

		// A second approval conflicts.
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/"+submitted.Data.ID.String()+"/approve", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("duplicate submission conflicts", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		h := enrollment.Router(f.svc)

		body := fmt.Sprintf(`{"student_id":%q,"class_id":%q}`, f.student.ID, f.class.ID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown student is unprocessable", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		h := enrollment.Router(f.svc)

		body := fmt.Sprintf(`{"student_id":%q,"class_id":%q}`, uuid.New(), f.class.ID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown enrollment is not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		h := enrollment.Router(f.svc)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
