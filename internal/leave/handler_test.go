package leave_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"github.com/frahmantamala/attendance-management/internal/transport"
)

var _ = Describe("Leave Handler", func() {
	var (
		handler *leave.Handler
		router  chi.Router
	)

	as := func(req *http.Request, p internal.Principal) *http.Request {
		return req.WithContext(internal.ContextWithPrincipal(req.Context(), p))
	}
	employee := internal.Principal{UserID: "emp-1", Username: "alice", Role: internal.RoleEmployee}
	admin := internal.Principal{UserID: "adm-1", Username: "admin", Role: internal.RoleAdmin}

	jsonBody := func(v interface{}) io.Reader {
		b, err := json.Marshal(v)
		Expect(err).NotTo(HaveOccurred())
		return bytes.NewReader(b)
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := leave.NewService(&MockRepository{names: map[string]string{"emp-1": "Alice"}}, leave.OrderLexical, nil, logger)
		handler = leave.NewHandler(transport.NewBaseHandler(logger), svc)

		router = chi.NewRouter()
		router.Put("/admin/requests/{id}", handler.UpdateRequestStatus)
	})

	create := func() *leave.LeaveRequest {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/requests", jsonBody(map[string]string{
			"type":       "Annual",
			"start_date": "2024-02-01",
			"end_date":   "2024-02-03",
			"reason":     "holiday",
		}))
		handler.CreateRequest(rec, as(req, employee))

		Expect(rec.Code).To(Equal(http.StatusCreated))
		var body leave.CreateLeaveRequestResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body.Request
	}

	It("creates a request and renders dates as calendar days", func() {
		created := create()

		Expect(created.Status).To(Equal(leave.StatusPending))
		Expect(created.StartDate.Format("2006-01-02")).To(Equal("2024-02-01"))
	})

	It("returns 400 for a missing field", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/requests", jsonBody(map[string]string{"type": "Sick"}))
		handler.CreateRequest(rec, as(req, employee))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 400 for a malformed body", func() {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/requests", bytes.NewBufferString("{"))
		handler.CreateRequest(rec, as(req, employee))

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("lists the caller's requests", func() {
		create()

		rec := httptest.NewRecorder()
		handler.GetMyRequests(rec, as(httptest.NewRequest(http.MethodGet, "/requests", nil), employee))

		Expect(rec.Code).To(Equal(http.StatusOK))
		var body []leave.LeaveRequest
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body).To(HaveLen(1))
	})

	It("includes the owner in the admin listing", func() {
		create()

		rec := httptest.NewRecorder()
		handler.GetAllRequests(rec, as(httptest.NewRequest(http.MethodGet, "/admin/requests", nil), admin))

		Expect(rec.Code).To(Equal(http.StatusOK))
		var body []map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body).To(HaveLen(1))
		Expect(body[0]["user"]).To(HaveKeyWithValue("name", "Alice"))
	})

	It("returns 403 for an employee on the admin listing", func() {
		rec := httptest.NewRecorder()
		handler.GetAllRequests(rec, as(httptest.NewRequest(http.MethodGet, "/admin/requests", nil), employee))

		Expect(rec.Code).To(Equal(http.StatusForbidden))
	})

	Describe("status update", func() {
		put := func(id string, status string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/admin/requests/"+id, jsonBody(map[string]string{"status": status}))
			router.ServeHTTP(rec, as(req, admin))
			return rec
		}

		It("updates by the id in the path", func() {
			created := create()

			rec := put(created.ID, "APPROVED")

			Expect(rec.Code).To(Equal(http.StatusOK))
			var body leave.UpdateStatusResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Request.Status).To(Equal(leave.StatusApproved))
		})

		It("returns 404 for an unknown id", func() {
			Expect(put("nope", "APPROVED").Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for an unsupported status", func() {
			created := create()
			Expect(put(created.ID, "PENDING").Code).To(Equal(http.StatusBadRequest))
		})
	})
})
