package rest_test

import (
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal/transport/rest"
)

var _ = Describe("HealthHandler", func() {
	It("reports healthy when the database answers", func() {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()
		mock.ExpectPing()

		rec := httptest.NewRecorder()
		rest.NewHealthHandler(db).Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"status":"healthy"`))
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	It("reports unavailable when the ping fails", func() {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		rec := httptest.NewRecorder()
		rest.NewHealthHandler(db).Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(rec.Body.String()).To(ContainSubstring("connection refused"))
	})
})
