package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/attendance-management/internal/attendance/postgres"
	"github.com/frahmantamala/attendance-management/internal/auth"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/leave"
	leavePostgres "github.com/frahmantamala/attendance-management/internal/leave/postgres"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/internal/transport/metrics"
	"github.com/frahmantamala/attendance-management/internal/transport/rest"
	"github.com/frahmantamala/attendance-management/internal/user"
	userPostgres "github.com/frahmantamala/attendance-management/internal/user/postgres"
)

var _ = Describe("Router", func() {
	var (
		router     *chi.Mux
		now        time.Time
		adminToken string
		staffToken string
	)

	call := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	login := func(username, password string) string {
		rec := call(http.MethodPost, "/api/auth/login", "", map[string]string{"username": username, "password": password})
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
		var body struct {
			Token string `json:"token"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body.Token
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
			TranslateError: true,
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		DeferCleanup(sqlDB.Close)
		Expect(db.AutoMigrate(&userDatamodel.User{}, &attendanceDatamodel.AttendanceRecord{}, &leaveDatamodel.LeaveRequest{})).To(Succeed())

		now = time.Date(2024, 3, 1, 7, 30, 0, 0, time.UTC)
		hasher := auth.NewBcryptHasher(bcrypt.MinCost)
		users := userPostgres.NewUserRepository(db)
		userSvc := user.NewService(users, hasher, false, logger)
		tokens := auth.NewJWTTokenGenerator(
			"router-access-secret-router-access-secret",
			"router-refresh-secret-router-refresh-secret",
			time.Hour, 24*time.Hour)
		authSvc := auth.NewService(users, tokens, hasher, logger)
		attendanceSvc := attendance.NewService(
			attendancePostgres.NewAttendanceRepository(db),
			attendance.ClockFunc(func() time.Time { return now }),
			attendance.Policy{Location: time.UTC, Cutoff: attendance.DefaultCutoff},
			nil, logger)
		leaveSvc := leave.NewService(leavePostgres.NewLeaveRepository(db), leave.OrderLexical, nil, logger)

		base := transport.NewBaseHandler(logger)
		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.RouterDeps{
			Logger:            logger,
			DB:                sqlDB,
			AuthHandler:       auth.NewHandler(base, authSvc),
			RBAC:              auth.NewRBACAuthorization(base, logger),
			UserHandler:       user.NewHandler(base, userSvc),
			AttendanceHandler: attendance.NewHandler(base, attendanceSvc),
			LeaveHandler:      leave.NewHandler(base, leaveSvc),
			Metrics:           metrics.New(),
			LoginRateLimit:    100,
		})

		bootstrap := internal.Principal{UserID: "bootstrap", Role: internal.RoleAdmin}
		_, err = userSvc.Create(context.Background(), bootstrap, user.CreateUserDTO{
			Username: "root", Password: "rootpass", Name: "Root", Role: "ADMIN",
		})
		Expect(err).NotTo(HaveOccurred())

		rec := call(http.MethodPost, "/api/auth/register", "", map[string]string{
			"username": "alice", "password": "alicepass", "name": "Alice", "role": "ADMIN",
		})
		Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())

		adminToken = login("root", "rootpass")
		staffToken = login("alice", "alicepass")
	})

	It("serves health without a token", func() {
		rec := call(http.MethodGet, "/api/health", "", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("X-Trace-ID")).NotTo(BeEmpty())
	})

	It("returns 401 on protected routes without a token", func() {
		for _, path := range []string{"/api/attendance/status", "/api/requests", "/api/admin/requests"} {
			rec := call(http.MethodGet, path, "", nil)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized), path)
		}
	})

	It("never grants ADMIN through self-registration", func() {
		rec := call(http.MethodGet, "/api/users/me", staffToken, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"role":"EMPLOYEE"`))
		Expect(rec.Body.String()).NotTo(ContainSubstring("password"))
	})

	It("returns 403 for employees on admin routes", func() {
		Expect(call(http.MethodGet, "/api/admin/users", staffToken, nil).Code).To(Equal(http.StatusForbidden))
		Expect(call(http.MethodGet, "/api/admin/requests", staffToken, nil).Code).To(Equal(http.StatusForbidden))
		Expect(call(http.MethodPut, "/api/admin/requests/x", staffToken, map[string]string{"status": "APPROVED"}).Code).
			To(Equal(http.StatusForbidden))
	})

	It("rejects a duplicate username with 409", func() {
		rec := call(http.MethodPost, "/api/auth/register", "", map[string]string{
			"username": "alice", "password": "another", "name": "Alice Two",
		})
		Expect(rec.Code).To(Equal(http.StatusConflict))
	})

	It("runs a full attendance day", func() {
		Expect(call(http.MethodGet, "/api/attendance/status", staffToken, nil).Body.String()).
			To(MatchJSON(`{"status":"OUTSIDE"}`))

		rec := call(http.MethodPost, "/api/attendance/clock-in", staffToken, nil)
		Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
		Expect(rec.Body.String()).To(ContainSubstring(`"status":"ON_TIME"`))

		Expect(call(http.MethodPost, "/api/attendance/clock-in", staffToken, nil).Code).To(Equal(http.StatusConflict))

		now = now.Add(9 * time.Hour)
		Expect(call(http.MethodPost, "/api/attendance/clock-out", staffToken, nil).Code).To(Equal(http.StatusOK))
		Expect(call(http.MethodPost, "/api/attendance/clock-out", staffToken, nil).Code).To(Equal(http.StatusNotFound))

		rec = call(http.MethodGet, "/api/attendance/status", staffToken, nil)
		Expect(rec.Body.String()).To(ContainSubstring(`"status":"OUTSIDE_COMPLETED"`))

		rec = call(http.MethodGet, "/api/attendance/my-records", staffToken, nil)
		var records []map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &records)).To(Succeed())
		Expect(records).To(HaveLen(1))
	})

	It("lets an admin decide a leave request", func() {
		rec := call(http.MethodPost, "/api/requests", staffToken, map[string]string{
			"type": "SICK", "start_date": "2024-03-04", "end_date": "2024-03-05", "reason": "flu",
		})
		Expect(rec.Code).To(Equal(http.StatusCreated), rec.Body.String())
		var created struct {
			Request struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"request"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(created.Request.Status).To(Equal("PENDING"))

		rec = call(http.MethodPut, "/api/admin/requests/"+created.Request.ID, adminToken, map[string]string{"status": "PENDING"})
		Expect(rec.Code).To(Equal(http.StatusBadRequest))

		rec = call(http.MethodPut, "/api/admin/requests/"+created.Request.ID, adminToken, map[string]string{"status": "APPROVED"})
		Expect(rec.Code).To(Equal(http.StatusOK), rec.Body.String())
		Expect(rec.Body.String()).To(ContainSubstring(`"status":"APPROVED"`))

		rec = call(http.MethodGet, "/api/admin/requests", adminToken, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"username":"alice"`))

		Expect(call(http.MethodPut, "/api/admin/requests/missing", adminToken, map[string]string{"status": "REJECTED"}).Code).
			To(Equal(http.StatusNotFound))
	})

	It("exposes prometheus metrics", func() {
		call(http.MethodGet, "/api/ping", "", nil)
		rec := call(http.MethodGet, "/metrics", "", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("attendance_http_requests_total"))
	})
})
