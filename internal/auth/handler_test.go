package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/transport"
)

type stubAuthService struct {
	principal internal.Principal
	err       error
	tokens    *auth.AuthTokens
}

func (s *stubAuthService) Login(ctx context.Context, dto auth.LoginDTO) (*auth.AuthTokens, error) {
	return s.tokens, s.err
}

func (s *stubAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*auth.AuthTokens, error) {
	return s.tokens, s.err
}

func (s *stubAuthService) Authenticate(accessToken string) (internal.Principal, error) {
	return s.principal, s.err
}

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		svc     *stubAuthService
		handler *auth.Handler
		rbac    *auth.RBACAuthorization
		reached internal.Principal
		next    http.Handler
	)

	ginkgo.BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		base := transport.NewBaseHandler(logger)
		svc = &stubAuthService{}
		handler = auth.NewHandler(base, svc)
		rbac = auth.NewRBACAuthorization(base, logger)
		reached = internal.Principal{}
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached, _ = internal.PrincipalFromContext(r.Context())
			w.WriteHeader(http.StatusNoContent)
		})
	})

	errorCode := func(rec *httptest.ResponseRecorder) internal.ErrorCode {
		var body struct {
			Error struct {
				Code internal.ErrorCode `json:"code"`
			} `json:"error"`
		}
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
		return body.Error.Code
	}

	ginkgo.Describe("AuthMiddleware", func() {
		ginkgo.It("returns 401 without a bearer token", func() {
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/attendance/status", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(errorCode(rec)).To(gomega.Equal(internal.ErrCodeMissingToken))
			gomega.Expect(reached.UserID).To(gomega.BeEmpty())
		})

		ginkgo.It("returns 401 for a rejected token", func() {
			svc.err = internal.ErrInvalidToken
			req := httptest.NewRequest(http.MethodGet, "/api/attendance/status", nil)
			req.Header.Set("Authorization", "Bearer broken")
			rec := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(errorCode(rec)).To(gomega.Equal(internal.ErrCodeInvalidToken))
		})

		ginkgo.It("attaches the principal for a valid token", func() {
			svc.principal = internal.Principal{UserID: "u-1", Username: "alice", Role: internal.RoleEmployee}
			req := httptest.NewRequest(http.MethodGet, "/api/attendance/status", nil)
			req.Header.Set("Authorization", "Bearer good")
			rec := httptest.NewRecorder()

			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(reached).To(gomega.Equal(svc.principal))
		})
	})

	ginkgo.Describe("RequireAdmin", func() {
		ginkgo.It("returns 403 for an employee", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			req = req.WithContext(internal.ContextWithPrincipal(req.Context(),
				internal.Principal{UserID: "u-1", Role: internal.RoleEmployee}))
			rec := httptest.NewRecorder()

			rbac.RequireAdmin()(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(errorCode(rec)).To(gomega.Equal(internal.ErrCodeAdminOnly))
		})

		ginkgo.It("passes an admin through", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
			req = req.WithContext(internal.ContextWithPrincipal(req.Context(),
				internal.Principal{UserID: "u-2", Role: internal.RoleAdmin}))
			rec := httptest.NewRecorder()

			rbac.RequireAdmin()(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
		})

		ginkgo.It("returns 401 when no principal is present", func() {
			rec := httptest.NewRecorder()
			rbac.RequireAdmin()(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("rejects a malformed body with 400", func() {
			rec := httptest.NewRecorder()
			handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{")))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(errorCode(rec)).To(gomega.Equal(internal.ErrCodeInvalidBody))
		})

		ginkgo.It("returns the token pair with a message", func() {
			svc.tokens = &auth.AuthTokens{AccessToken: "a", RefreshToken: "r"}
			rec := httptest.NewRecorder()
			handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
				strings.NewReader(`{"username":"alice","password":"secret"}`)))

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var body map[string]interface{}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("token", "a"))
			gomega.Expect(body).To(gomega.HaveKeyWithValue("message", "login successful"))
		})
	})
})
