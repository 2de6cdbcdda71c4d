package auth

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
)

// RBACAuthorization gates routes on the role carried by the principal.
type RBACAuthorization struct {
	base   *transport.BaseHandler
	logger *slog.Logger
}

func NewRBACAuthorization(base *transport.BaseHandler, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{base: base, logger: logger}
}

func (ra *RBACAuthorization) RequireRole(roles ...internal.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok || principal.UserID == "" {
				ra.logger.WarnContext(r.Context(), "authorization check failed: no principal in context")
				ra.base.WriteAppError(w, internal.ErrMissingToken)
				return
			}

			if !slices.Contains(roles, principal.Role) {
				ra.logger.WarnContext(r.Context(), "access denied: role not permitted",
					"user_id", principal.UserID,
					"role", principal.Role,
					"path", r.URL.Path)
				ra.base.WriteAppError(w, internal.ErrAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(internal.RoleAdmin)
}
