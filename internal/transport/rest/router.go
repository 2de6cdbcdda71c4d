package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/internal/attendance/report"
	"github.com/frahmantamala/attendance-management/internal/auth"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"github.com/frahmantamala/attendance-management/internal/transport/metrics"
	"github.com/frahmantamala/attendance-management/internal/transport/middleware"
	"github.com/frahmantamala/attendance-management/internal/transport/swagger"
	"github.com/frahmantamala/attendance-management/internal/user"
)

// RouterDeps collects everything the HTTP surface is built from. Nil handlers
// leave their routes unregistered.
type RouterDeps struct {
	Logger            *slog.Logger
	DB                Pinger
	AuthHandler       *auth.Handler
	RBAC              *auth.RBACAuthorization
	UserHandler       *user.Handler
	AttendanceHandler *attendance.Handler
	ReportHandler     *report.Handler
	LeaveHandler      *leave.Handler
	Metrics           *metrics.Metrics
	MetricsPath       string
	AllowedOrigins    []string
	LoginRateLimit    int
	Development       bool
}

func RegisterAllRoutes(router chi.Router, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID(deps.Logger))
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.SecureHeaders(deps.Development))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.Method(http.MethodGet, path, deps.Metrics.Handler())
	}

	router.Method(http.MethodGet, swagger.DocumentPath, swagger.DocumentHandler())
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)
		r.Get("/ping", healthHandler.Ping)

		if deps.AuthHandler == nil {
			return
		}

		r.Route("/auth", func(ar chi.Router) {
			if deps.UserHandler != nil {
				ar.Post("/register", deps.UserHandler.Register)
			}
			ar.With(middleware.RateLimitByIP(deps.LoginRateLimit, time.Minute)).
				Post("/login", deps.AuthHandler.Login)
			ar.Post("/refresh", deps.AuthHandler.RefreshToken)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)

			if deps.AttendanceHandler != nil {
				pr.Route("/attendance", func(ar chi.Router) {
					ar.Post("/clock-in", deps.AttendanceHandler.ClockIn)
					ar.Post("/clock-out", deps.AttendanceHandler.ClockOut)
					ar.Get("/status", deps.AttendanceHandler.GetStatus)
					ar.Get("/my-records", deps.AttendanceHandler.GetMyRecords)
				})
			}

			if deps.LeaveHandler != nil {
				pr.Get("/requests", deps.LeaveHandler.GetMyRequests)
				pr.Post("/requests", deps.LeaveHandler.CreateRequest)
			}

			if deps.UserHandler != nil {
				pr.Get("/users/me", deps.UserHandler.GetCurrentUser)
			}

			// Services re-check the role; the guard rejects before any body is read.
			pr.Route("/admin", func(adm chi.Router) {
				if deps.RBAC != nil {
					adm.Use(deps.RBAC.RequireAdmin())
				}
				if deps.UserHandler != nil {
					adm.Get("/users", deps.UserHandler.ListUsers)
					adm.Post("/users", deps.UserHandler.CreateUser)
				}
				if deps.ReportHandler != nil {
					adm.Get("/reports/all", deps.ReportHandler.GetAllRecords)
				}
				if deps.LeaveHandler != nil {
					adm.Get("/requests", deps.LeaveHandler.GetAllRequests)
					adm.Put("/requests/{id}", deps.LeaveHandler.UpdateRequestStatus)
				}
			})
		})
	})
}
