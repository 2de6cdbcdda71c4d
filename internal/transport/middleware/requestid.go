package middleware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/frahmantamala/attendance-management/pkg/logger"
)

const TraceHeader = "X-Trace-ID"

// RequestID tags the request with a trace id, echoes it back, and stores a
// logger carrying it in the context. Runs after chi's RequestID so both ids
// are logged.
func RequestID(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			fields := []any{"trace_id", traceID}
			if reqID := middleware.GetReqID(r.Context()); reqID != "" {
				fields = append(fields, "request_id", reqID)
			}
			ctx := logger.Into(r.Context(), base.With(fields...))

			w.Header().Set(TraceHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
