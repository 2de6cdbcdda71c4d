package transport

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response with a status-derived error type.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	appErr := &internal.AppError{StatusCode: status, Message: message}
	switch status {
	case http.StatusBadRequest:
		appErr.Type, appErr.Code = internal.ErrorTypeValidation, internal.ErrCodeValidationFailed
	case http.StatusUnauthorized:
		appErr.Type, appErr.Code = internal.ErrorTypeUnauthorized, internal.ErrCodeInvalidToken
	case http.StatusForbidden:
		appErr.Type, appErr.Code = internal.ErrorTypeForbidden, internal.ErrCodeAdminOnly
	case http.StatusNotFound:
		appErr.Type, appErr.Code = internal.ErrorTypeNotFound, "NOT_FOUND"
	case http.StatusConflict:
		appErr.Type, appErr.Code = internal.ErrorTypeConflict, "CONFLICT"
	default:
		appErr.Type, appErr.Code = internal.ErrorTypeInternal, internal.ErrCodeInternal
	}
	h.WriteAppError(w, appErr)
}

// WriteAppError renders err. Anything that is not an *internal.AppError is
// treated as unexpected and logged with its cause.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		appErr = internal.NewInternalError("unexpected error", err)
	}

	if appErr.Type == internal.ErrorTypeInternal {
		h.Logger.Error("internal error", "error", err)
	} else {
		h.Logger.Debug("request rejected", "status", appErr.StatusCode, "code", appErr.Code, "error", err)
	}

	status, body := appErr.ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// DecodeJSON decodes the request body into dst.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return internal.NewValidationError("request body is required", internal.ErrCodeInvalidBody)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return internal.NewValidationError("request body is required", internal.ErrCodeInvalidBody)
		}
		return internal.NewValidationError("invalid request body", internal.ErrCodeInvalidBody)
	}
	return nil
}

// Principal returns the authenticated caller, writing a 401 when absent.
func (h *BaseHandler) Principal(w http.ResponseWriter, r *http.Request) (internal.Principal, bool) {
	p, ok := internal.PrincipalFromContext(r.Context())
	if !ok || p.UserID == "" {
		h.WriteAppError(w, internal.ErrMissingToken)
		return internal.Principal{}, false
	}
	return p, true
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(prefix):])
}
