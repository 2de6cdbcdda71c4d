package attendance

import (
	"context"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal/transport"
)

type ServiceAPI interface {
	ClockIn(ctx context.Context, employeeID string) (*Record, error)
	ClockOut(ctx context.Context, employeeID string) (*Record, error)
	GetStatus(ctx context.Context, employeeID string) (*StatusView, error)
	ListHistory(ctx context.Context, employeeID string) ([]*Record, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ClockIn handles POST /attendance/clock-in
func (h *Handler) ClockIn(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	record, err := h.Service.ClockIn(r.Context(), principal.UserID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ClockResponse{Message: "clock-in recorded", Record: record})
}

// ClockOut handles POST /attendance/clock-out
func (h *Handler) ClockOut(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	record, err := h.Service.ClockOut(r.Context(), principal.UserID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ClockResponse{Message: "clock-out recorded", Record: record})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	view, err := h.Service.GetStatus(r.Context(), principal.UserID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	records, err := h.Service.ListHistory(r.Context(), principal.UserID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}
