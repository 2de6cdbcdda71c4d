package leave

import (
	"context"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, employeeID string, dto CreateLeaveRequestDTO) (*LeaveRequest, error)
	ListMine(ctx context.Context, employeeID string) ([]*LeaveRequest, error)
	ListAll(ctx context.Context, principal internal.Principal) ([]*ListEntry, error)
	UpdateStatus(ctx context.Context, principal internal.Principal, requestID string, status string) (*LeaveRequest, error)
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

// GetMyRequests handles GET /requests
func (h *Handler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	requests, err := h.Service.ListMine(r.Context(), principal.UserID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, requests)
}

// CreateRequest handles POST /requests
func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto CreateLeaveRequestDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	request, err := h.Service.Create(r.Context(), principal.UserID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, CreateLeaveRequestResponse{
		Message: "leave request created",
		Request: request,
	})
}

// GetAllRequests handles GET /admin/requests
func (h *Handler) GetAllRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	entries, err := h.Service.ListAll(r.Context(), principal)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entries)
}

// UpdateRequestStatus handles PUT /admin/requests/{id}
func (h *Handler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	var dto UpdateStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	request, err := h.Service.UpdateStatus(r.Context(), principal, chi.URLParam(r, "id"), dto.Status)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, UpdateStatusResponse{
		Message: "leave request updated",
		Request: request,
	})
}
