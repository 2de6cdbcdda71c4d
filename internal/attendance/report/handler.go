package report

import (
	"context"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
)

type ServiceAPI interface {
	ParseFilter(startDate, endDate string) (Filter, error)
	List(ctx context.Context, principal internal.Principal, filter Filter) ([]*Row, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// GetAllRecords handles GET /admin/reports/all
func (h *Handler) GetAllRecords(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.Principal(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter, err := h.Service.ParseFilter(q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	rows, err := h.Service.List(r.Context(), principal, filter)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rows)
}
