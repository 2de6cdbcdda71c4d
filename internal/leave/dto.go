package leave

import (
	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
)

// CreateLeaveRequestDTO carries dates as strings so that missing and
// malformed values are reported as validation failures.
type CreateLeaveRequestDTO struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (d CreateLeaveRequestDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("type", d.Type).Required().MaxLength(64)
	v.Field("start_date", d.StartDate).Required().Date()
	v.Field("end_date", d.EndDate).Required().Date()
	v.Field("reason", d.Reason).Required().MaxLength(2000)
	return v.Validate()
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

type CreateLeaveRequestResponse struct {
	Message string        `json:"message"`
	Request *LeaveRequest `json:"request"`
}

type UpdateStatusResponse struct {
	Message string        `json:"message"`
	Request *LeaveRequest `json:"request"`
}
