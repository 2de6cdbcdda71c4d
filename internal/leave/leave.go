package leave

import (
	"encoding/json"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseDecision accepts only the two administrator outcomes, spelled exactly.
func ParseDecision(s string) (Status, error) {
	switch Status(s) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	}
	return "", internal.ErrInvalidLeaveStatus
}

// Date is a calendar date rendered as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(validation.DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

type LeaveRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	Reason    string    `json:"reason"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Employee struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// ListEntry is a request with its owner's identity, for administrators.
type ListEntry struct {
	LeaveRequest
	User Employee `json:"user"`
}

func ToDataModel(l *LeaveRequest) *leaveDatamodel.LeaveRequest {
	return &leaveDatamodel.LeaveRequest{
		ID:        l.ID,
		UserID:    l.UserID,
		Type:      l.Type,
		StartDate: l.StartDate.Time,
		EndDate:   l.EndDate.Time,
		Reason:    l.Reason,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func FromDataModel(l *leaveDatamodel.LeaveRequest) *LeaveRequest {
	return &LeaveRequest{
		ID:        l.ID,
		UserID:    l.UserID,
		Type:      l.Type,
		StartDate: Date{l.StartDate},
		EndDate:   Date{l.EndDate},
		Reason:    l.Reason,
		Status:    Status(l.Status),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func FromListRow(row *leaveDatamodel.LeaveRequestWithUser) *ListEntry {
	return &ListEntry{
		LeaveRequest: *FromDataModel(&row.LeaveRequest),
		User: Employee{
			Name:     row.UserName,
			Username: row.UserUsername,
		},
	}
}
