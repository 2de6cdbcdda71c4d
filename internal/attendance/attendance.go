package attendance

import (
	"time"

	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
)

// Status is the punctuality classification fixed at clock-in.
type Status string

const (
	StatusOnTime Status = "ON_TIME"
	StatusLate   Status = "LATE"
)

// SessionState is the caller's position within today's window.
type SessionState string

const (
	StateOutside          SessionState = "OUTSIDE"
	StateInside           SessionState = "INSIDE"
	StateOutsideCompleted SessionState = "OUTSIDE_COMPLETED"
)

type Record struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	WorkDate  string     `json:"work_date"`
	ClockIn   time.Time  `json:"clock_in"`
	ClockOut  *time.Time `json:"clock_out"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsOpen reports whether the session has not been clocked out.
func (r *Record) IsOpen() bool {
	return r.ClockOut == nil
}

type StatusView struct {
	State  SessionState `json:"status"`
	Record *Record      `json:"record,omitempty"`
}

// Window is the local calendar day [Start, End) used for attendance lookups.
// End is 23:59:59.999 of the same day.
type Window struct {
	Start time.Time
	End   time.Time
}

const workDateLayout = "2006-01-02"

func DayWindow(now time.Time, loc *time.Location) Window {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{
		Start: start,
		End:   start.AddDate(0, 0, 1).Add(-time.Millisecond),
	}
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) WorkDate() string {
	return w.Start.Format(workDateLayout)
}

// OnTimeLimit is the window's start at the cutoff wall-clock time.
func (w Window) OnTimeLimit(cutoff time.Duration) time.Time {
	h := int(cutoff / time.Hour)
	m := int(cutoff % time.Hour / time.Minute)
	s := int(cutoff % time.Minute / time.Second)
	return time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), h, m, s, 0, w.Start.Location())
}

// Classify is Late only when now is strictly after the on-time limit.
func Classify(now time.Time, w Window, cutoff time.Duration) Status {
	if now.After(w.OnTimeLimit(cutoff)) {
		return StatusLate
	}
	return StatusOnTime
}

func ToDataModel(r *Record) *attendanceDatamodel.AttendanceRecord {
	return &attendanceDatamodel.AttendanceRecord{
		ID:        r.ID,
		UserID:    r.UserID,
		WorkDate:  r.WorkDate,
		ClockIn:   r.ClockIn,
		ClockOut:  r.ClockOut,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func FromDataModel(r *attendanceDatamodel.AttendanceRecord) *Record {
	return &Record{
		ID:        r.ID,
		UserID:    r.UserID,
		WorkDate:  r.WorkDate,
		ClockIn:   r.ClockIn,
		ClockOut:  r.ClockOut,
		Status:    Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
