package report

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal/attendance"
)

// Row is one attendance record with the owning employee's display fields.
type Row struct {
	ID           string            `json:"id" db:"id"`
	UserID       string            `json:"user_id" db:"user_id"`
	WorkDate     string            `json:"work_date" db:"work_date"`
	ClockIn      time.Time         `json:"clock_in" db:"clock_in"`
	ClockOut     *time.Time        `json:"clock_out" db:"clock_out"`
	Status       attendance.Status `json:"status" db:"status"`
	UserName     string            `json:"-" db:"user_name"`
	UserUsername string            `json:"-" db:"user_username"`
	User         Employee          `json:"user" db:"-"`
}

type Employee struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Filter bounds the report by clock_in. A nil bound means unbounded.
type Filter struct {
	From *time.Time
	To   *time.Time
}

func (f Filter) Bounded() bool {
	return f.From != nil && f.To != nil
}
