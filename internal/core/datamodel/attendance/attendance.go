package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRecord is one clock-in/clock-out pair. WorkDate is the local
// calendar day of ClockIn; (user_id, work_date) is unique.
type AttendanceRecord struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:idx_attendance_user_day,priority:1"`
	WorkDate  string     `gorm:"column:work_date;type:varchar(10);not null;uniqueIndex:idx_attendance_user_day,priority:2"`
	ClockIn   time.Time  `gorm:"column:clock_in;not null;index"`
	ClockOut  *time.Time `gorm:"column:clock_out"`
	Status    string     `gorm:"column:status;type:varchar(16);not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

func (a *AttendanceRecord) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
