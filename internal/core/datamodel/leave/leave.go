package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRequest struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);not null;index"`
	Type      string    `gorm:"column:type;not null"`
	StartDate time.Time `gorm:"column:start_date;not null"`
	EndDate   time.Time `gorm:"column:end_date;not null"`
	Reason    string    `gorm:"column:reason;type:text;not null"`
	Status    string    `gorm:"column:status;type:varchar(16);not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func (l *LeaveRequest) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// LeaveRequestWithUser is the admin listing row.
type LeaveRequestWithUser struct {
	LeaveRequest
	UserName     string `gorm:"column:user_name"`
	UserUsername string `gorm:"column:user_username"`
}
