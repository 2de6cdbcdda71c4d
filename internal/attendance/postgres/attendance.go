package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	"gorm.io/gorm"
)

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) first(query *gorm.DB) (*attendanceDatamodel.AttendanceRecord, error) {
	var rec attendanceDatamodel.AttendanceRecord
	err := query.Order("clock_in DESC").First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *AttendanceRepository) FindLatestInWindow(ctx context.Context, userID string, from, to time.Time) (*attendanceDatamodel.AttendanceRecord, error) {
	return r.first(r.db.WithContext(ctx).
		Where("user_id = ? AND clock_in >= ? AND clock_in < ?", userID, from, to))
}

func (r *AttendanceRepository) FindOpenInWindow(ctx context.Context, userID string, from, to time.Time) (*attendanceDatamodel.AttendanceRecord, error) {
	return r.first(r.db.WithContext(ctx).
		Where("user_id = ? AND clock_in >= ? AND clock_in < ? AND clock_out IS NULL", userID, from, to))
}

// Create relies on the (user_id, work_date) unique index to reject a racing
// second clock-in for the same day.
func (r *AttendanceRepository) Create(ctx context.Context, rec *attendanceDatamodel.AttendanceRecord) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrAlreadyClockedIn.WithCause(err)
	}
	return err
}

func (r *AttendanceRepository) CloseSession(ctx context.Context, id string, clockOut time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&attendanceDatamodel.AttendanceRecord{}).
		Where("id = ? AND clock_out IS NULL", id).
		Updates(map[string]interface{}{
			"clock_out":  clockOut,
			"updated_at": clockOut,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrNoOpenSession
	}
	return nil
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string) ([]*attendanceDatamodel.AttendanceRecord, error) {
	var records []*attendanceDatamodel.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("clock_in DESC").
		Find(&records).Error
	return records, err
}
