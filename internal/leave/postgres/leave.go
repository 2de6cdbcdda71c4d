package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/attendance-management/internal/leave"
	"gorm.io/gorm"
)

const pendingFirstRank = "CASE leave_requests.status WHEN 'PENDING' THEN 0 WHEN 'APPROVED' THEN 1 ELSE 2 END ASC"

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) leave.RepositoryAPI {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(ctx context.Context, request *leaveDatamodel.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *LeaveRepository) GetByID(ctx context.Context, id string) (*leaveDatamodel.LeaveRequest, error) {
	var request leaveDatamodel.LeaveRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *LeaveRepository) ListByUser(ctx context.Context, userID string) ([]*leaveDatamodel.LeaveRequest, error) {
	var requests []*leaveDatamodel.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *LeaveRepository) ListAllWithUser(ctx context.Context, order leave.ListOrder) ([]*leaveDatamodel.LeaveRequestWithUser, error) {
	query := r.db.WithContext(ctx).
		Table("leave_requests").
		Select("leave_requests.*, users.name AS user_name, users.username AS user_username").
		Joins("JOIN users ON users.id = leave_requests.user_id")

	if order == leave.OrderPendingFirst {
		query = query.Order(pendingFirstRank)
	} else {
		query = query.Order("leave_requests.status ASC")
	}

	var rows []*leaveDatamodel.LeaveRequestWithUser
	err := query.Order("leave_requests.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, status string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&leaveDatamodel.LeaveRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrLeaveRequestNotFound
	}
	return nil
}
