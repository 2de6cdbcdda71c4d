package leave

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
	leaveDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/attendance-management/internal/core/events"
)

// ListOrder selects how the administrator listing ranks statuses.
type ListOrder string

const (
	// OrderLexical sorts status names alphabetically: APPROVED, PENDING, REJECTED.
	OrderLexical ListOrder = "lexical"
	// OrderPendingFirst ranks PENDING, APPROVED, REJECTED.
	OrderPendingFirst ListOrder = "pending_first"
)

type RepositoryAPI interface {
	Create(ctx context.Context, request *leaveDatamodel.LeaveRequest) error
	GetByID(ctx context.Context, id string) (*leaveDatamodel.LeaveRequest, error)
	// ListByUser orders by created_at desc.
	ListByUser(ctx context.Context, userID string) ([]*leaveDatamodel.LeaveRequest, error)
	// ListAllWithUser orders by status (per order) then created_at desc.
	ListAllWithUser(ctx context.Context, order ListOrder) ([]*leaveDatamodel.LeaveRequestWithUser, error)
	// UpdateStatus returns internal.ErrLeaveRequestNotFound for an unknown id.
	UpdateStatus(ctx context.Context, id string, status string, at time.Time) error
}

type Service struct {
	repo      RepositoryAPI
	order     ListOrder
	now       func() time.Time
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, order ListOrder, publisher events.Publisher, logger *slog.Logger) *Service {
	if order == "" {
		order = OrderLexical
	}
	return &Service{
		repo:      repo,
		order:     order,
		now:       time.Now,
		publisher: publisher,
		logger:    logger,
	}
}

// WithClock replaces the time source used for created_at and updated_at.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, employeeID string, dto CreateLeaveRequestDTO) (*LeaveRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	start, _ := validation.ParseDate(dto.StartDate)
	end, _ := validation.ParseDate(dto.EndDate)
	now := s.now()

	request := &LeaveRequest{
		UserID:    employeeID,
		Type:      dto.Type,
		StartDate: Date{start},
		EndDate:   Date{end},
		Reason:    dto.Reason,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	row := ToDataModel(request)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create leave request", "error", err, "user_id", employeeID)
		return nil, internal.NewInternalError("failed to create leave request", err)
	}

	created := FromDataModel(row)
	s.logger.Info("leave request created", "request_id", created.ID, "user_id", employeeID, "type", created.Type)
	s.publish(ctx, events.NewLeaveRequestCreatedEvent(created.ID, employeeID, created.Type, now))

	return created, nil
}

func (s *Service) ListMine(ctx context.Context, employeeID string) ([]*LeaveRequest, error) {
	rows, err := s.repo.ListByUser(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to list leave requests", "error", err, "user_id", employeeID)
		return nil, internal.NewInternalError("failed to list leave requests", err)
	}

	out := make([]*LeaveRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) ListAll(ctx context.Context, principal internal.Principal) ([]*ListEntry, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListAllWithUser(ctx, s.order)
	if err != nil {
		s.logger.Error("failed to list all leave requests", "error", err)
		return nil, internal.NewInternalError("failed to list leave requests", err)
	}

	out := make([]*ListEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromListRow(row))
	}
	return out, nil
}

// UpdateStatus overwrites the status regardless of its current value.
func (s *Service) UpdateStatus(ctx context.Context, principal internal.Principal, requestID string, status string) (*LeaveRequest, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}

	decision, err := ParseDecision(status)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		s.logger.Error("failed to load leave request", "error", err, "request_id", requestID)
		return nil, internal.NewInternalError("failed to load leave request", err)
	}
	if row == nil {
		return nil, internal.ErrLeaveRequestNotFound
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, requestID, string(decision), now); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update leave request", "error", err, "request_id", requestID)
		return nil, internal.NewInternalError("failed to update leave request", err)
	}

	previous := row.Status
	row.Status = string(decision)
	row.UpdatedAt = now
	updated := FromDataModel(row)

	s.logger.Info("leave request status updated",
		"request_id", requestID,
		"from", previous,
		"to", decision,
		"admin_id", principal.UserID)
	s.publish(ctx, events.NewLeaveRequestStatusChangedEvent(requestID, previous, string(decision), principal.UserID, now))

	return updated, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
