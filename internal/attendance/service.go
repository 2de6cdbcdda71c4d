package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	"github.com/frahmantamala/attendance-management/internal/core/events"
)

// RepositoryAPI is the record store the tracker needs. Find methods return
// (nil, nil) when nothing matches.
type RepositoryAPI interface {
	// FindLatestInWindow returns the newest record by clock_in whose clock_in is in [from, to).
	FindLatestInWindow(ctx context.Context, userID string, from, to time.Time) (*attendanceDatamodel.AttendanceRecord, error)
	// FindOpenInWindow returns a record with clock_in in [from, to) and no clock_out.
	FindOpenInWindow(ctx context.Context, userID string, from, to time.Time) (*attendanceDatamodel.AttendanceRecord, error)
	Create(ctx context.Context, record *attendanceDatamodel.AttendanceRecord) error
	// CloseSession sets clock_out on an open record; closing a closed record is ErrNoOpenSession.
	CloseSession(ctx context.Context, id string, clockOut time.Time) error
	ListByUser(ctx context.Context, userID string) ([]*attendanceDatamodel.AttendanceRecord, error)
}

// Policy fixes the calendar and the punctuality cutoff.
type Policy struct {
	Location *time.Location
	Cutoff   time.Duration
}

// DefaultCutoff is 07:46:00 local.
const DefaultCutoff = 7*time.Hour + 46*time.Minute

type Service struct {
	repo      RepositoryAPI
	clock     Clock
	policy    Policy
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, clock Clock, policy Policy, publisher events.Publisher, logger *slog.Logger) *Service {
	if policy.Location == nil {
		policy.Location = time.Local
	}
	if clock == nil {
		clock = NewSystemClock(policy.Location)
	}
	return &Service{
		repo:      repo,
		clock:     clock,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service) today() (time.Time, Window) {
	now := s.clock.Now().In(s.policy.Location)
	return now, DayWindow(now, s.policy.Location)
}

// ClockIn opens the caller's single session for today.
func (s *Service) ClockIn(ctx context.Context, employeeID string) (*Record, error) {
	now, window := s.today()

	existing, err := s.repo.FindLatestInWindow(ctx, employeeID, window.Start, window.End)
	if err != nil {
		s.logger.Error("failed to look up today's attendance", "error", err, "user_id", employeeID)
		return nil, internal.NewInternalError("failed to look up attendance", err)
	}
	if existing != nil {
		s.logger.Info("duplicate clock-in rejected", "user_id", employeeID, "record_id", existing.ID)
		return nil, internal.ErrAlreadyClockedIn
	}

	record := &Record{
		UserID:   employeeID,
		WorkDate: window.WorkDate(),
		ClockIn:  now,
		Status:   Classify(now, window, s.policy.Cutoff),
	}

	row := ToDataModel(record)
	if err := s.repo.Create(ctx, row); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create attendance record", "error", err, "user_id", employeeID)
		return nil, internal.NewInternalError("failed to create attendance record", err)
	}

	created := FromDataModel(row)
	s.logger.Info("clocked in", "user_id", employeeID, "record_id", created.ID, "status", created.Status)
	s.publish(ctx, events.NewAttendanceClockedInEvent(created.ID, employeeID, created.ClockIn, string(created.Status)))

	return created, nil
}

// ClockOut closes the open session whose clock-in falls in the current day.
func (s *Service) ClockOut(ctx context.Context, employeeID string) (*Record, error) {
	now, window := s.today()

	row, err := s.repo.FindOpenInWindow(ctx, employeeID, window.Start, window.End)
	if err != nil {
		s.logger.Error("failed to look up open session", "error", err, "user_id", employeeID)
		return nil, internal.NewInternalError("failed to look up attendance", err)
	}
	if row == nil {
		return nil, internal.ErrNoOpenSession
	}
	if now.Before(row.ClockIn) {
		return nil, internal.NewValidationError("clock-out cannot precede clock-in", internal.ErrCodeClockSkew)
	}

	if err := s.repo.CloseSession(ctx, row.ID, now); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to close session", "error", err, "record_id", row.ID)
		return nil, internal.NewInternalError("failed to update attendance record", err)
	}

	row.ClockOut = &now
	row.UpdatedAt = now
	updated := FromDataModel(row)
	s.logger.Info("clocked out", "user_id", employeeID, "record_id", updated.ID)
	s.publish(ctx, events.NewAttendanceClockedOutEvent(updated.ID, employeeID, updated.ClockIn, now))

	return updated, nil
}

func (s *Service) GetStatus(ctx context.Context, employeeID string) (*StatusView, error) {
	_, window := s.today()

	row, err := s.repo.FindLatestInWindow(ctx, employeeID, window.Start, window.End)
	if err != nil {
		s.logger.Error("failed to look up attendance status", "error", err, "user_id", employeeID)
		return nil, internal.NewInternalError("failed to look up attendance", err)
	}
	if row == nil {
		return &StatusView{State: StateOutside}, nil
	}

	record := FromDataModel(row)
	if record.IsOpen() {
		return &StatusView{State: StateInside, Record: record}, nil
	}
	return &StatusView{State: StateOutsideCompleted, Record: record}, nil
}

// ListHistory returns every record of the employee, newest clock-in first.
func (s *Service) ListHistory(ctx context.Context, employeeID string) ([]*Record, error) {
	rows, err := s.repo.ListByUser(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to list attendance history", "error", err, "user_id", employeeID)
		return nil, internal.NewInternalError("failed to list attendance", err)
	}

	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, FromDataModel(row))
	}
	return records, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
