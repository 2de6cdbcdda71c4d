package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
)

type RepositoryAPI interface {
	// ListWithUser orders by clock_in desc. An unbounded filter returns every record.
	ListWithUser(ctx context.Context, filter Filter) ([]*Row, error)
}

type Service struct {
	repo     RepositoryAPI
	location *time.Location
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, location *time.Location, logger *slog.Logger) *Service {
	if location == nil {
		location = time.Local
	}
	return &Service{repo: repo, location: location, logger: logger}
}

// ParseFilter turns the optional start_date/end_date query values into an
// inclusive local range. The range only applies when both are present.
func (s *Service) ParseFilter(startDate, endDate string) (Filter, error) {
	if startDate == "" || endDate == "" {
		return Filter{}, nil
	}

	start, err := s.localDay(startDate, "start_date")
	if err != nil {
		return Filter{}, err
	}
	end, err := s.localDay(endDate, "end_date")
	if err != nil {
		return Filter{}, err
	}

	to := end.AddDate(0, 0, 1).Add(-time.Millisecond)
	return Filter{From: &start, To: &to}, nil
}

func (s *Service) localDay(value, field string) (time.Time, error) {
	d, err := validation.ParseDate(value)
	if err != nil {
		return time.Time{}, internal.NewValidationFieldError(field, field+" must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, s.location), nil
}

func (s *Service) List(ctx context.Context, principal internal.Principal, filter Filter) ([]*Row, error) {
	if err := principal.RequireAdmin(); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListWithUser(ctx, filter)
	if err != nil {
		s.logger.Error("failed to build attendance report", "error", err)
		return nil, internal.NewInternalError("failed to build attendance report", err)
	}

	if rows == nil {
		rows = []*Row{}
	}
	for _, row := range rows {
		row.User = Employee{Name: row.UserName, Username: row.UserUsername}
	}
	return rows, nil
}
