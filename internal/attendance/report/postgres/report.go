package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/frahmantamala/attendance-management/internal/attendance/report"
)

const baseReportQuery = `SELECT a.id, a.user_id, a.work_date, a.clock_in, a.clock_out, a.status,
	u.name AS user_name, u.username AS user_username
FROM attendance_records a
JOIN users u ON u.id = a.user_id`

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ListWithUser(ctx context.Context, filter report.Filter) ([]*report.Row, error) {
	query := baseReportQuery
	var args []interface{}
	if filter.Bounded() {
		query += "\nWHERE a.clock_in >= $1 AND a.clock_in <= $2"
		args = append(args, *filter.From, *filter.To)
	}
	query += "\nORDER BY a.clock_in DESC"

	rows := []*report.Row{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
