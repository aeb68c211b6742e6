package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	calendar "timesheet-kpi/internal/calendar/domain"
)

const defaultHolidaysTable = "holidays"

// HolidayRepository is a Postgres implementation of the holiday calendar.
type HolidayRepository struct {
	db    *sql.DB
	table string
}

// NewHolidayRepository constructs a repository.
func NewHolidayRepository(db *sql.DB, opts ...HolidayOption) *HolidayRepository {
	repo := &HolidayRepository{db: db, table: defaultHolidaysTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// HolidayOption configures the repository.
type HolidayOption func(*HolidayRepository)

// WithHolidaysTable overrides the table name.
func WithHolidaysTable(table string) HolidayOption {
	return func(repo *HolidayRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Holidays returns the stored holiday day numbers of one month.
func (r *HolidayRepository) Holidays(ctx context.Context, year, month int) ([]int, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("holiday repo: nil db")
	}
	if err := calendar.ValidatePeriod(year, month); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT EXTRACT(DAY FROM day)::int
FROM %s
WHERE day >= $1 AND day < $2
ORDER BY day ASC`, r.table)

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, rows.Err()
}

// Add stores one holiday date. Duplicate dates are a no-op.
func (r *HolidayRepository) Add(ctx context.Context, date time.Time) error {
	if r == nil || r.db == nil {
		return errors.New("holiday repo: nil db")
	}

	query := fmt.Sprintf(`
INSERT INTO %s (day)
VALUES ($1)
ON CONFLICT (day) DO NOTHING`, r.table)

	_, err := r.db.ExecContext(ctx, query, date.UTC().Truncate(24*time.Hour))
	return err
}

// Remove deletes one holiday date.
func (r *HolidayRepository) Remove(ctx context.Context, date time.Time) error {
	if r == nil || r.db == nil {
		return errors.New("holiday repo: nil db")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE day = $1`, r.table)

	res, err := r.db.ExecContext(ctx, query, date.UTC().Truncate(24*time.Hour))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return calendar.ErrHolidayNotFound
	}
	return nil
}
