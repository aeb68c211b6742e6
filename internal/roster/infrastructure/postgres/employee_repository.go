package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	roster "timesheet-kpi/internal/roster/domain"
)

const defaultEmployeesTable = "employees"

// EmployeeRepository is a Postgres implementation of the roster store.
type EmployeeRepository struct {
	db    DBTX
	table string
}

// NewEmployeeRepository constructs a repository.
func NewEmployeeRepository(db DBTX, opts ...EmployeeOption) *EmployeeRepository {
	repo := &EmployeeRepository{db: db, table: defaultEmployeesTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// EmployeeOption configures the repository.
type EmployeeOption func(*EmployeeRepository)

// WithEmployeesTable overrides the default table name.
func WithEmployeesTable(table string) EmployeeOption {
	return func(repo *EmployeeRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

const employeeColumns = "id, full_name, kpi_base, schedule, department, category_code, created_at, updated_at, deleted_at, delete_reason"

// ListActive loads the employees visible to matching, newest last.
func (r *EmployeeRepository) ListActive(ctx context.Context) ([]roster.Employee, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("employee repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE deleted_at IS NULL
ORDER BY full_name ASC, id ASC`, employeeColumns, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// ListAll loads every employee, soft-deleted included.
func (r *EmployeeRepository) ListAll(ctx context.Context) ([]roster.Employee, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("employee repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
ORDER BY full_name ASC, id ASC`, employeeColumns, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// Get loads one employee by id.
func (r *EmployeeRepository) Get(ctx context.Context, id int64) (*roster.Employee, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("employee repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE id = $1
LIMIT 1`, employeeColumns, r.table)

	emp, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, roster.ErrEmployeeNotFound
		}
		return nil, err
	}
	return emp, nil
}

// Add inserts a new employee and fills in the assigned id.
func (r *EmployeeRepository) Add(ctx context.Context, emp *roster.Employee) error {
	if r == nil || r.db == nil {
		return errors.New("employee repo: nil db")
	}
	if emp == nil {
		return errors.New("employee repo: nil employee")
	}
	if err := emp.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (full_name, kpi_base, schedule, department, category_code)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`, r.table)

	return r.db.QueryRowContext(ctx, query,
		emp.FullName, emp.KPIBase, string(emp.Schedule), emp.Department, emp.CategoryCode,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

// Update rewrites the mutable employee fields.
func (r *EmployeeRepository) Update(ctx context.Context, emp *roster.Employee) error {
	if r == nil || r.db == nil {
		return errors.New("employee repo: nil db")
	}
	if emp == nil {
		return errors.New("employee repo: nil employee")
	}
	if err := emp.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
UPDATE %s
SET full_name = $2,
	kpi_base = $3,
	schedule = $4,
	department = $5,
	category_code = $6,
	updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL`, r.table)

	res, err := r.db.ExecContext(ctx, query,
		emp.ID, emp.FullName, emp.KPIBase, string(emp.Schedule), emp.Department, emp.CategoryCode)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// SoftDelete hides an employee from matching, keeping the row and the reason.
func (r *EmployeeRepository) SoftDelete(ctx context.Context, id int64, reason string) error {
	if r == nil || r.db == nil {
		return errors.New("employee repo: nil db")
	}

	query := fmt.Sprintf(`
UPDATE %s
SET deleted_at = NOW(),
	delete_reason = $2,
	updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL`, r.table)

	res, err := r.db.ExecContext(ctx, query, id, reason)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Restore brings a soft-deleted employee back.
func (r *EmployeeRepository) Restore(ctx context.Context, id int64) error {
	if r == nil || r.db == nil {
		return errors.New("employee repo: nil db")
	}

	query := fmt.Sprintf(`
UPDATE %s
SET deleted_at = NULL,
	delete_reason = '',
	updated_at = NOW()
WHERE id = $1 AND deleted_at IS NOT NULL`, r.table)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return roster.ErrEmployeeNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*roster.Employee, error) {
	var (
		emp       roster.Employee
		schedule  string
		deletedAt sql.NullTime
		reason    sql.NullString
	)
	if err := row.Scan(
		&emp.ID,
		&emp.FullName,
		&emp.KPIBase,
		&schedule,
		&emp.Department,
		&emp.CategoryCode,
		&emp.CreatedAt,
		&emp.UpdatedAt,
		&deletedAt,
		&reason,
	); err != nil {
		return nil, err
	}
	emp.Schedule = roster.ParseScheduleKind(schedule)
	emp.CreatedAt = emp.CreatedAt.UTC()
	emp.UpdatedAt = emp.UpdatedAt.UTC()
	if deletedAt.Valid {
		emp.DeletedAt = deletedAt.Time.UTC()
	} else {
		emp.DeletedAt = time.Time{}
	}
	emp.DeleteReason = reason.String
	return &emp, nil
}

func scanEmployees(rows *sql.Rows) ([]roster.Employee, error) {
	var out []roster.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}
