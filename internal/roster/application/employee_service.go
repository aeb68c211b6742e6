package application

import (
	"context"
	"errors"
	"log"
	"strings"

	"timesheet-kpi/internal/observability/metrics"
	roster "timesheet-kpi/internal/roster/domain"
)

// EmployeeRepository is the persistence port of the roster service.
type EmployeeRepository interface {
	ListActive(ctx context.Context) ([]roster.Employee, error)
	ListAll(ctx context.Context) ([]roster.Employee, error)
	Get(ctx context.Context, id int64) (*roster.Employee, error)
	Add(ctx context.Context, emp *roster.Employee) error
	Update(ctx context.Context, emp *roster.Employee) error
	SoftDelete(ctx context.Context, id int64, reason string) error
	Restore(ctx context.Context, id int64) error
}

// EmployeeService owns roster reads and mutations.
type EmployeeService struct {
	repo   EmployeeRepository
	logger *log.Logger
}

// NewEmployeeService wires the roster service.
func NewEmployeeService(repo EmployeeRepository, logger *log.Logger) (*EmployeeService, error) {
	if repo == nil {
		return nil, errors.New("roster service: nil repository")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &EmployeeService{repo: repo, logger: logger}, nil
}

// ListActive returns the employees used for matching.
func (s *EmployeeService) ListActive(ctx context.Context) ([]roster.Employee, error) {
	return s.repo.ListActive(ctx)
}

// ListAll returns every employee, soft-deleted included.
func (s *EmployeeService) ListAll(ctx context.Context) ([]roster.Employee, error) {
	return s.repo.ListAll(ctx)
}

// Get returns one employee by id.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*roster.Employee, error) {
	return s.repo.Get(ctx, id)
}

// Add creates an employee after normalizing whitespace in the name.
func (s *EmployeeService) Add(ctx context.Context, emp *roster.Employee) error {
	if emp == nil {
		return errors.New("roster service: nil employee")
	}
	emp.FullName = strings.Join(strings.Fields(emp.FullName), " ")
	if err := s.repo.Add(ctx, emp); err != nil {
		return err
	}
	metrics.IncRosterMutation("add")
	s.logger.Printf("roster add id=%d name=%q", emp.ID, emp.FullName)
	return nil
}

// Edit updates the mutable fields of an active employee.
func (s *EmployeeService) Edit(ctx context.Context, emp *roster.Employee) error {
	if emp == nil {
		return errors.New("roster service: nil employee")
	}
	emp.FullName = strings.Join(strings.Fields(emp.FullName), " ")
	if err := s.repo.Update(ctx, emp); err != nil {
		return err
	}
	metrics.IncRosterMutation("edit")
	s.logger.Printf("roster edit id=%d name=%q", emp.ID, emp.FullName)
	return nil
}

// Delete hides an employee from future calculations. The reason is kept for
// the audit trail.
func (s *EmployeeService) Delete(ctx context.Context, id int64, reason string) error {
	if err := s.repo.SoftDelete(ctx, id, reason); err != nil {
		return err
	}
	metrics.IncRosterMutation("delete")
	s.logger.Printf("roster delete id=%d reason=%q", id, reason)
	return nil
}

// Restore brings a soft-deleted employee back into matching.
func (s *EmployeeService) Restore(ctx context.Context, id int64) error {
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	metrics.IncRosterMutation("restore")
	s.logger.Printf("roster restore id=%d", id)
	return nil
}
