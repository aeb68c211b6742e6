package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	roster "timesheet-kpi/internal/roster/domain"
)

// EmployeeRepository is an in-memory roster store for tests and single-node
// runs without Postgres.
type EmployeeRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]roster.Employee
}

// NewEmployeeRepository constructs an empty store.
func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{nextID: 1, items: make(map[int64]roster.Employee)}
}

// ListActive returns non-deleted employees ordered by id.
func (r *EmployeeRepository) ListActive(ctx context.Context) ([]roster.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []roster.Employee
	for _, emp := range r.items {
		if !emp.Deleted() {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListAll returns every employee ordered by id, soft-deleted included.
func (r *EmployeeRepository) ListAll(ctx context.Context) ([]roster.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]roster.Employee, 0, len(r.items))
	for _, emp := range r.items {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get returns one employee by id.
func (r *EmployeeRepository) Get(ctx context.Context, id int64) (*roster.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	emp, ok := r.items[id]
	if !ok {
		return nil, roster.ErrEmployeeNotFound
	}
	return &emp, nil
}

// Add stores a new employee and assigns its id.
func (r *EmployeeRepository) Add(ctx context.Context, emp *roster.Employee) error {
	if err := emp.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	emp.ID = r.nextID
	r.nextID++
	emp.CreatedAt = now
	emp.UpdatedAt = now
	r.items[emp.ID] = *emp
	return nil
}

// Update rewrites the mutable fields of an active employee.
func (r *EmployeeRepository) Update(ctx context.Context, emp *roster.Employee) error {
	if err := emp.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[emp.ID]
	if !ok || stored.Deleted() {
		return roster.ErrEmployeeNotFound
	}
	stored.FullName = emp.FullName
	stored.KPIBase = emp.KPIBase
	stored.Schedule = emp.Schedule
	stored.Department = emp.Department
	stored.CategoryCode = emp.CategoryCode
	stored.UpdatedAt = time.Now().UTC()
	r.items[emp.ID] = stored
	return nil
}

// SoftDelete hides an active employee.
func (r *EmployeeRepository) SoftDelete(ctx context.Context, id int64, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok || stored.Deleted() {
		return roster.ErrEmployeeNotFound
	}
	now := time.Now().UTC()
	stored.DeletedAt = now
	stored.DeleteReason = reason
	stored.UpdatedAt = now
	r.items[id] = stored
	return nil
}

// Restore brings a soft-deleted employee back.
func (r *EmployeeRepository) Restore(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok || !stored.Deleted() {
		return roster.ErrEmployeeNotFound
	}
	stored.DeletedAt = time.Time{}
	stored.DeleteReason = ""
	stored.UpdatedAt = time.Now().UTC()
	r.items[id] = stored
	return nil
}
