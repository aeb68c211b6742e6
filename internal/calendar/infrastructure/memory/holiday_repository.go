package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	calendar "timesheet-kpi/internal/calendar/domain"
)

// HolidayRepository is an in-memory holiday calendar for tests and runs
// without Postgres.
type HolidayRepository struct {
	mu    sync.RWMutex
	dates map[string]struct{}
}

// NewHolidayRepository constructs an empty calendar.
func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{dates: make(map[string]struct{})}
}

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Holidays returns the stored day numbers of one month in ascending order.
func (r *HolidayRepository) Holidays(ctx context.Context, year, month int) ([]int, error) {
	if err := calendar.ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []int
	for key := range r.dates {
		t, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		if t.Year() == year && int(t.Month()) == month {
			out = append(out, t.Day())
		}
	}
	sort.Ints(out)
	return out, nil
}

// Add stores one holiday date. Duplicates are a no-op.
func (r *HolidayRepository) Add(ctx context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dates[dateKey(date)] = struct{}{}
	return nil
}

// Remove deletes one holiday date.
func (r *HolidayRepository) Remove(ctx context.Context, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := dateKey(date)
	if _, ok := r.dates[key]; !ok {
		return calendar.ErrHolidayNotFound
	}
	delete(r.dates, key)
	return nil
}
