package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	calendar "timesheet-kpi/internal/calendar/domain"
)

// HolidayRepository is the persistence port of the calendar service.
type HolidayRepository interface {
	Holidays(ctx context.Context, year, month int) ([]int, error)
	Add(ctx context.Context, date time.Time) error
	Remove(ctx context.Context, date time.Time) error
}

// CalendarService owns the production calendar used by calculations.
type CalendarService struct {
	repo   HolidayRepository
	logger *log.Logger
}

// NewCalendarService wires the calendar service.
func NewCalendarService(repo HolidayRepository, logger *log.Logger) (*CalendarService, error) {
	if repo == nil {
		return nil, errors.New("calendar service: nil repository")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CalendarService{repo: repo, logger: logger}, nil
}

// Holidays returns the stored holiday day numbers of one month.
func (s *CalendarService) Holidays(ctx context.Context, year, month int) ([]int, error) {
	return s.repo.Holidays(ctx, year, month)
}

// MonthView lists every day of the month with its kind.
func (s *CalendarService) MonthView(ctx context.Context, year, month int) ([]calendar.MonthDay, error) {
	if err := calendar.ValidatePeriod(year, month); err != nil {
		return nil, err
	}
	days, err := s.repo.Holidays(ctx, year, month)
	if err != nil {
		return nil, err
	}
	set := calendar.NewDaySet(year, month)
	for _, day := range days {
		set.Add(day)
	}
	return calendar.ListMonth(year, month, set), nil
}

// AddHoliday parses an ISO date and stores it.
func (s *CalendarService) AddHoliday(ctx context.Context, date string) error {
	t, err := parseISODate(date)
	if err != nil {
		return err
	}
	if err := s.repo.Add(ctx, t); err != nil {
		return err
	}
	s.logger.Printf("calendar add holiday %s", t.Format("2006-01-02"))
	return nil
}

// RemoveHoliday parses an ISO date and deletes it.
func (s *CalendarService) RemoveHoliday(ctx context.Context, date string) error {
	t, err := parseISODate(date)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, t); err != nil {
		return err
	}
	s.logger.Printf("calendar remove holiday %s", t.Format("2006-01-02"))
	return nil
}

func parseISODate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", calendar.ErrInvalidDate, date)
	}
	return t, nil
}
