package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	calendar "timesheet-kpi/internal/calendar/domain"
	"timesheet-kpi/internal/observability/metrics"
	roster "timesheet-kpi/internal/roster/domain"
	timesheet "timesheet-kpi/internal/timesheet/domain"
	"timesheet-kpi/internal/timesheet/infrastructure/excel"
)

// RosterSource lists the active employees used for matching.
type RosterSource interface {
	ListActive(ctx context.Context) ([]roster.Employee, error)
}

// HolidaySource returns the stored holiday day numbers for a month.
type HolidaySource interface {
	Holidays(ctx context.Context, year, month int) ([]int, error)
}

// CalculateRequest carries one uploaded timesheet plus its period parameters.
type CalculateRequest struct {
	File      io.Reader
	Year      int
	Month     int
	NormDay   int
	NormShift int
	// Holidays optionally supplements the stored calendar with inline
	// tokens, either comma separated or a JSON array.
	Holidays string
}

// Report is the outcome of one calculation run.
type Report struct {
	UploadID string                 `json:"upload_id"`
	Year     int                    `json:"year"`
	Month    int                    `json:"month"`
	Results  []timesheet.CalcResult `json:"results"`
	Errors   []timesheet.CalcError  `json:"errors"`
}

// Service runs the parse, match and calculate pipeline.
type Service struct {
	rosterSrc  RosterSource
	holidaySrc HolidaySource
	codes      timesheet.CodeSet
	logger     *log.Logger
}

// NewService wires the calculation service.
func NewService(rosterSrc RosterSource, holidaySrc HolidaySource, codes timesheet.CodeSet, logger *log.Logger) (*Service, error) {
	if rosterSrc == nil {
		return nil, errors.New("timesheet service: nil roster source")
	}
	if holidaySrc == nil {
		return nil, errors.New("timesheet service: nil holiday source")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{rosterSrc: rosterSrc, holidaySrc: holidaySrc, codes: codes, logger: logger}, nil
}

// Calculate parses the uploaded workbook, matches rows against the roster and
// computes one result row per matched employee. Row-level findings are
// collected, never fatal; invalid period, norms or file format abort the run.
func (s *Service) Calculate(ctx context.Context, req CalculateRequest) (*Report, error) {
	start := time.Now()
	outcome := metrics.ResultSuccess
	defer func() {
		metrics.ObserveCalculate(outcome, time.Since(start))
	}()

	holidays, err := s.collectHolidays(ctx, req)
	if err != nil {
		outcome = metrics.ResultError
		return nil, err
	}

	calc, err := timesheet.NewCalculator(req.Year, req.Month, req.NormDay, req.NormShift, holidays, s.codes)
	if err != nil {
		outcome = metrics.ResultError
		return nil, err
	}

	reader := excel.NewReader(s.codes)
	rows, err := reader.Parse(req.File, req.Year, req.Month)
	if err != nil {
		outcome = metrics.ResultError
		metrics.IncParseError(parseReason(err))
		return nil, err
	}

	employees, err := s.rosterSrc.ListActive(ctx)
	if err != nil {
		outcome = metrics.ResultError
		return nil, fmt.Errorf("timesheet service: list roster: %w", err)
	}

	match := timesheet.MatchRoster(rows, employees)

	results, findings := calc.Calculate(match.Matched)
	report := &Report{
		UploadID: reader.UploadID(),
		Year:     req.Year,
		Month:    req.Month,
		Results:  results,
		Errors:   append(append([]timesheet.CalcError(nil), match.Errors...), findings...),
	}
	for _, e := range report.Errors {
		metrics.IncRowError(string(e.Kind))
	}

	s.logger.Printf("calculate upload=%s period=%04d-%02d rows=%d matched=%d results=%d errors=%d",
		report.UploadID, req.Year, req.Month, len(rows), len(match.Matched), len(report.Results), len(report.Errors))
	return report, nil
}

// collectHolidays merges the stored month calendar with inline tokens.
func (s *Service) collectHolidays(ctx context.Context, req CalculateRequest) (*calendar.DaySet, error) {
	if err := calendar.ValidatePeriod(req.Year, req.Month); err != nil {
		return nil, err
	}
	set := calendar.NewDaySet(req.Year, req.Month)

	stored, err := s.holidaySrc.Holidays(ctx, req.Year, req.Month)
	if err != nil {
		return nil, fmt.Errorf("timesheet service: load holidays: %w", err)
	}
	for _, day := range stored {
		set.Add(day)
	}

	for _, token := range splitHolidayTokens(req.Holidays) {
		if !set.AddToken(token) {
			s.logger.Printf("calculate: holiday token %q ignored for %04d-%02d", token, req.Year, req.Month)
		}
	}
	return set, nil
}

// splitHolidayTokens accepts either a JSON array or a comma separated list.
func splitHolidayTokens(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var values []json.Number
		if err := json.Unmarshal([]byte(raw), &values); err == nil {
			out := make([]string, 0, len(values))
			for _, v := range values {
				out = append(out, v.String())
			}
			return out
		}
		var strs []string
		if err := json.Unmarshal([]byte(raw), &strs); err == nil {
			return strs
		}
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseReason(err error) string {
	switch {
	case errors.Is(err, timesheet.ErrEmptyFile):
		return "empty_file"
	case errors.Is(err, timesheet.ErrBadFormat):
		return "bad_format"
	case errors.Is(err, calendar.ErrInvalidPeriod):
		return "invalid_period"
	default:
		return "unknown"
	}
}
