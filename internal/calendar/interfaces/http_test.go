package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"timesheet-kpi/internal/calendar/application"
	calendar "timesheet-kpi/internal/calendar/domain"
	"timesheet-kpi/internal/calendar/infrastructure/memory"
)

func newTestHandler(t *testing.T) *CalendarHandler {
	t.Helper()
	service, err := application.NewCalendarService(memory.NewHolidayRepository(), log.Default())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	handler, err := NewCalendarHandler(service, log.Default())
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func TestCalendarFlow(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calendar/holidays", strings.NewReader(`{"date":"2025-01-07"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/calendar?year=2025&month=1", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var days []calendar.MonthDay
	if err := json.Unmarshal(rec.Body.Bytes(), &days); err != nil {
		t.Fatalf("decode month: %v", err)
	}
	if len(days) != 31 {
		t.Fatalf("expected 31 days, got %d", len(days))
	}
	if days[6].Kind != calendar.DayHoliday {
		t.Fatalf("expected day 7 to be a holiday, got %s", days[6].Kind)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/calendar/holidays/2025-01-07", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/calendar/holidays/2025-01-07", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a second delete, got %d", rec.Code)
	}
}

func TestCalendarBadInput(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/calendar?year=2025&month=13", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/calendar/holidays", strings.NewReader(`{"date":"07.01.2025"}`))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad date, got %d", rec.Code)
	}
}
