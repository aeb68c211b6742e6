package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"timesheet-kpi/internal/calendar/application"
	calendar "timesheet-kpi/internal/calendar/domain"
)

// CalendarHandler serves the production calendar under /api/v1/calendar.
type CalendarHandler struct {
	service *application.CalendarService
	logger  *log.Logger
}

// NewCalendarHandler constructs a handler.
func NewCalendarHandler(service *application.CalendarService, logger *log.Logger) (*CalendarHandler, error) {
	if service == nil {
		return nil, errors.New("calendar handler: nil service")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &CalendarHandler{service: service, logger: logger}, nil
}

// ServeHTTP routes calendar requests.
func (h *CalendarHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/v1/calendar" && r.Method == http.MethodGet {
		h.handleMonth(w, r)
		return
	}
	if r.URL.Path == "/api/v1/calendar/holidays" && r.Method == http.MethodPost {
		h.handleAdd(w, r)
		return
	}
	if date, ok := strings.CutPrefix(r.URL.Path, "/api/v1/calendar/holidays/"); ok && date != "" {
		if r.Method == http.MethodDelete {
			h.handleRemove(w, r, date)
			return
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *CalendarHandler) handleMonth(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	days, err := h.service.MonthView(r.Context(), year, month)
	if err != nil {
		respondCalendarError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(days)
}

func (h *CalendarHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := h.service.AddHoliday(r.Context(), req.Date); err != nil {
		respondCalendarError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CalendarHandler) handleRemove(w http.ResponseWriter, r *http.Request, date string) {
	if err := h.service.RemoveHoliday(r.Context(), date); err != nil {
		respondCalendarError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondCalendarError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidPeriod), errors.Is(err, calendar.ErrInvalidDate):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, calendar.ErrHolidayNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "calendar operation failed", http.StatusInternalServerError)
	}
}
