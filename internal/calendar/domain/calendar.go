package calendar

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// DayKind classifies one calendar day of the evaluated month.
type DayKind string

const (
	DayWorkday  DayKind = "workday"
	DaySaturday DayKind = "saturday"
	DaySunday   DayKind = "sunday"
	DayHoliday  DayKind = "holiday"
)

// ValidatePeriod checks the year/month pair used for a calculation.
func ValidatePeriod(year, month int) error {
	if year < 2000 || year > 2100 {
		return ErrInvalidPeriod
	}
	if month < 1 || month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaySet is the deduplicated holiday set for one evaluated month.
type DaySet struct {
	year  int
	month int
	days  map[int]struct{}
}

// NewDaySet constructs an empty set for the given period.
func NewDaySet(year, month int) *DaySet {
	return &DaySet{year: year, month: month, days: make(map[int]struct{})}
}

// Add marks a day of the month as a holiday. Days outside the month are
// ignored and reported as false.
func (s *DaySet) Add(day int) bool {
	if day < 1 || day > DaysInMonth(s.year, s.month) {
		return false
	}
	s.days[day] = struct{}{}
	return true
}

// AddDate marks a holiday only when the date falls inside the set's period.
func (s *DaySet) AddDate(t time.Time) bool {
	if t.Year() != s.year || int(t.Month()) != s.month {
		return false
	}
	return s.Add(t.Day())
}

// AddToken accepts either an ISO date (any year/month; only matching dates
// are taken) or a bare day number, mirroring the inline-holiday inputs the
// upload form sends.
func (s *DaySet) AddToken(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	if strings.Contains(token, "-") {
		// Strip a trailing time part if present.
		if idx := strings.IndexByte(token, 'T'); idx > 0 {
			token = token[:idx]
		}
		t, err := time.Parse("2006-01-02", token)
		if err != nil {
			return false
		}
		return s.AddDate(t)
	}
	day, err := strconv.Atoi(token)
	if err != nil {
		return false
	}
	return s.Add(day)
}

// Contains reports whether a day of the month is a holiday.
func (s *DaySet) Contains(day int) bool {
	if s == nil {
		return false
	}
	_, ok := s.days[day]
	return ok
}

// Days returns the holiday days in ascending order.
func (s *DaySet) Days() []int {
	out := make([]int, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of holidays in the set.
func (s *DaySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.days)
}

// Classify returns the kind of one day of the month. Holidays win over the
// weekday, so an engine can treat them uniformly regardless of which weekday
// they fall on.
func Classify(year, month, day int, holidays *DaySet) DayKind {
	if holidays.Contains(day) {
		return DayHoliday
	}
	switch time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday() {
	case time.Saturday:
		return DaySaturday
	case time.Sunday:
		return DaySunday
	default:
		return DayWorkday
	}
}

// MonthDay describes one day of a month for calendar listings.
type MonthDay struct {
	Date    string  `json:"date"`
	Day     int     `json:"day"`
	Kind    DayKind `json:"kind"`
	Weekday int     `json:"weekday"`
	IsRest  bool    `json:"is_rest"`
}

// ListMonth enumerates all days of the month with their kinds.
func ListMonth(year, month int, holidays *DaySet) []MonthDay {
	n := DaysInMonth(year, month)
	out := make([]MonthDay, 0, n)
	for day := 1; day <= n; day++ {
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		kind := Classify(year, month, day, holidays)
		out = append(out, MonthDay{
			Date:    date.Format("2006-01-02"),
			Day:     day,
			Kind:    kind,
			Weekday: int(date.Weekday()),
			IsRest:  kind != DayWorkday,
		})
	}
	return out
}
