package calendar

import (
	"errors"
	"testing"
)

func TestValidatePeriod(t *testing.T) {
	if err := ValidatePeriod(2025, 7); err != nil {
		t.Fatalf("expected valid period, got %v", err)
	}
	for _, tc := range [][2]int{{1999, 1}, {2101, 1}, {2025, 0}, {2025, 13}} {
		if err := ValidatePeriod(tc[0], tc[1]); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod for %v, got %v", tc, err)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2025, 2); got != 28 {
		t.Fatalf("expected 28 days, got %d", got)
	}
	if got := DaysInMonth(2024, 2); got != 29 {
		t.Fatalf("expected 29 days in a leap year, got %d", got)
	}
	if got := DaysInMonth(2025, 7); got != 31 {
		t.Fatalf("expected 31 days, got %d", got)
	}
}

func TestDaySetTokens(t *testing.T) {
	set := NewDaySet(2025, 1)

	if !set.AddToken("7") {
		t.Fatalf("bare day token rejected")
	}
	if !set.AddToken("2025-01-02") {
		t.Fatalf("iso date token rejected")
	}
	if !set.AddToken("2025-01-03T00:00:00") {
		t.Fatalf("iso datetime token rejected")
	}
	if set.AddToken("2025-02-01") {
		t.Fatalf("date outside the period must be ignored")
	}
	if set.AddToken("41") {
		t.Fatalf("day outside the month must be ignored")
	}
	if set.AddToken("abc") {
		t.Fatalf("garbage token must be ignored")
	}

	want := []int{2, 3, 7}
	got := set.Days()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestClassify(t *testing.T) {
	set := NewDaySet(2025, 1)
	set.Add(7)

	// 2025-01-07 is a Tuesday; the holiday wins over the weekday.
	if got := Classify(2025, 1, 7, set); got != DayHoliday {
		t.Fatalf("expected holiday, got %s", got)
	}
	if got := Classify(2025, 1, 4, set); got != DaySaturday {
		t.Fatalf("expected saturday, got %s", got)
	}
	if got := Classify(2025, 1, 5, set); got != DaySunday {
		t.Fatalf("expected sunday, got %s", got)
	}
	if got := Classify(2025, 1, 6, set); got != DayWorkday {
		t.Fatalf("expected workday, got %s", got)
	}
	if got := Classify(2025, 1, 6, nil); got != DayWorkday {
		t.Fatalf("nil set: expected workday, got %s", got)
	}
}

func TestListMonth(t *testing.T) {
	set := NewDaySet(2025, 1)
	set.Add(1)

	days := ListMonth(2025, 1, set)
	if len(days) != 31 {
		t.Fatalf("expected 31 entries, got %d", len(days))
	}
	if days[0].Kind != DayHoliday || !days[0].IsRest {
		t.Fatalf("expected day 1 to be a rest holiday, got %+v", days[0])
	}
	if days[0].Date != "2025-01-01" {
		t.Fatalf("unexpected date %s", days[0].Date)
	}
}
