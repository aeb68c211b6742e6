package timesheet

import "testing"

func TestClassify(t *testing.T) {
	codes := DefaultCodes()
	cases := []struct {
		raw  string
		want CellClass
	}{
		{"", ClassDayOff},
		{"   ", ClassDayOff},
		{"В", ClassDayOff},
		{"в", ClassDayOff},
		{"-", ClassDayOff},
		{"8", ClassWorked},
		{"8,25", ClassWorked},
		{"24", ClassWorked},
		{"РВ", ClassWorkedHoliday},
		{"рп", ClassWorkedHoliday},
		{"О", ClassAbsence},
		{"Б", ClassAbsence},
		{"ЯЯ", ClassUnknown},
		{"x1", ClassUnknown},
	}
	for _, tc := range cases {
		if got := codes.Classify(tc.raw); got != tc.want {
			t.Fatalf("Classify(%q): expected %d, got %d", tc.raw, tc.want, got)
		}
	}
}

func TestClassifyCustomVocabulary(t *testing.T) {
	codes := CodeSet{
		DayOff:        []string{"X"},
		WorkedHoliday: []string{"H"},
		Absence:       []string{"A"},
	}
	if got := codes.Classify("x"); got != ClassDayOff {
		t.Fatalf("expected custom day-off code, got %d", got)
	}
	if got := codes.Classify("В"); got != ClassUnknown {
		t.Fatalf("replaced vocabulary must not recognize the default code, got %d", got)
	}
}
