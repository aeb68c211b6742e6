package application

import (
	"os"
	"path/filepath"
	"testing"

	timesheet "timesheet-kpi/internal/timesheet/domain"
)

func TestLoadCodesDefaults(t *testing.T) {
	codes, err := LoadCodes("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if codes.Classify("РВ") != timesheet.ClassWorkedHoliday {
		t.Fatalf("default vocabulary missing РВ")
	}
}

func TestLoadCodesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.yaml")
	content := []byte("codes:\n  worked_holiday: [\"ПР\"]\n  absence: [\"Х\"]\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	codes, err := LoadCodes(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if codes.Classify("ПР") != timesheet.ClassWorkedHoliday {
		t.Fatalf("override not applied")
	}
	if codes.Classify("РВ") != timesheet.ClassUnknown {
		t.Fatalf("replaced list must drop the default code")
	}
	// The day-off list was omitted, so the default survives.
	if codes.Classify("В") != timesheet.ClassDayOff {
		t.Fatalf("omitted list must keep the defaults")
	}
}

func TestLoadCodesMissingFile(t *testing.T) {
	if _, err := LoadCodes(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
