package application

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	timesheet "timesheet-kpi/internal/timesheet/domain"
)

// codesFile is the on-disk shape of the attendance-code vocabulary.
type codesFile struct {
	Codes timesheet.CodeSet `yaml:"codes"`
}

// LoadCodes reads the attendance-code vocabulary from a yaml file. An empty
// path returns the built-in defaults. Lists present in the file replace the
// defaults wholesale; omitted lists keep them.
func LoadCodes(path string) (timesheet.CodeSet, error) {
	codes := timesheet.DefaultCodes()
	if path == "" {
		return codes, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return timesheet.CodeSet{}, fmt.Errorf("codes config: %w", err)
	}
	var file codesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return timesheet.CodeSet{}, fmt.Errorf("codes config: %w", err)
	}
	if len(file.Codes.DayOff) > 0 {
		codes.DayOff = file.Codes.DayOff
	}
	if len(file.Codes.WorkedHoliday) > 0 {
		codes.WorkedHoliday = file.Codes.WorkedHoliday
	}
	if len(file.Codes.Absence) > 0 {
		codes.Absence = file.Codes.Absence
	}
	return codes, nil
}
