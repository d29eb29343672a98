package validation

import (
	"fmt"
	"time"

	"github.com/ahasite/sitediary/internal/constants"
	"github.com/ahasite/sitediary/internal/models"
)

// ValidateDate checks a YYYY-MM-DD entry date.
func ValidateDate(date string) error {
	if date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return nil
}

// ValidateWorkingHours checks the HH:MM shape of both bounds. Start past end
// is accepted: overnight shifts record exactly that and the store keeps the
// values verbatim.
func ValidateWorkingHours(hours models.WorkingHours) error {
	for _, v := range []struct {
		label, value string
	}{
		{"start time", hours.StartTime},
		{"end time", hours.EndTime},
	} {
		if v.value == "" {
			continue
		}
		if _, err := time.Parse(constants.TimeFormat, v.value); err != nil {
			return fmt.Errorf("invalid %s %q: expected HH:MM", v.label, v.value)
		}
	}
	return nil
}

// ValidateTasks rejects structurally broken tasks before persistence.
func ValidateTasks(tasks []models.Task) error {
	for i, task := range tasks {
		if task.Description == "" {
			return fmt.Errorf("task %d has no description", i+1)
		}
		if task.Quantity < 0 {
			return fmt.Errorf("task %d has negative quantity %g", i+1, task.Quantity)
		}
	}
	return nil
}

// ValidateRecord runs every structural check a record must pass before the
// store accepts it from the form.
func ValidateRecord(rec models.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if err := ValidateDate(rec.Date); err != nil {
		return err
	}
	if err := ValidateWorkingHours(rec.WorkingHours); err != nil {
		return err
	}
	return ValidateTasks(rec.Tasks)
}
