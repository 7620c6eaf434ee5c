package models

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/constants"
)

// Reminder is a weekly alert for its owning habit. Days hold weekday
// abbreviations (Mon..Sun) in the order the user selected them.
type Reminder struct {
	ID   string   `json:"id" yaml:"id"`
	Time string   `json:"time" yaml:"time"` // h:mm AM/PM
	Days []string `json:"days" yaml:"days,flow"`
}

// NewReminder creates a reminder with a fresh id. An empty time uses the
// default reminder time.
func NewReminder(timeStr string, days []string) (Reminder, error) {
	if timeStr == "" {
		timeStr = constants.DefaultReminderTime
	}
	r := Reminder{
		ID:   uuid.New().String(),
		Time: timeStr,
		Days: []string{},
	}
	for _, d := range days {
		if !r.HasDay(d) {
			r.Days = append(r.Days, d)
		}
	}
	if err := r.Validate(); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (r *Reminder) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: FieldReminders, Message: "reminder id cannot be empty"}
	}
	if _, err := time.Parse(constants.ReminderTimeFormat, r.Time); err != nil {
		return &ValidationError{Field: FieldReminders, Message: fmt.Sprintf("invalid reminder time %q (expected h:mm AM/PM)", r.Time)}
	}
	seen := make(map[string]bool, len(r.Days))
	for _, d := range r.Days {
		if !IsWeekday(d) {
			return &ValidationError{Field: FieldReminders, Message: fmt.Sprintf("unknown weekday %q", d)}
		}
		if seen[d] {
			return &ValidationError{Field: FieldReminders, Message: fmt.Sprintf("duplicate weekday %q", d)}
		}
		seen[d] = true
	}
	return nil
}

// HasDay reports whether the weekday abbreviation is selected.
func (r *Reminder) HasDay(day string) bool {
	return slices.Contains(r.Days, day)
}

// ToggleDay selects an unselected day (appending it) or drops a selected one.
func (r Reminder) ToggleDay(day string) (Reminder, error) {
	if !IsWeekday(day) {
		return r, &ValidationError{Field: FieldReminders, Message: fmt.Sprintf("unknown weekday %q", day)}
	}
	days := make([]string, 0, len(r.Days)+1)
	if r.HasDay(day) {
		for _, d := range r.Days {
			if d != day {
				days = append(days, d)
			}
		}
	} else {
		days = append(days, r.Days...)
		days = append(days, day)
	}
	r.Days = days
	return r, nil
}

// WithTime returns the reminder moved to timeStr, keeping its id and days.
func (r Reminder) WithTime(timeStr string) (Reminder, error) {
	r.Time = timeStr
	if err := r.Validate(); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// IsWeekday reports whether s is one of the reminder day abbreviations.
func IsWeekday(s string) bool {
	return slices.Contains(constants.Weekdays, s)
}

// FormatReminderTime renders a 24-hour clock time as "h:mm AM/PM".
func FormatReminderTime(hour, minute int) string {
	return time.Date(2000, 1, 1, hour, minute, 0, 0, time.UTC).Format(constants.ReminderTimeFormat)
}
