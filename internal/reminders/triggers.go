// Package reminders maps habit reminders onto weekly notification triggers
// and keeps a notification gateway in sync with them.
package reminders

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// weekdayNumbers maps reminder days onto trigger weekdays, Sunday=1..Saturday=7.
var weekdayNumbers = map[string]int{
	"Sun": 1,
	"Mon": 2,
	"Tue": 3,
	"Wed": 4,
	"Thu": 5,
	"Fri": 6,
	"Sat": 7,
}

// Trigger describes one recurring weekly notification.
type Trigger struct {
	ID         string `json:"id"`
	HabitID    string `json:"habit_id"`
	ReminderID string `json:"reminder_id"`
	Day        string `json:"day"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Weekday    int    `json:"weekday"` // 1-7, Sunday=1
	Hour       int    `json:"hour"`    // 0-23
	Minute     int    `json:"minute"`  // 0-59
}

// Matches reports whether the trigger fires during the minute containing t.
func (t Trigger) Matches(now time.Time) bool {
	return int(now.Weekday())+1 == t.Weekday && now.Hour() == t.Hour && now.Minute() == t.Minute
}

// ParseTime converts "h:mm AM/PM" to a 24-hour hour and minute. 12 AM is
// hour 0 and 12 PM is hour 12.
func ParseTime(s string) (hour, minute int, err error) {
	t, err := time.Parse(constants.ReminderTimeFormat, strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid reminder time %q (expected h:mm AM/PM): %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// Namespace is the identifier prefix shared by every trigger of a habit.
func Namespace(habitID string) string {
	return fmt.Sprintf("habit-%s-", habitID)
}

// TriggerID builds the deterministic identifier of a reminder's trigger on day.
func TriggerID(habitID, reminderID, day string) string {
	return fmt.Sprintf("%sreminder-%s-day-%s", Namespace(habitID), reminderID, day)
}

// Triggers expands every reminder of h into one trigger per selected day.
// Reminders with an unparsable time and unknown day names are skipped.
func Triggers(h models.Habit) ([]Trigger, []error) {
	var (
		out  []Trigger
		errs []error
	)
	for _, r := range h.Reminders {
		if len(r.Days) == 0 {
			continue
		}
		hour, minute, err := ParseTime(r.Time)
		if err != nil {
			errs = append(errs, fmt.Errorf("reminder %s: %w", r.ID, err))
			continue
		}
		for _, day := range r.Days {
			weekday, ok := weekdayNumbers[day]
			if !ok {
				errs = append(errs, fmt.Errorf("reminder %s: unknown weekday %q", r.ID, day))
				continue
			}
			out = append(out, Trigger{
				ID:         TriggerID(h.ID, r.ID, day),
				HabitID:    h.ID,
				ReminderID: r.ID,
				Day:        day,
				Title:      h.Name,
				Body:       constants.ReminderBody,
				Weekday:    weekday,
				Hour:       hour,
				Minute:     minute,
			})
		}
	}
	return out, errs
}
