// Package completion holds the per-day completion state machine of a habit.
package completion

import (
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// Advance steps the habit's count for dateKey one position around the cycle
// 0, 1, ..., CompletionsPerDay, 0. A result of zero removes the key. The
// habit passed in is not modified.
func Advance(h models.Habit, dateKey string) models.Habit {
	next := h.Clone()
	target := target(h)
	count := (Count(h, dateKey) + 1) % (target + 1)
	if count == 0 {
		delete(next.Completions, dateKey)
	} else {
		next.Completions[dateKey] = count
	}
	return next
}

// Count returns the number of completions recorded for dateKey.
func Count(h models.Habit, dateKey string) int {
	return h.Completions[dateKey]
}

// IsComplete reports whether the day met the habit's current target. Counts
// recorded under a higher, older target still satisfy a lowered one.
func IsComplete(h models.Habit, dateKey string) bool {
	return Count(h, dateKey) >= target(h)
}

// DateKey formats t as a date key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDateKey parses a date key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, key, loc)
}

// Streak counts consecutive complete days ending at today. An incomplete
// today does not break a streak that ran through yesterday.
func Streak(h models.Habit, today time.Time) int {
	day := today.Day()
	key := func(d int) string {
		// Noon keeps the date stable across DST gaps at midnight.
		return DateKey(time.Date(today.Year(), today.Month(), d, 12, 0, 0, 0, today.Location()))
	}
	if !IsComplete(h, key(day)) {
		day--
	}
	streak := 0
	for IsComplete(h, key(day)) {
		streak++
		day--
	}
	return streak
}

func target(h models.Habit) int {
	if h.CompletionsPerDay < 1 {
		return 1
	}
	return h.CompletionsPerDay
}
