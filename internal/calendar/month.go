// Package calendar derives the month grid and rolling heatmap views of a
// habit's completions. Nothing here mutates a habit.
package calendar

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/completion"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// Month identifies a calendar month. Values are produced by NewMonth, Prev
// and Next, which keep Month within January..December.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns the month containing t.
func NewMonth(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth reads a "YYYY-MM" month.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", s)
	}
	return NewMonth(t), nil
}

// Prev returns the preceding month; January wraps to December of the prior year.
func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Next returns the following month; December wraps to January of the next year.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Title renders the month header, e.g. "February 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", constants.MonthNames[m.Month-1], m.Year)
}

// DaysIn returns the number of days in the month.
func (m Month) DaysIn() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LeadingBlanks is the weekday of day 1, Sunday=0..Saturday=6.
func (m Month) LeadingBlanks() int {
	return int(time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// Cell is one position of the month grid. Blank cells pad the first week.
type Cell struct {
	Blank      bool
	Day        int
	DateKey    string
	Count      int
	IsToday    bool
	IsPast     bool
	IsComplete bool
}

// MonthGrid lays out the month: LeadingBlanks blank cells followed by one
// cell per day. today decides the IsToday and IsPast flags.
func MonthGrid(h models.Habit, m Month, today time.Time) []Cell {
	blanks := m.LeadingBlanks()
	days := m.DaysIn()
	todayKey := completion.DateKey(today)

	cells := make([]Cell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for day := 1; day <= days; day++ {
		key := fmt.Sprintf("%04d-%02d-%02d", m.Year, int(m.Month), day)
		cells = append(cells, Cell{
			Day:        day,
			DateKey:    key,
			Count:      completion.Count(h, key),
			IsToday:    key == todayKey,
			IsPast:     key < todayKey,
			IsComplete: completion.IsComplete(h, key),
		})
	}
	return cells
}
