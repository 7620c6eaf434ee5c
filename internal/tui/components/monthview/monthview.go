// Package monthview is the calendar tab: one habit's month grid with a day
// cursor.
package monthview

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/completion"
	"github.com/julianstephens/habitual/internal/models"
)

// ToggleDayMsg asks the parent to advance the habit's count on DateKey.
type ToggleDayMsg struct {
	HabitID string
	DateKey string
}

type KeyMap struct {
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Toggle    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		PrevWeek: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		NextWeek: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("[", "p"),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]", "n"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle day"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.PrevMonth, k.NextMonth, k.Today, k.Toggle}
}

type Model struct {
	Keys  KeyMap
	habit models.Habit
	month calendar.Month
	day   int
	now   time.Time
}

func New(now time.Time) Model {
	return Model{
		Keys:  DefaultKeyMap(),
		month: calendar.NewMonth(now),
		day:   now.Day(),
		now:   now,
	}
}

// SetHabit shows h. Switching to a different habit jumps back to today.
func (m *Model) SetHabit(h models.Habit, now time.Time) {
	if h.ID != m.habit.ID {
		m.month = calendar.NewMonth(now)
		m.day = now.Day()
	}
	m.habit = h
	m.now = now
}

func (m Model) Habit() models.Habit {
	return m.habit
}

func (m Model) Month() calendar.Month {
	return m.month
}

// Selected is the date key under the cursor.
func (m Model) Selected() string {
	return completion.DateKey(time.Date(m.month.Year, m.month.Month, m.day, 12, 0, 0, 0, m.now.Location()))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.habit.ID == "" {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.Keys.PrevDay):
		m.move(-1)
	case key.Matches(keyMsg, m.Keys.NextDay):
		m.move(1)
	case key.Matches(keyMsg, m.Keys.PrevWeek):
		m.move(-7)
	case key.Matches(keyMsg, m.Keys.NextWeek):
		m.move(7)
	case key.Matches(keyMsg, m.Keys.PrevMonth):
		m.month = m.month.Prev()
		m.day = min(m.day, m.month.DaysIn())
	case key.Matches(keyMsg, m.Keys.NextMonth):
		m.month = m.month.Next()
		m.day = min(m.day, m.month.DaysIn())
	case key.Matches(keyMsg, m.Keys.Today):
		m.month = calendar.NewMonth(m.now)
		m.day = m.now.Day()
	case key.Matches(keyMsg, m.Keys.Toggle):
		toggle := ToggleDayMsg{HabitID: m.habit.ID, DateKey: m.Selected()}
		return m, func() tea.Msg { return toggle }
	}
	return m, nil
}

// move shifts the cursor by delta days, crossing into adjacent months.
func (m *Model) move(delta int) {
	d := time.Date(m.month.Year, m.month.Month, m.day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, delta)
	m.month = calendar.NewMonth(d)
	m.day = d.Day()
}

var (
	nameStyle = lipgloss.NewStyle().Bold(true)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

func (m Model) View() string {
	if m.habit.ID == "" {
		return "\n  Select a habit on the Habits tab first."
	}
	cells := calendar.MonthGrid(m.habit, m.month, m.now)
	cursor := m.month.LeadingBlanks() + m.day - 1
	selected := m.Selected()
	return lipgloss.JoinVertical(lipgloss.Left,
		nameStyle.Render(m.habit.Name),
		"",
		calendar.RenderMonth(m.month, cells, m.habit.Color, cursor),
		hintStyle.Render(selected+": "+progress(m.habit, selected)),
	)
}

func progress(h models.Habit, dateKey string) string {
	count := completion.Count(h, dateKey)
	switch {
	case count == 0:
		return "not done"
	case completion.IsComplete(h, dateKey):
		return "complete"
	default:
		return fmt.Sprintf("%d/%d", count, h.CompletionsPerDay)
	}
}
