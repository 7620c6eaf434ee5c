// Package reminderlist lists one habit's reminders and edits their time and
// days.
package reminderlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

type AddReminderMsg struct {
	HabitID string
}

type EditTimeMsg struct {
	HabitID    string
	ReminderID string
}

type DeleteReminderMsg struct {
	HabitID    string
	ReminderID string
}

type ToggleDayMsg struct {
	HabitID    string
	ReminderID string
	Day        string
}

var (
	onStyle  = lipgloss.NewStyle().Bold(true)
	offStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Item struct {
	Reminder models.Reminder
}

func (i Item) Title() string {
	return "⏰ " + i.Reminder.Time
}

// Description shows every weekday, highlighting the selected ones.
func (i Item) Description() string {
	days := make([]string, len(constants.Weekdays))
	for n, d := range constants.Weekdays {
		if i.Reminder.HasDay(d) {
			days[n] = onStyle.Render(d)
		} else {
			days[n] = offStyle.Render(d)
		}
	}
	desc := strings.Join(days, " ")
	if len(i.Reminder.Days) == 0 {
		desc += " · no days selected"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Reminder.Time }

type KeyMap struct {
	Add       key.Binding
	Time      key.Binding
	Delete    key.Binding
	ToggleDay key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Time: key.NewBinding(
			key.WithKeys("t", "enter"),
			key.WithHelp("t", "change time"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		ToggleDay: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "toggle Mon-Sun"),
		),
	}
}

func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Add, k.Time, k.Delete, k.ToggleDay}
}

type Model struct {
	Keys  KeyMap
	list  list.Model
	habit models.Habit
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return Model{
		Keys: DefaultKeyMap(),
		list: l,
	}
}

// SetHabit shows h's reminders, keeping the cursor in range.
func (m *Model) SetHabit(h models.Habit) {
	items := make([]list.Item, len(h.Reminders))
	for i, r := range h.Reminders {
		items[i] = Item{Reminder: r}
	}
	m.habit = h
	m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

func (m Model) Habit() models.Habit {
	return m.habit
}

// Selected returns the reminder under the cursor.
func (m Model) Selected() (models.Reminder, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Reminder{}, false
	}
	return i.Reminder, true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		habitID := m.habit.ID
		if key.Matches(msg, m.Keys.Add) {
			return m, func() tea.Msg { return AddReminderMsg{HabitID: habitID} }
		}
		r, ok := m.Selected()
		if !ok {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.Keys.Time):
			return m, func() tea.Msg { return EditTimeMsg{HabitID: habitID, ReminderID: r.ID} }
		case key.Matches(msg, m.Keys.Delete):
			return m, func() tea.Msg { return DeleteReminderMsg{HabitID: habitID, ReminderID: r.ID} }
		case key.Matches(msg, m.Keys.ToggleDay):
			day := constants.Weekdays[msg.Runes[0]-'1']
			return m, func() tea.Msg { return ToggleDayMsg{HabitID: habitID, ReminderID: r.ID, Day: day} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return fmt.Sprintf("\n  %s has no reminders.\n  Press 'a' to add one.", m.habit.Name)
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
