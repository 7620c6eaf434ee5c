package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/completion"
	"github.com/julianstephens/habitual/internal/models"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	ID string
}

type MarkHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID string
}

type OpenCalendarMsg struct {
	ID string
}

type OpenRemindersMsg struct {
	ID string
}

type Item struct {
	Habit  models.Habit
	Count  int
	Streak int
}

func (i Item) Title() string {
	mark := "○"
	if i.Count >= i.Habit.CompletionsPerDay {
		mark = "●"
	}
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(i.Habit.Color)).Render(mark)
	return dot + " " + i.Habit.Name
}

func (i Item) Description() string {
	parts := []string{fmt.Sprintf("%d/%d today", i.Count, i.Habit.CompletionsPerDay)}
	if i.Streak > 0 {
		parts = append(parts, fmt.Sprintf("🔥 %d", i.Streak))
	}
	if n := len(i.Habit.Reminders); n > 0 {
		parts = append(parts, fmt.Sprintf("⏰ %d", n))
	}
	if i.Habit.Description != "" {
		parts = append(parts, i.Habit.Description)
	}
	return strings.Join(parts, " · ")
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Mark      key.Binding
	Delete    key.Binding
	Calendar  key.Binding
	Reminders key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Mark: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m/space", "mark today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Calendar: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "calendar"),
		),
		Reminders: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reminders"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, now time.Time, width, height int) Model {
	l := list.New(items(habits, now), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Mark, keys.Calendar}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Mark, keys.Delete, keys.Calendar, keys.Reminders}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func items(habits []models.Habit, now time.Time) []list.Item {
	today := completion.DateKey(now)
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{
			Habit:  h,
			Count:  completion.Count(h, today),
			Streak: completion.Streak(h, now),
		}
	}
	return out
}

// SetHabits replaces the list contents, keeping the cursor position when it
// is still in range.
func (m *Model) SetHabits(habits []models.Habit, now time.Time) {
	m.list.SetItems(items(habits, now))
	if n := len(habits); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (models.Habit, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Habit{}, false
	}
	return i.Habit, true
}

// Filtering reports whether the list's filter input has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddHabitMsg{} }
		}
		i, ok := m.list.SelectedItem().(Item)
		if !ok {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return EditHabitMsg{ID: i.Habit.ID} }
		case key.Matches(msg, m.keys.Mark):
			return m, func() tea.Msg { return MarkHabitMsg{ID: i.Habit.ID} }
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
		case key.Matches(msg, m.keys.Calendar):
			return m, func() tea.Msg { return OpenCalendarMsg{ID: i.Habit.ID} }
		case key.Matches(msg, m.keys.Reminders):
			return m, func() tea.Msg { return OpenRemindersMsg{ID: i.Habit.ID} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
