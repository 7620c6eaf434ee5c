// Package tui is the interactive habit tracker: a habit list, a month
// calendar and a rolling heatmap for the selected habit.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/app"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/monthview"
	"github.com/julianstephens/habitual/internal/tui/components/reminderlist"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateCalendar
	StateHeatmap
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
	StateReminders
	StateReminderTime
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

type HabitFormModel struct {
	Name        string
	Description string
	Color       string
	Icon        string
	PerDay      string
}

type ReminderFormModel struct {
	HabitID    string
	ReminderID string
	Time       string
}

type Model struct {
	app             *app.App
	state           SessionState
	keys            KeyMap
	help            help.Model
	habitsModel     habits.Model
	monthModel      monthview.Model
	remindersModel  reminderlist.Model
	form            *huh.Form
	habitForm       *HabitFormModel
	reminderForm    *ReminderFormModel
	editingID       string
	habitToDeleteID string
	formError       string
	status          string
	quitting        bool
	width           int
	height          int
}

// NewModel builds the TUI over a started App.
func NewModel(a *app.App) Model {
	now := a.Now()
	m := Model{
		app:            a,
		state:          StateHabits,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		habitsModel:    habits.New(a.Habits(), now, 0, 0),
		monthModel:     monthview.New(now),
		remindersModel: reminderlist.New(0, 0),
	}
	if h, ok := m.habitsModel.Selected(); ok {
		m.monthModel.SetHabit(h, now)
	}
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateCalendar:
		keys = append(keys, m.monthModel.Keys.Toggle, m.monthModel.Keys.PrevMonth, m.monthModel.Keys.NextMonth)
	case StateReminders:
		keys = append(keys, m.keys.Back, m.remindersModel.Keys.Time, m.remindersModel.Keys.ToggleDay)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateCalendar:
		return [][]key.Binding{global, m.monthModel.Keys.Bindings()}
	case StateReminders:
		return [][]key.Binding{append(global, m.keys.Back), m.remindersModel.Keys.Bindings()}
	}
	return [][]key.Binding{global}
}

func (m Model) Init() tea.Cmd {
	return m.habitsModel.Init()
}

// refresh reloads every view from the App after a change.
func (m *Model) refresh() {
	now := m.app.Now()
	m.habitsModel.SetHabits(m.app.Habits(), now)

	if id := m.remindersModel.Habit().ID; id != "" {
		if h, err := m.app.Habit(id); err == nil {
			m.remindersModel.SetHabit(h)
		} else if m.state == StateReminders {
			m.state = StateHabits
		}
	}

	if id := m.monthModel.Habit().ID; id != "" {
		if h, err := m.app.Habit(id); err == nil {
			m.monthModel.SetHabit(h, now)
			return
		}
	}
	if h, ok := m.habitsModel.Selected(); ok {
		m.monthModel.SetHabit(h, now)
	} else {
		m.monthModel = monthview.New(now)
	}
}

// reportSave surfaces a failed save; the change stays on screen either way.
func (m *Model) reportSave() {
	if err := m.app.SaveErr(); err != nil {
		m.status = "⚠ Change not saved: " + err.Error()
	} else {
		m.status = ""
	}
}
