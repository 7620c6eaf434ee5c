package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/calendar"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateHabits:
		content = m.viewHabits()
	case StateCalendar:
		content = m.viewCalendar()
	case StateHeatmap:
		content = m.viewHeatmap()
	case StateAddHabit, StateEditHabit:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	case StateReminders:
		content = m.viewReminders()
	case StateReminderTime:
		content = m.viewForm()
	}

	var status string
	if m.status != "" {
		status = warningStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Calendar", "Heatmap"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHabits() string {
	return docStyle.Render(m.habitsModel.View())
}

func (m Model) viewCalendar() string {
	return docStyle.Render(m.monthModel.View())
}

func (m Model) viewHeatmap() string {
	h := m.monthModel.Habit()
	if h.ID == "" {
		return docStyle.Render("Select a habit on the Habits tab first.")
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(h.Name),
		"",
		calendar.RenderHeatmap(calendar.RollingWindow(h, m.app.Now())),
	))
}

func (m Model) viewForm() string {
	title := "New habit"
	switch m.state {
	case StateEditHabit:
		title = "Edit habit"
	case StateReminderTime:
		title = "Reminder time"
	}
	parts := []string{lipgloss.NewStyle().Bold(true).Render(title), ""}
	if m.formError != "" {
		parts = append(parts, dangerStyle.Render(m.formError), "")
	}
	parts = append(parts, m.form.View())
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewReminders() string {
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render("Reminders · "+m.remindersModel.Habit().Name),
		m.remindersModel.View(),
	))
}

func (m Model) viewConfirmDelete() string {
	name := m.habitToDeleteID
	if h, err := m.app.Habit(m.habitToDeleteID); err == nil {
		name = h.Name
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and all of its history?", name)),
			"Its reminders will be cancelled.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
