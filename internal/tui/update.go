package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/monthview"
	"github.com/julianstephens/habitual/internal/tui/components/reminderlist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle Add/Edit Habit State
	if m.state == StateAddHabit || m.state == StateEditHabit {
		return m.updateForm(msg)
	}
	if m.state == StateReminderTime {
		return m.updateReminderForm(msg)
	}

	// Handle Confirm Delete State
	if m.state == StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if err := m.app.Delete(context.Background(), m.habitToDeleteID); err != nil {
					m.status = err.Error()
				} else {
					m.reportSave()
				}
				m.refresh()
				m.state = StateHabits
				m.habitToDeleteID = ""
			case "n", "N", "esc", "q":
				m.state = StateHabits
				m.habitToDeleteID = ""
			}
		}
		return m, nil
	}

	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Adjust height for tabs and help
		listHeight := msg.Height - 4

		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(msg.Width-h, listHeight-v)
		m.remindersModel.SetSize(msg.Width-h, listHeight-v-2)
		return m, nil

	case habits.AddHabitMsg:
		m.habitForm = newHabitFormModel()
		m.editingID = ""
		m.formError = ""
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habits.EditHabitMsg:
		h, err := m.app.Habit(msg.ID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.habitForm = editHabitFormModel(h)
		m.editingID = h.ID
		m.formError = ""
		m.form = NewHabitForm(m.habitForm)
		m.state = StateEditHabit
		return m, m.form.Init()

	case habits.MarkHabitMsg:
		if _, err := m.app.MarkToday(context.Background(), msg.ID); err != nil {
			m.status = err.Error()
		} else {
			m.reportSave()
		}
		m.refresh()
		return m, nil

	case habits.DeleteHabitMsg:
		m.habitToDeleteID = msg.ID
		m.state = StateConfirmDelete
		return m, nil

	case habits.OpenCalendarMsg:
		if h, err := m.app.Habit(msg.ID); err == nil {
			m.monthModel.SetHabit(h, m.app.Now())
			m.state = StateCalendar
		}
		return m, nil

	case habits.OpenRemindersMsg:
		if h, err := m.app.Habit(msg.ID); err == nil {
			m.remindersModel.SetHabit(h)
			m.state = StateReminders
		}
		return m, nil

	case reminderlist.AddReminderMsg:
		_, _, err := m.app.AddReminder(context.Background(), msg.HabitID, "", nil)
		m.afterReminderChange(err)
		return m, nil

	case reminderlist.DeleteReminderMsg:
		_, err := m.app.RemoveReminder(context.Background(), msg.HabitID, msg.ReminderID)
		m.afterReminderChange(err)
		return m, nil

	case reminderlist.ToggleDayMsg:
		_, err := m.app.ToggleReminderDays(context.Background(), msg.HabitID, msg.ReminderID, []string{msg.Day})
		m.afterReminderChange(err)
		return m, nil

	case reminderlist.EditTimeMsg:
		h, err := m.app.Habit(msg.HabitID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		r, ok := h.Reminder(msg.ReminderID)
		if !ok {
			return m, nil
		}
		m.reminderForm = &ReminderFormModel{HabitID: h.ID, ReminderID: r.ID, Time: r.Time}
		m.formError = ""
		m.form = NewReminderTimeForm(m.reminderForm)
		m.state = StateReminderTime
		return m, m.form.Init()

	case monthview.ToggleDayMsg:
		if _, err := m.app.Toggle(context.Background(), msg.HabitID, msg.DateKey); err != nil {
			m.status = err.Error()
		} else {
			m.reportSave()
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.state == StateHabits && m.habitsModel.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.state == StateReminders && key.Matches(msg, m.keys.Back):
			m.state = StateHabits
			return m, nil
		case m.state < tabCount && key.Matches(msg, m.keys.Tab):
			m.switchTab((m.state + 1) % tabCount)
			return m, nil
		case m.state < tabCount && key.Matches(msg, m.keys.ShiftTab):
			m.switchTab((m.state - 1 + tabCount) % tabCount)
			return m, nil
		}
	}

	switch m.state {
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateCalendar:
		m.monthModel, cmd = m.monthModel.Update(msg)
	case StateReminders:
		m.remindersModel, cmd = m.remindersModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) afterReminderChange(err error) {
	if err != nil {
		m.status = err.Error()
	} else {
		m.reportSave()
	}
	m.refresh()
}

// switchTab moves to a tab. The calendar and heatmap follow the habit
// selected on the list.
func (m *Model) switchTab(s SessionState) {
	if s != StateHabits {
		if h, ok := m.habitsModel.Selected(); ok {
			m.monthModel.SetHabit(h, m.app.Now())
		}
	}
	m.state = s
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		var err error
		if m.state == StateAddHabit {
			_, err = m.app.Create(context.Background(), m.habitForm.draft())
		} else {
			_, err = m.app.Edit(context.Background(), m.editingID, m.habitForm.draft())
		}
		if err != nil {
			// Keep the user in the form to correct the value
			var verr *models.ValidationError
			if errors.As(err, &verr) && verr.Field == models.FieldCompletionsPerDay {
				m.habitForm.PerDay = "1"
			}
			m.formError = err.Error()
			m.form = NewHabitForm(m.habitForm)
			return m, m.form.Init()
		}
		m.reportSave()
		m.refresh()
		m.formError = ""
		m.state = StateHabits
	case huh.StateAborted:
		m.formError = ""
		m.state = StateHabits
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateReminderForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.formError = ""
		m.state = StateReminders
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		fm := m.reminderForm
		at, err := cli.ParseReminderTime(fm.Time)
		if err == nil {
			_, err = m.app.SetReminderTime(context.Background(), fm.HabitID, fm.ReminderID, at)
		}
		if err != nil {
			m.formError = err.Error()
			m.form = NewReminderTimeForm(fm)
			return m, m.form.Init()
		}
		m.reportSave()
		m.refresh()
		m.formError = ""
		m.state = StateReminders
	case huh.StateAborted:
		m.formError = ""
		m.state = StateReminders
	}
	return m, tea.Batch(cmds...)
}
