package tui

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/app"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/reminders"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/tui/components/habits"
	"github.com/julianstephens/habitual/internal/tui/components/monthview"
	"github.com/julianstephens/habitual/internal/tui/components/reminderlist"
)

var testNow = time.Date(2024, 2, 14, 9, 30, 0, 0, time.Local)

type fakeGateway struct {
	scheduled map[string]reminders.Trigger
}

func (g *fakeGateway) Schedule(_ context.Context, t reminders.Trigger) error {
	g.scheduled[t.ID] = t
	return nil
}

func (g *fakeGateway) Cancel(_ context.Context, id string) error {
	delete(g.scheduled, id)
	return nil
}

func (g *fakeGateway) ListAll(context.Context) ([]string, error) {
	ids := make([]string, 0, len(g.scheduled))
	for id := range g.scheduled {
		ids = append(ids, id)
	}
	return ids, nil
}

func (g *fakeGateway) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

func newTestModel(t *testing.T, names ...string) (Model, *app.App, *fakeGateway) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	gw := &fakeGateway{scheduled: map[string]reminders.Trigger{}}
	a := app.New(store, gw).WithClock(func() time.Time { return testNow })
	a.Start(context.Background())

	for _, name := range names {
		r, err := models.NewReminder("9:00 PM", []string{"Mon", "Wed"})
		if err != nil {
			t.Fatal(err)
		}
		draft := models.HabitDraft{Name: name, CompletionsPerDay: "2", Reminders: []models.Reminder{r}}
		if _, err := a.Create(context.Background(), draft); err != nil {
			t.Fatal(err)
		}
	}

	m := NewModel(a)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, a, gw
}

// send runs msg through Update and feeds back any message its command
// produces, as the bubbletea runtime would.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	next := updated.(Model)
	if cmd == nil {
		return next
	}
	switch out := cmd().(type) {
	case habits.AddHabitMsg, habits.EditHabitMsg, habits.MarkHabitMsg,
		habits.DeleteHabitMsg, habits.OpenCalendarMsg, habits.OpenRemindersMsg, monthview.ToggleDayMsg,
		reminderlist.AddReminderMsg, reminderlist.EditTimeMsg, reminderlist.DeleteReminderMsg, reminderlist.ToggleDayMsg:
		updated, _ = next.Update(out)
		next = updated.(Model)
	}
	return next
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelDefaults(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.state != StateHabits {
		t.Fatalf("expected habits tab, got %v", m.state)
	}
	if !strings.Contains(m.View(), "No habits yet.") {
		t.Fatalf("expected empty list hint, got %q", m.View())
	}
}

func TestTabCyclesViews(t *testing.T) {
	m, _, _ := newTestModel(t, "Read")

	want := []SessionState{StateCalendar, StateHeatmap, StateHabits}
	for _, s := range want {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != s {
			t.Fatalf("expected state %v, got %v", s, m.state)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateHeatmap {
		t.Fatalf("expected heatmap after shift+tab, got %v", m.state)
	}
	if !strings.Contains(m.View(), "2023-02-16 → 2024-02-14") {
		t.Fatalf("heatmap view missing window range: %q", m.View())
	}
}

func TestMarkTodayCycles(t *testing.T) {
	m, a, _ := newTestModel(t, "Water")
	id := a.Habits()[0].ID

	// target 2: 1, 2, absent
	for _, want := range []int{1, 2, 0} {
		m = send(t, m, runes("m"))
		h, _ := a.Habit(id)
		if got := h.Completions["2024-02-14"]; got != want {
			t.Fatalf("expected count %d, got %d", want, got)
		}
	}
	if !strings.Contains(m.View(), "0/2 today") {
		t.Fatalf("list not refreshed: %q", m.View())
	}
}

func TestCalendarToggle(t *testing.T) {
	m, a, _ := newTestModel(t, "Read")
	id := a.Habits()[0].ID

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateCalendar {
		t.Fatalf("enter should open the calendar, got %v", m.state)
	}
	if !strings.Contains(m.View(), "February 2024") {
		t.Fatalf("calendar view = %q", m.View())
	}

	// one day back, then toggle
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	h, _ := a.Habit(id)
	if h.Completions["2024-02-13"] != 1 {
		t.Fatalf("expected 2024-02-13 toggled, got %v", h.Completions)
	}

	// previous month wraps into January
	m = send(t, m, runes("["))
	if m.monthModel.Month().Month != time.January || m.monthModel.Selected() != "2024-01-13" {
		t.Fatalf("unexpected month after [: %v %s", m.monthModel.Month(), m.monthModel.Selected())
	}
}

func TestDeleteHabitConfirm(t *testing.T) {
	m, a, gw := newTestModel(t, "Floss", "Stretch")
	floss := a.Habits()[0]
	if len(gw.scheduled) != 4 {
		t.Fatalf("expected 4 scheduled triggers, got %d", len(gw.scheduled))
	}

	m = send(t, m, runes("d"))
	if m.state != StateConfirmDelete {
		t.Fatalf("expected confirm state, got %v", m.state)
	}
	m = send(t, m, runes("n"))
	if m.state != StateHabits || len(a.Habits()) != 2 {
		t.Fatalf("declining should keep the habit")
	}

	m = send(t, m, runes("d"))
	m = send(t, m, runes("y"))
	if m.state != StateHabits {
		t.Fatalf("expected habits tab after delete, got %v", m.state)
	}
	if _, err := a.Habit(floss.ID); err == nil {
		t.Fatal("habit still present after delete")
	}
	for id := range gw.scheduled {
		if strings.HasPrefix(id, reminders.Namespace(floss.ID)) {
			t.Fatalf("trigger %s survived delete", id)
		}
	}
	if len(gw.scheduled) != 2 {
		t.Fatalf("expected the other habit's 2 triggers to remain, got %d", len(gw.scheduled))
	}
}

func TestHabitFormInvalidPerDay(t *testing.T) {
	m, a, _ := newTestModel(t)

	m = send(t, m, runes("a"))
	if m.state != StateAddHabit {
		t.Fatalf("expected add form, got %v", m.state)
	}

	m.habitForm.Name = "Pushups"
	m.habitForm.PerDay = "lots"
	m.form.State = huh.StateCompleted
	m = send(t, m, struct{}{})

	if m.state != StateAddHabit {
		t.Fatalf("form should stay open on a validation error, got %v", m.state)
	}
	if m.habitForm.PerDay != "1" {
		t.Fatalf("expected per-day reverted to 1, got %q", m.habitForm.PerDay)
	}
	if !strings.Contains(m.formError, "completionsPerDay") {
		t.Fatalf("unexpected form error %q", m.formError)
	}
	if len(a.Habits()) != 0 {
		t.Fatal("invalid habit was saved")
	}

	m.form.State = huh.StateCompleted
	m = send(t, m, struct{}{})
	if m.state != StateHabits {
		t.Fatalf("expected habits tab after save, got %v", m.state)
	}
	habits := a.Habits()
	if len(habits) != 1 || habits[0].Name != "Pushups" || habits[0].CompletionsPerDay != 1 {
		t.Fatalf("unexpected habits %+v", habits)
	}
}

func TestHabitFormEditKeepsReminders(t *testing.T) {
	m, a, gw := newTestModel(t, "Journal")
	id := a.Habits()[0].ID

	m = send(t, m, runes("e"))
	if m.state != StateEditHabit || m.habitForm.Name != "Journal" || m.habitForm.PerDay != "2" {
		t.Fatalf("edit form not prefilled: %v %+v", m.state, m.habitForm)
	}

	m.habitForm.Name = "Evening journal"
	m.form.State = huh.StateCompleted
	m = send(t, m, struct{}{})

	h, err := a.Habit(id)
	if err != nil {
		t.Fatal(err)
	}
	if h.Name != "Evening journal" || len(h.Reminders) != 1 {
		t.Fatalf("unexpected habit after edit %+v", h)
	}
	for _, trig := range gw.scheduled {
		if trig.Title != "Evening journal" {
			t.Fatalf("trigger %s still titled %q", trig.ID, trig.Title)
		}
	}
}

func TestFormEscCancels(t *testing.T) {
	m, a, _ := newTestModel(t)
	m = send(t, m, runes("a"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateHabits || len(a.Habits()) != 0 {
		t.Fatalf("esc should close the form without saving")
	}
}

func (g *fakeGateway) sortedIDs() []string {
	ids, _ := g.ListAll(context.Background())
	slices.Sort(ids)
	return ids
}

func TestReminderScreen(t *testing.T) {
	m, a, gw := newTestModel(t, "Read")
	id := a.Habits()[0].ID
	reminderID := a.Habits()[0].Reminders[0].ID

	m = send(t, m, runes("r"))
	if m.state != StateReminders {
		t.Fatalf("expected reminders screen, got %v", m.state)
	}
	if v := m.View(); !strings.Contains(v, "Reminders · Read") || !strings.Contains(v, "9:00 PM") {
		t.Fatalf("reminders view = %q", v)
	}
	before := gw.sortedIDs()

	m = send(t, m, runes("t"))
	if m.state != StateReminderTime || m.reminderForm.Time != "9:00 PM" {
		t.Fatalf("time form not prefilled: %v %+v", m.state, m.reminderForm)
	}

	m.reminderForm.Time = "half past six"
	m.form.State = huh.StateCompleted
	m = send(t, m, struct{}{})
	if m.state != StateReminderTime || !strings.Contains(m.formError, "invalid time") {
		t.Fatalf("bad time should keep the form open: %v %q", m.state, m.formError)
	}

	m.reminderForm.Time = "6:30 am"
	m.form.State = huh.StateCompleted
	m = send(t, m, struct{}{})
	if m.state != StateReminders {
		t.Fatalf("expected reminders screen after saving, got %v", m.state)
	}
	h, _ := a.Habit(id)
	if r := h.Reminders[0]; r.ID != reminderID || r.Time != "6:30 AM" {
		t.Fatalf("reminder after time change = %+v", r)
	}
	if after := gw.sortedIDs(); !slices.Equal(before, after) {
		t.Fatalf("trigger ids changed: %v -> %v", before, after)
	}
	for _, trig := range gw.scheduled {
		if trig.Hour != 6 || trig.Minute != 30 {
			t.Fatalf("trigger %s at %02d:%02d, want 06:30", trig.ID, trig.Hour, trig.Minute)
		}
	}

	// 3 is Wed
	m = send(t, m, runes("3"))
	h, _ = a.Habit(id)
	if !slices.Equal(h.Reminders[0].Days, []string{"Mon"}) || len(gw.scheduled) != 1 {
		t.Fatalf("days after toggle = %v, scheduled %v", h.Reminders[0].Days, gw.sortedIDs())
	}

	m = send(t, m, runes("a"))
	h, _ = a.Habit(id)
	if len(h.Reminders) != 2 || h.Reminders[1].Time != "10:00 AM" || len(h.Reminders[1].Days) != 0 {
		t.Fatalf("added reminder = %+v", h.Reminders)
	}

	m = send(t, m, runes("d"))
	h, _ = a.Habit(id)
	if len(h.Reminders) != 1 || h.Reminders[0].ID == reminderID {
		t.Fatalf("reminders after delete = %+v", h.Reminders)
	}
	if len(gw.scheduled) != 0 {
		t.Fatalf("scheduled after delete = %v", gw.sortedIDs())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateHabits {
		t.Fatalf("esc should return to habits, got %v", m.state)
	}
}
