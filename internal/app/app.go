// Package app owns the in-memory habit list and applies every user action
// to it: validate, update memory, persist the whole list, then reconcile
// reminders.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/completion"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/reminders"
	"github.com/julianstephens/habitual/internal/storage"
)

var ErrNotFound = errors.New("habit not found")

// App is not safe for concurrent use; callers drive it from a single event
// sequence.
type App struct {
	store      storage.Provider
	gateway    reminders.Gateway
	reconciler *reminders.Reconciler
	habits     []models.Habit
	saveErr    error
	now        func() time.Time
}

func New(store storage.Provider, gateway reminders.Gateway) *App {
	return &App{
		store:      store,
		gateway:    gateway,
		reconciler: reminders.NewReconciler(gateway).WithLogger(logger.With("component", "reminders")),
		habits:     []models.Habit{},
		now:        time.Now,
	}
}

// WithClock replaces the wall clock used for creation times and "today".
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Start loads the habit list, asks for notification permission and
// reschedules every habit's reminders. A failed load leaves an empty list.
func (a *App) Start(ctx context.Context) reminders.Report {
	habits, err := a.store.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrCorrupt):
		logger.Warn("Stored habits are unreadable, starting with an empty list", "error", err)
	case err != nil:
		logger.Error("Failed to load habits", "error", err)
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	a.habits = habits

	if granted, err := a.gateway.RequestPermission(ctx); err != nil {
		logger.Warn("Notification permission request failed", "error", err)
	} else if !granted {
		logger.Info("Notification permission not granted")
	}

	return a.reconciler.RescheduleAll(ctx, a.habits)
}

// Habits returns a copy of the current list in display order.
func (a *App) Habits() []models.Habit {
	out := make([]models.Habit, len(a.habits))
	for i, h := range a.habits {
		out[i] = h.Clone()
	}
	return out
}

func (a *App) Habit(id string) (models.Habit, error) {
	i := a.index(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return a.habits[i].Clone(), nil
}

// FindByName resolves a habit by case-insensitive name, falling back to an
// id or unique id prefix.
func (a *App) FindByName(name string) (models.Habit, error) {
	name = strings.TrimSpace(name)
	for _, h := range a.habits {
		if strings.EqualFold(h.Name, name) {
			return h.Clone(), nil
		}
	}

	var match []models.Habit
	for _, h := range a.habits {
		if h.ID == name {
			return h.Clone(), nil
		}
		if name != "" && strings.HasPrefix(h.ID, name) {
			match = append(match, h)
		}
	}
	if len(match) == 1 {
		return match[0].Clone(), nil
	}
	if len(match) > 1 {
		return models.Habit{}, fmt.Errorf("id prefix %q matches %d habits", name, len(match))
	}
	return models.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Create validates the draft and appends the new habit.
func (a *App) Create(ctx context.Context, draft models.HabitDraft) (models.Habit, error) {
	h, err := models.NewHabit(draft, a.now())
	if err != nil {
		return models.Habit{}, err
	}

	a.habits = append(a.habits, h)
	a.save(ctx)
	a.reconciler.Reschedule(ctx, h)
	return h.Clone(), nil
}

// Edit applies the draft to an existing habit. When the edit drops every
// reminder, the habit's old triggers are cancelled.
func (a *App) Edit(ctx context.Context, id string, draft models.HabitDraft) (models.Habit, error) {
	i := a.index(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	prev := a.habits[i]
	edited, err := prev.ApplyEdit(draft)
	if err != nil {
		return models.Habit{}, err
	}
	return a.replace(ctx, i, edited), nil
}

// Delete removes the habit and cancels all of its triggers.
func (a *App) Delete(ctx context.Context, id string) error {
	i := a.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	a.habits = slices.Delete(a.habits, i, i+1)
	a.save(ctx)
	a.reconciler.CancelHabit(ctx, id)
	return nil
}

// Toggle advances the habit's count for dateKey.
func (a *App) Toggle(ctx context.Context, id, dateKey string) (models.Habit, error) {
	if _, err := completion.ParseDateKey(dateKey, time.Local); err != nil {
		return models.Habit{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", dateKey)
	}
	i := a.index(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	a.habits[i] = completion.Advance(a.habits[i], dateKey)
	a.save(ctx)
	return a.habits[i].Clone(), nil
}

// MarkToday advances today's count, the same as pressing today's cell.
func (a *App) MarkToday(ctx context.Context, id string) (models.Habit, error) {
	return a.Toggle(ctx, id, a.Today())
}

// Today is the current date key in local time.
func (a *App) Today() string {
	return completion.DateKey(a.now())
}

func (a *App) Now() time.Time {
	return a.now()
}

// AddReminder appends a reminder to the habit.
func (a *App) AddReminder(ctx context.Context, id, at string, days []string) (models.Habit, models.Reminder, error) {
	i := a.index(id)
	if i < 0 {
		return models.Habit{}, models.Reminder{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r, err := models.NewReminder(at, days)
	if err != nil {
		return models.Habit{}, models.Reminder{}, err
	}
	edited := a.habits[i].Clone()
	edited.Reminders = append(edited.Reminders, r)
	return a.replace(ctx, i, edited), r, nil
}

// RemoveReminder deletes one reminder from the habit.
func (a *App) RemoveReminder(ctx context.Context, id, reminderID string) (models.Habit, error) {
	i := a.index(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	edited := a.habits[i].Clone()
	n := len(edited.Reminders)
	edited.Reminders = slices.DeleteFunc(edited.Reminders, func(r models.Reminder) bool {
		return r.ID == reminderID
	})
	if len(edited.Reminders) == n {
		return models.Habit{}, fmt.Errorf("reminder %s not found on %s", reminderID, edited.Name)
	}
	return a.replace(ctx, i, edited), nil
}

// ToggleReminderDays flips each given day on one reminder of the habit.
func (a *App) ToggleReminderDays(ctx context.Context, id, reminderID string, days []string) (models.Habit, error) {
	return a.updateReminder(ctx, id, reminderID, func(r models.Reminder) (models.Reminder, error) {
		for _, day := range days {
			var err error
			if r, err = r.ToggleDay(day); err != nil {
				return r, err
			}
		}
		return r, nil
	})
}

// SetReminderTime moves one reminder to a new time. The reminder keeps its
// id, so its triggers are replaced under the same ids.
func (a *App) SetReminderTime(ctx context.Context, id, reminderID, at string) (models.Habit, error) {
	return a.updateReminder(ctx, id, reminderID, func(r models.Reminder) (models.Reminder, error) {
		return r.WithTime(at)
	})
}

func (a *App) updateReminder(ctx context.Context, id, reminderID string, fn func(models.Reminder) (models.Reminder, error)) (models.Habit, error) {
	i := a.index(id)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	edited := a.habits[i].Clone()
	j := slices.IndexFunc(edited.Reminders, func(r models.Reminder) bool {
		return r.ID == reminderID
	})
	if j < 0 {
		return models.Habit{}, fmt.Errorf("reminder %s not found on %s", reminderID, edited.Name)
	}
	r, err := fn(edited.Reminders[j])
	if err != nil {
		return models.Habit{}, err
	}
	edited.Reminders[j] = r
	return a.replace(ctx, i, edited), nil
}

// MatchReminder resolves ref as a reminder id or unique id prefix on h.
func MatchReminder(h models.Habit, ref string) (models.Reminder, error) {
	ref = strings.TrimSpace(ref)
	if r, ok := h.Reminder(ref); ok {
		return r, nil
	}
	var match []models.Reminder
	for _, r := range h.Reminders {
		if ref != "" && strings.HasPrefix(r.ID, ref) {
			match = append(match, r)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return models.Reminder{}, fmt.Errorf("reminder %s not found on %s", ref, h.Name)
	default:
		return models.Reminder{}, fmt.Errorf("reminder prefix %q matches %d reminders", ref, len(match))
	}
}

// RescheduleAll re-runs startup reconciliation on demand.
func (a *App) RescheduleAll(ctx context.Context) reminders.Report {
	return a.reconciler.RescheduleAll(ctx, a.habits)
}

// Import replaces the whole list and reconciles every habit.
func (a *App) Import(ctx context.Context, habits []models.Habit) reminders.Report {
	var report reminders.Report
	for _, h := range a.habits {
		r := a.reconciler.CancelHabit(ctx, h.ID)
		report.Cancelled += r.Cancelled
		report.Failed += r.Failed
	}
	a.habits = make([]models.Habit, len(habits))
	for i, h := range habits {
		a.habits[i] = h.Clone()
	}
	a.save(ctx)
	r := a.reconciler.RescheduleAll(ctx, a.habits)
	report.Scheduled += r.Scheduled
	report.Cancelled += r.Cancelled
	report.Failed += r.Failed
	return report
}

// SaveErr returns the error of the most recent save, if it failed. The
// in-memory list keeps the change either way.
func (a *App) SaveErr() error {
	return a.saveErr
}

func (a *App) replace(ctx context.Context, i int, edited models.Habit) models.Habit {
	prev := a.habits[i]
	a.habits[i] = edited
	a.save(ctx)
	if edited.HasReminders() {
		a.reconciler.Reschedule(ctx, edited)
	} else if prev.HasReminders() {
		a.reconciler.CancelHabit(ctx, edited.ID)
	}
	return edited.Clone()
}

func (a *App) save(ctx context.Context) {
	a.saveErr = a.store.Save(ctx, a.habits)
	if a.saveErr != nil {
		logger.Error("Failed to save habits", "error", a.saveErr)
	}
}

func (a *App) index(id string) int {
	return slices.IndexFunc(a.habits, func(h models.Habit) bool { return h.ID == id })
}
