package habits

import (
	"context"
	"strings"

	"github.com/julianstephens/habitual/internal/app"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/reminders"
)

type ReminderCmd struct {
	Add    ReminderAddCmd    `cmd:"" help:"Add a reminder to a habit."`
	Remove ReminderRemoveCmd `cmd:"" help:"Remove a reminder from a habit."`
	Days   ReminderDaysCmd   `cmd:"" help:"Toggle the days a reminder fires on."`
	Time   ReminderTimeCmd   `cmd:"" help:"Change the time a reminder fires at."`
	List   ReminderListCmd   `cmd:"" help:"List a habit's reminders and scheduled notifications."`
}

type ReminderAddCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	At    string `arg:"" help:"Time (h:mm AM/PM or HH:MM)." optional:""`
	Days  string `help:"Days, e.g. mon,wed,fri, weekdays, weekends or daily." default:"daily"`
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, h, err := ctx.Habit(bg, c.Habit)
	if err != nil {
		return err
	}

	at, err := cli.ParseReminderTime(c.At)
	if err != nil {
		return err
	}
	days, err := cli.ParseDays(c.Days)
	if err != nil {
		return err
	}

	h, r, err := a.AddReminder(bg, h.ID, at, days)
	if err != nil {
		return err
	}
	ctx.WarnOnSaveFailure(a)

	ctx.Printf("Added reminder %s to %s at %s on %s\n", shortID(r.ID), h.Name, r.Time, strings.Join(r.Days, ", "))
	return nil
}

type ReminderRemoveCmd struct {
	Habit    string `arg:"" help:"Habit name or id."`
	Reminder string `arg:"" help:"Reminder id or id prefix."`
}

func (c *ReminderRemoveCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, h, err := ctx.Habit(bg, c.Habit)
	if err != nil {
		return err
	}
	r, err := app.MatchReminder(h, c.Reminder)
	if err != nil {
		return err
	}

	if _, err := a.RemoveReminder(bg, h.ID, r.ID); err != nil {
		return err
	}
	ctx.WarnOnSaveFailure(a)

	ctx.Printf("Removed reminder at %s from %s\n", r.Time, h.Name)
	return nil
}

type ReminderDaysCmd struct {
	Habit    string `arg:"" help:"Habit name or id."`
	Reminder string `arg:"" help:"Reminder id or id prefix."`
	Toggle   string `arg:"" help:"Days to toggle, e.g. sat,sun."`
}

func (c *ReminderDaysCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, h, err := ctx.Habit(bg, c.Habit)
	if err != nil {
		return err
	}
	r, err := app.MatchReminder(h, c.Reminder)
	if err != nil {
		return err
	}
	days, err := cli.ParseDays(c.Toggle)
	if err != nil {
		return err
	}

	h, err = a.ToggleReminderDays(bg, h.ID, r.ID, days)
	if err != nil {
		return err
	}
	ctx.WarnOnSaveFailure(a)

	updated, _ := h.Reminder(r.ID)
	if len(updated.Days) == 0 {
		ctx.Printf("Reminder at %s now has no days and will not fire\n", updated.Time)
		return nil
	}
	ctx.Printf("Reminder at %s now fires on %s\n", updated.Time, strings.Join(updated.Days, ", "))
	return nil
}

type ReminderTimeCmd struct {
	Habit    string `arg:"" help:"Habit name or id."`
	Reminder string `arg:"" help:"Reminder id or id prefix."`
	At       string `arg:"" help:"New time (h:mm AM/PM or HH:MM)."`
}

func (c *ReminderTimeCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, h, err := ctx.Habit(bg, c.Habit)
	if err != nil {
		return err
	}
	r, err := app.MatchReminder(h, c.Reminder)
	if err != nil {
		return err
	}
	at, err := cli.ParseReminderTime(c.At)
	if err != nil {
		return err
	}

	if _, err := a.SetReminderTime(bg, h.ID, r.ID, at); err != nil {
		return err
	}
	ctx.WarnOnSaveFailure(a)

	ctx.Printf("Moved reminder %s from %s to %s\n", shortID(r.ID), r.Time, at)
	return nil
}

type ReminderListCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	_, h, err := ctx.Habit(bg, c.Habit)
	if err != nil {
		return err
	}

	if len(h.Reminders) == 0 {
		ctx.Printf("%s has no reminders.\n", h.Name)
		return nil
	}

	scheduled, err := ctx.Notify.ListAll(bg)
	if err != nil {
		return err
	}
	active := make(map[string]bool, len(scheduled))
	for _, id := range scheduled {
		active[id] = true
	}

	for _, r := range h.Reminders {
		ctx.Printf("%s  %s\n", shortID(r.ID), r.Time)
		for _, day := range r.Days {
			status := "scheduled"
			if !active[reminders.TriggerID(h.ID, r.ID, day)] {
				status = "missing (run 'habitual reschedule')"
			}
			ctx.Printf("    %s  %s\n", day, status)
		}
	}
	return nil
}
