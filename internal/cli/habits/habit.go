package habits

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/completion"
	"github.com/julianstephens/habitual/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and cancel its reminders."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's progress." default:"1"`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit's details."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description."`
	Color       string `help:"Palette color (hex)." default:""`
	Icon        string `help:"Icon name." default:""`
	PerDay      string `help:"Completions needed per day." name:"per-day" default:"1"`
	RemindAt    string `help:"Add a reminder at this time (h:mm AM/PM or HH:MM)." name:"remind-at"`
	Days        string `help:"Reminder days, e.g. mon,wed,fri or weekdays." default:"daily"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, err := ctx.App(bg)
	if err != nil {
		return err
	}

	if _, err := a.FindByName(c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	draft := models.HabitDraft{
		Name:              c.Name,
		Description:       c.Description,
		Color:             c.Color,
		Icon:              c.Icon,
		CompletionsPerDay: c.PerDay,
	}
	if c.RemindAt != "" {
		r, err := buildReminder(c.RemindAt, c.Days)
		if err != nil {
			return err
		}
		draft.Reminders = []models.Reminder{r}
	}

	h, err := a.Create(bg, draft)
	if err != nil {
		return err
	}
	ctx.WarnOnSaveFailure(a)

	ctx.Printf("Added habit: %s (%s)\n", h.Name, shortID(h.ID))
	for _, r := range h.Reminders {
		ctx.Printf("  Reminder at %s on %s\n", r.Time, strings.Join(r.Days, ", "))
	}
	return nil
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit name or id."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Color       *string `help:"New palette color (hex)."`
	Icon        *string `help:"New icon name."`
	PerDay      *string `help:"New completions needed per day." name:"per-day"`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, h, err := ctx.Habit(bg, c.Habit)
	if err != nil {
		return err
	}

	draft := models.HabitDraft{
		Name:              h.Name,
		Description:       h.Description,
		Color:             h.Color,
		Icon:              h.Icon,
		CompletionsPerDay: fmt.Sprint(h.CompletionsPerDay),
	}
	changed := false
	for _, f := range []struct {
		src *string
		dst *string
	}{
		{c.Name, &draft.Name},
		{c.Description, &draft.Description},
		{c.Color, &draft.Color},
		{c.Icon, &draft.Icon},
		{c.PerDay, &draft.CompletionsPerDay},
	} {
		if f.src != nil {
			*f.dst = *f.src
			changed = true
		}
	}
	if !changed {
		return fmt.Errorf("nothing to change; pass at least one of --name, --description, --color, --icon, --per-day")
	}

	edited, err := a.Edit(bg, h.ID, draft)
	if err != nil {
		return err
	}
	ctx.WarnOnSaveFailure(a)

	ctx.Printf("Updated habit: %s\n", edited.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Yes   bool   `help:"Skip the confirmation prompt." short:"y"`
}

// confirmFunc asks the user to confirm a destructive action.
var confirmFunc = func(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().Title(title).Affirmative("Delete").Negative("Cancel").Value(&ok).Run()
	return ok, err
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, h, err := ctx.Habit(bg, c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := confirmFunc(fmt.Sprintf("Delete %q and all of its history?", h.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := a.Delete(bg, h.ID); err != nil {
		return err
	}
	ctx.WarnOnSaveFailure(a)

	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitListCmd struct {
	JSON bool `help:"Print habits as JSON." name:"json"`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App(context.Background())
	if err != nil {
		return err
	}

	habits := a.Habits()
	if c.JSON {
		data, err := json.MarshalIndent(habits, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal habits: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(habits) == 0 {
		ctx.Println("No habits found. Add one with 'habitual habit add <name>'.")
		return nil
	}

	today := a.Today()
	now := a.Now()
	for _, h := range habits {
		mark := "○"
		if completion.IsComplete(h, today) {
			mark = "●"
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render(mark)
		line := fmt.Sprintf("%s %s  %d/%d today", dot, h.Name, completion.Count(h, today), h.CompletionsPerDay)
		if streak := completion.Streak(h, now); streak > 0 {
			line += fmt.Sprintf("  🔥 %d", streak)
		}
		if n := len(h.Reminders); n > 0 {
			line += fmt.Sprintf("  ⏰ %d", n)
		}
		ctx.Println(line)
	}
	return nil
}

type HabitShowCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitShowCmd) Run(ctx *cli.Context) error {
	a, h, err := ctx.Habit(context.Background(), c.Habit)
	if err != nil {
		return err
	}

	today := a.Today()
	ctx.Printf("Name:        %s\n", h.Name)
	ctx.Printf("ID:          %s\n", h.ID)
	if h.Description != "" {
		ctx.Printf("Description: %s\n", h.Description)
	}
	ctx.Printf("Icon:        %s\n", h.Icon)
	ctx.Printf("Color:       %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color(h.Color)).Render(h.Color))
	ctx.Printf("Per day:     %d\n", h.CompletionsPerDay)
	ctx.Printf("Today:       %d/%d\n", completion.Count(h, today), h.CompletionsPerDay)
	ctx.Printf("Streak:      %d day(s)\n", completion.Streak(h, a.Now()))
	ctx.Printf("Created:     %s\n", h.CreatedAt.Local().Format("2006-01-02 15:04"))
	if len(h.Reminders) == 0 {
		ctx.Println("Reminders:   none")
		return nil
	}
	ctx.Println("Reminders:")
	for _, r := range h.Reminders {
		days := strings.Join(r.Days, ", ")
		if days == "" {
			days = "no days selected"
		}
		ctx.Printf("  %s  %s  %s\n", shortID(r.ID), r.Time, days)
	}
	return nil
}

func buildReminder(at, days string) (models.Reminder, error) {
	t, err := cli.ParseReminderTime(at)
	if err != nil {
		return models.Reminder{}, err
	}
	d, err := cli.ParseDays(days)
	if err != nil {
		return models.Reminder{}, err
	}
	return models.NewReminder(t, d)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
