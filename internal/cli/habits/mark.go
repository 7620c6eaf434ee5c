package habits

import (
	"context"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/completion"
	"github.com/julianstephens/habitual/internal/models"
)

type MarkCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, h, err := ctx.Habit(bg, c.Habit)
	if err != nil {
		return err
	}

	h, err = a.MarkToday(bg, h.ID)
	if err != nil {
		return err
	}
	ctx.WarnOnSaveFailure(a)

	printProgress(ctx, h, a.Today())
	return nil
}

type ToggleCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, h, err := ctx.Habit(bg, c.Habit)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = a.Today()
	}
	h, err = a.Toggle(bg, h.ID, day)
	if err != nil {
		return err
	}
	ctx.WarnOnSaveFailure(a)

	printProgress(ctx, h, day)
	return nil
}

func printProgress(ctx *cli.Context, h models.Habit, day string) {
	count := completion.Count(h, day)
	switch {
	case count == 0:
		ctx.Printf("Cleared %q for %s\n", h.Name, day)
	case completion.IsComplete(h, day):
		ctx.Printf("✓ %q complete for %s (%d/%d)\n", h.Name, day, count, h.CompletionsPerDay)
	default:
		ctx.Printf("%q %d/%d for %s\n", h.Name, count, h.CompletionsPerDay, day)
	}
}
