package habits

import (
	"context"

	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/cli"
)

type CalendarCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Month string `help:"Month in YYYY-MM format (default: current month)." default:""`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	a, h, err := ctx.Habit(context.Background(), c.Habit)
	if err != nil {
		return err
	}

	now := a.Now()
	m := calendar.NewMonth(now)
	if c.Month != "" {
		if m, err = calendar.ParseMonth(c.Month); err != nil {
			return err
		}
	}

	cells := calendar.MonthGrid(h, m, now)
	ctx.Printf("%s\n", h.Name)
	ctx.Printf("%s", calendar.RenderMonth(m, cells, h.Color, -1))
	return nil
}

type HeatmapCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	a, h, err := ctx.Habit(context.Background(), c.Habit)
	if err != nil {
		return err
	}

	ctx.Printf("%s\n", h.Name)
	ctx.Printf("%s", calendar.RenderHeatmap(calendar.RollingWindow(h, a.Now())))
	return nil
}
