package system

import (
	"context"

	"github.com/julianstephens/habitual/internal/cli"
)

// RescheduleCmd reports the startup reconciliation and, with --again, runs
// it a second time.
type RescheduleCmd struct {
	Again bool `help:"Run reconciliation again after the startup pass." hidden:""`
}

func (c *RescheduleCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, err := ctx.App(bg)
	if err != nil {
		return err
	}

	report := ctx.StartupReport()
	if c.Again {
		report = a.RescheduleAll(bg)
	}
	ctx.Printf("Rescheduled reminders: %d scheduled, %d cancelled", report.Scheduled, report.Cancelled)
	if report.Failed > 0 {
		ctx.Printf(", %d failed (see log)", report.Failed)
	}
	ctx.Println()
	return nil
}
