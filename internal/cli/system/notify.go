package system

import (
	"context"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/notifier"
)

// NotifyCmd delivers the reminders due this minute. It is meant to run from
// cron or a launch agent once per minute.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if err := notifier.Setup(notifier.DefaultConfig()); err != nil {
		return err
	}
	if err := ctx.Notify.Open(); err != nil {
		return err
	}

	now := time.Now()
	if ctx.Clock != nil {
		now = ctx.Clock()
	}

	if c.DryRun {
		due, err := ctx.Notify.Due(bg, now)
		if err != nil {
			return err
		}
		if len(due) == 0 {
			ctx.Println("No reminders due.")
		}
		for _, t := range due {
			ctx.Printf("[DryRun] %s: %s\n", t.Title, t.Body)
		}
		return nil
	}

	result, err := notifier.NewDispatcher(ctx.Notify, notifier.New(ctx.TrayDir)).DispatchDue(bg, now)
	if err != nil {
		return err
	}
	for _, t := range result.Failed {
		ctx.Printf("Failed to send notification for %s\n", t.Title)
	}
	return nil
}
