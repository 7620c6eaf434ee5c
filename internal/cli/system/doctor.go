package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/reminders"
	"github.com/julianstephens/habitual/internal/storage"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(context.Context, *cli.Context) error
	warning bool
}

var doctorChecks = []check{
	{name: "Storage reachable", run: checkStorage},
	{name: "Habit data", run: checkHabits},
	{name: "Notification store", run: checkNotifyStore},
	{name: "Scheduled reminders", run: checkScheduled},
	{name: "Tray app", run: checkTray, warning: true},
	{name: "Clock/timezone", run: checkClock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	bg := context.Background()
	failed := 0
	for _, c := range doctorChecks {
		err := c.run(bg, ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warning:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed++
		}
	}

	ctx.Println()
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkStorage(_ context.Context, ctx *cli.Context) error {
	return ctx.Store.Open()
}

func checkHabits(bg context.Context, ctx *cli.Context) error {
	habits, err := ctx.Store.Load(bg)
	if err != nil {
		return err
	}
	var errs []error
	seen := make(map[string]bool, len(habits))
	for i := range habits {
		h := habits[i]
		if err := h.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.Name, err))
		}
		if seen[h.ID] {
			errs = append(errs, fmt.Errorf("duplicate habit id %s", h.ID))
		}
		seen[h.ID] = true
		for key, n := range h.Completions {
			if n > h.CompletionsPerDay {
				errs = append(errs, fmt.Errorf("%s: %s has %d completions, above the target of %d", h.Name, key, n, h.CompletionsPerDay))
			}
		}
	}
	return errors.Join(errs...)
}

func checkNotifyStore(_ context.Context, ctx *cli.Context) error {
	if err := notifier.Setup(notifier.DefaultConfig()); err != nil {
		return err
	}
	return ctx.Notify.Open()
}

// checkScheduled compares stored triggers against the ones the habits imply,
// without changing either.
func checkScheduled(bg context.Context, ctx *cli.Context) error {
	habits, err := ctx.Store.Load(bg)
	if err != nil && !errors.Is(err, storage.ErrCorrupt) {
		return err
	}
	ids, err := ctx.Notify.ListAll(bg)
	if err != nil {
		return err
	}
	scheduled := make(map[string]bool, len(ids))
	for _, id := range ids {
		scheduled[id] = true
	}

	missing, expected := 0, make(map[string]bool)
	for _, h := range habits {
		triggers, _ := reminders.Triggers(h)
		for _, t := range triggers {
			expected[t.ID] = true
			if !scheduled[t.ID] {
				missing++
			}
		}
	}
	orphaned := 0
	for id := range scheduled {
		if !expected[id] {
			orphaned++
		}
	}
	if missing > 0 || orphaned > 0 {
		return fmt.Errorf("%d missing and %d orphaned notification(s); run 'habitual reschedule'", missing, orphaned)
	}
	return nil
}

func checkTray(_ context.Context, ctx *cli.Context) error {
	return notifier.CheckTray(ctx.TrayDir)
}

func checkClock(context.Context, *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if now.Location() == nil {
		return errors.New("no local timezone configured")
	}
	return nil
}
