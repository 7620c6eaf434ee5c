// Package cli holds the state shared by every command and the helpers used
// to resolve command arguments.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/app"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/notifier"
	"github.com/julianstephens/habitual/internal/reminders"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

type Context struct {
	Store   storage.Provider
	Notify  *notifier.Store
	TrayDir string
	Out     io.Writer
	Clock   func() time.Time

	app    *app.App
	report reminders.Report
}

// App opens storage and the notification store on first use, then starts
// the application: load, permission request and reminder self-heal.
func (c *Context) App(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	if err := c.Store.Open(); err != nil {
		return nil, err
	}
	if err := notifier.Setup(notifier.DefaultConfig()); err != nil {
		return nil, fmt.Errorf("failed to set up notifications: %w", err)
	}
	if err := c.Notify.Open(); err != nil {
		return nil, err
	}

	a := app.New(c.Store, c.Notify)
	if c.Clock != nil {
		a.WithClock(c.Clock)
	}
	c.report = a.Start(ctx)
	if c.report.Failed > 0 {
		logger.Warn("Some reminders could not be restored", "failed", c.report.Failed)
	}
	c.app = a
	return a, nil
}

// StartupReport is the reconciliation result of the App's startup.
func (c *Context) StartupReport() reminders.Report {
	return c.report
}

// Habit starts the App and resolves ref by name, id or id prefix.
func (c *Context) Habit(ctx context.Context, ref string) (*app.App, models.Habit, error) {
	a, err := c.App(ctx)
	if err != nil {
		return nil, models.Habit{}, err
	}
	h, err := a.FindByName(ref)
	if err != nil {
		return nil, models.Habit{}, err
	}
	return a, h, nil
}

// Close releases both stores.
func (c *Context) Close() error {
	var errs []error
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	if c.Notify != nil {
		errs = append(errs, c.Notify.Close())
	}
	return errors.Join(errs...)
}

// WarnOnSaveFailure tells the user when the last change only exists in memory.
func (c *Context) WarnOnSaveFailure(a *app.App) {
	if err := a.SaveErr(); err != nil {
		c.Printf("⚠️  Warning: change was not saved: %v\n", err)
	}
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Output(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Output(), args...)
}

func (c *Context) Output() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// OpenStore picks the storage backend for target: a PostgreSQL URL, a .json
// file, or a SQLite database path. An empty target uses the connection
// string from HABITUAL_DB_CONNECTION or the keyring when present, and the
// default SQLite path otherwise.
func OpenStore(target string) (storage.Provider, error) {
	if target == "" {
		connStr, source, err := keyring.Resolve()
		switch {
		case err == nil:
			logger.Debug("Using PostgreSQL connection string", "source", source)
			return postgres.New(connStr), nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup failed, using default storage", "error", err)
		}
		target = kong.ExpandPath(constants.DefaultConfigPath)
	}

	if postgres.IsConnString(target) || strings.Contains(target, "host=") {
		if err := postgres.ValidateConnString(target); err != nil {
			return nil, err
		}
		return postgres.New(target), nil
	}

	target = kong.ExpandPath(target)
	if strings.EqualFold(filepath.Ext(target), ".json") {
		return storage.NewJSONStore(target), nil
	}
	return sqlite.NewStore(target), nil
}

var dayNames = map[string]string{
	"sun": "Sun", "sunday": "Sun",
	"mon": "Mon", "monday": "Mon",
	"tue": "Tue", "tues": "Tue", "tuesday": "Tue",
	"wed": "Wed", "wednesday": "Wed",
	"thu": "Thu", "thur": "Thu", "thurs": "Thu", "thursday": "Thu",
	"fri": "Fri", "friday": "Fri",
	"sat": "Sat", "saturday": "Sat",
}

// ParseDays parses a comma-separated weekday list into reminder day
// abbreviations, keeping the given order and dropping repeats. "daily",
// "weekdays" and "weekends" are accepted as shorthands.
func ParseDays(s string) ([]string, error) {
	days := []string{}
	add := func(d string) {
		for _, existing := range days {
			if existing == d {
				return
			}
		}
		days = append(days, d)
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "":
			continue
		case "daily", "everyday":
			for _, d := range constants.Weekdays {
				add(d)
			}
		case "weekdays":
			for _, d := range constants.Weekdays[:5] {
				add(d)
			}
		case "weekends":
			add("Sat")
			add("Sun")
		default:
			d, ok := dayNames[part]
			if !ok {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			add(d)
		}
	}
	return days, nil
}

// ParseReminderTime accepts "h:mm AM/PM" as stored, or a 24-hour "HH:MM".
func ParseReminderTime(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return constants.DefaultReminderTime, nil
	}
	if t, err := time.Parse(constants.ReminderTimeFormat, s); err == nil {
		return models.FormatReminderTime(t.Hour(), t.Minute()), nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return models.FormatReminderTime(t.Hour(), t.Minute()), nil
	}
	return "", fmt.Errorf("invalid time %q (expected h:mm AM/PM or HH:MM)", s)
}
