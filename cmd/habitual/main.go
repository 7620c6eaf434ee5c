package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/notifier"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Habit storage: a SQLite path, a .json file, or a PostgreSQL connection string without a password. Defaults to HABITUAL_DB_CONNECTION or the keyring, then ~/.config/habitual/habitual.db." type:"string" default:""`
	NotifyDB string `help:"Notification database path." name:"notify-db" type:"path" default:"${notify_db}"`
	TrayDir  string `help:"Directory holding the tray app lockfile." name:"tray-dir" type:"path" env:"HABITUAL_TRAY_DIR"`
	Debug    bool   `help:"Log debug output to stderr." env:"HABITUAL_DEBUG"`

	Init       system.InitCmd       `cmd:"" help:"Initialize habitual storage."`
	Tui        system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit      habits.HabitCmd      `cmd:"" help:"Manage habits."`
	Mark       habits.MarkCmd       `cmd:"" help:"Advance today's completion count for a habit."`
	Toggle     habits.ToggleCmd     `cmd:"" help:"Advance a habit's completion count for a given day."`
	Calendar   habits.CalendarCmd   `cmd:"" help:"Show a habit's month calendar."`
	Heatmap    habits.HeatmapCmd    `cmd:"" help:"Show a habit's 52-week heatmap."`
	Reminder   habits.ReminderCmd   `cmd:"" help:"Manage habit reminders."`
	Reschedule system.RescheduleCmd `cmd:"" help:"Reconcile scheduled notifications with habit reminders."`
	Export     system.ExportCmd     `cmd:"" help:"Export habits as YAML."`
	Import     system.ImportCmd     `cmd:"" help:"Replace habits with a YAML export."`
	Backup     system.BackupCmd     `cmd:"" help:"Create, list and restore snapshots of the habit store."`
	Doctor     system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Keyring    system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Notify     system.NotifyCmd     `cmd:"" hidden:"" help:"Deliver due reminders (run once a minute)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with daily goals, calendars and weekly reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, constants.DefaultConfigFile),
		kong.Vars{
			"version":   constants.Version,
			"notify_db": constants.DefaultNotifyPath,
		},
	)

	configDir := kong.ExpandPath(filepath.Dir(constants.DefaultConfigFile))
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:   store,
		Notify:  notifier.NewStore(CLI.NotifyDB),
		TrayDir: CLI.TrayDir,
		Out:     os.Stdout,
	}

	err = ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	errors.Fatal(err)
}
