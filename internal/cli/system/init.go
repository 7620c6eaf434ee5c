package system

import (
	"context"
	"fmt"
	"os"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/notifier"
)

type InitCmd struct {
	Force bool `help:"Delete existing habit data before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			backupPath, err := backup.NewManager(path).CreateBackup()
			if err != nil {
				return fmt.Errorf("failed to back up existing storage: %w", err)
			}
			ctx.Printf("Backed up existing storage to: %s\n", backupPath)
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized habitual storage at: %s\n", ctx.Store.GetConfigPath())

	if err := notifier.Setup(notifier.DefaultConfig()); err != nil {
		return err
	}
	if err := ctx.Notify.Open(); err != nil {
		return err
	}
	if granted, err := ctx.Notify.RequestPermission(context.Background()); err != nil || !granted {
		ctx.Println("⚠️  Notifications are not enabled; reminders will not be delivered.")
	}
	return nil
}
