package system

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/storage"
)

type ExportCmd struct {
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	a, err := ctx.App(context.Background())
	if err != nil {
		return err
	}

	var w io.Writer = ctx.Output()
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	habits := a.Habits()
	if err := storage.ExportYAML(w, habits); err != nil {
		return err
	}
	if c.Output != "" {
		ctx.Printf("Exported %d habit(s) to %s\n", len(habits), c.Output)
	}
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"YAML file written by 'habitual export'." type:"existingfile"`
	Yes  bool   `help:"Replace existing habits without asking." short:"y"`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	a, err := ctx.App(bg)
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	habits, err := storage.ImportYAML(f)
	if err != nil {
		return err
	}

	if existing := len(a.Habits()); existing > 0 && !c.Yes {
		return fmt.Errorf("import would replace %d existing habit(s); pass --yes to continue", existing)
	}

	report := a.Import(bg, habits)
	ctx.WarnOnSaveFailure(a)
	ctx.Printf("Imported %d habit(s); %d reminder notification(s) scheduled\n", len(habits), report.Scheduled)
	return nil
}
