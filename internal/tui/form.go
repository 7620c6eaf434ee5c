package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
)

// NewHabitForm builds the new/edit habit form over fm.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	colors := make([]huh.Option[string], len(constants.Palette))
	for i, c := range constants.Palette {
		colors[i] = huh.NewOption(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("■ ")+c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Completions per day").
				Value(&fm.PerDay),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color").
				Options(colors...).
				Value(&fm.Color),
			huh.NewSelect[string]().
				Title("Icon").
				Options(huh.NewOptions(constants.Icons...)...).
				Height(8).
				Value(&fm.Icon),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewReminderTimeForm asks for a reminder's new time.
func NewReminderTimeForm(fm *ReminderFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Time").
				Description("h:mm AM/PM or HH:MM").
				Value(&fm.Time).
				Validate(func(s string) error {
					_, err := cli.ParseReminderTime(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newHabitFormModel() *HabitFormModel {
	return &HabitFormModel{
		Color:  constants.Palette[constants.DefaultColorIndex],
		Icon:   constants.Icons[0],
		PerDay: "1",
	}
}

func editHabitFormModel(h models.Habit) *HabitFormModel {
	return &HabitFormModel{
		Name:        h.Name,
		Description: h.Description,
		Color:       h.Color,
		Icon:        h.Icon,
		PerDay:      fmt.Sprint(h.CompletionsPerDay),
	}
}

func (fm *HabitFormModel) draft() models.HabitDraft {
	return models.HabitDraft{
		Name:              fm.Name,
		Description:       fm.Description,
		Color:             fm.Color,
		Icon:              fm.Icon,
		CompletionsPerDay: fm.PerDay,
	}
}
